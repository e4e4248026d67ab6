package handlers

import (
	"errors"

	"nexusops/internal/domain"
	applog "nexusops/internal/log"
	"nexusops/internal/services"
	"nexusops/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PickingHandler struct {
	Picking *services.PickingService
}

// GET /api/v1/picking/tasks?status=
func (h *PickingHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "all" {
		status = ""
	}
	tasks, err := h.Picking.List(status)
	if err != nil {
		applog.Error(c, "picking.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load tasks"})
	}
	return c.JSON(fiber.Map{"success": true, "tasks": tasks, "count": len(tasks)})
}

type openTaskRequest struct {
	ProductID string `json:"productId"`
	Assignee  string `json:"assignee"`
	BundleID  string `json:"bundleId"`
}

// POST /api/v1/picking/tasks (staff)
func (h *PickingHandler) Open(c *fiber.Ctx) error {
	var req openTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "productId is required"})
	}
	if req.Assignee == "" {
		if u, _ := c.Locals("user").(*domain.User); u != nil {
			req.Assignee = u.Name
		}
	}

	task, err := h.Picking.Open(pid, req.Assignee, req.BundleID)
	switch {
	case err == nil:
		applog.Audit(c, "picking.open", map[string]any{"task_id": task.ID, "product_id": pid})
		return c.JSON(fiber.Map{"success": true, "task": task})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "product not found"})
	case errors.Is(err, services.ErrNotPickable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "product is not awaiting picking"})
	default:
		applog.Error(c, "picking.open.fail", err, map[string]any{"product_id": pid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not open task"})
	}
}

type completeTaskRequest struct {
	Carrier string `json:"carrier"`
}

// POST /api/v1/picking/tasks/:id/complete (staff)
func (h *PickingHandler) Complete(c *fiber.Ctx) error {
	var req completeTaskRequest
	_ = c.BodyParser(&req) // carrier is optional

	task, err := h.Picking.Complete(c.Params("id"), req.Carrier)
	switch {
	case err == nil:
		applog.Audit(c, "picking.complete", map[string]any{"task_id": task.ID})
		return c.JSON(fiber.Map{"success": true, "task": task})
	case errors.Is(err, services.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "task not found"})
	case errors.Is(err, services.ErrTaskDone):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "task already completed"})
	default:
		applog.Error(c, "picking.complete.fail", err, map[string]any{"task_id": c.Params("id")})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not complete task"})
	}
}

package handlers

import (
	"errors"

	"nexusops/internal/domain"
	applog "nexusops/internal/log"
	"nexusops/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PlanHandler struct {
	Intake *services.IntakeService
}

// GET /api/v1/delivery-plans (seller)
func (h *PlanHandler) List(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	plans, err := h.Intake.ListPlans(u)
	if err != nil {
		applog.Error(c, "plan.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load plans"})
	}
	return c.JSON(fiber.Map{"success": true, "plans": plans, "count": len(plans)})
}

// POST /api/v1/delivery-plans/draft (seller)
func (h *PlanHandler) SaveDraft(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}

	var in services.DraftInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "invalid request body",
		})
	}

	plan, err := h.Intake.SaveDraft(u, in)
	if err != nil {
		applog.Error(c, "plan.draft.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": "could not save draft",
		})
	}
	applog.Audit(c, "plan.draft", map[string]any{
		"plan_id": plan.ID, "total_items": plan.TotalItems, "total_value": plan.TotalValue,
	})
	return c.JSON(fiber.Map{
		"success": true,
		"draftId": plan.ID,
		"plan": fiber.Map{
			"id":         plan.ID,
			"status":     plan.Status,
			"totalItems": plan.TotalItems,
			"totalValue": plan.TotalValue,
			"createdAt":  plan.CreatedAt,
		},
	})
}

// POST /api/v1/delivery-plans/:id/submit (seller)
func (h *PlanHandler) Submit(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}

	plan, productIDs, err := h.Intake.Submit(u, c.Params("id"))
	switch {
	case err == nil:
		applog.Audit(c, "plan.submit", map[string]any{"plan_id": plan.ID, "products": len(productIDs)})
		return c.JSON(fiber.Map{"success": true, "planId": plan.ID, "productIds": productIDs})
	case errors.Is(err, services.ErrPlanNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "plan not found"})
	case errors.Is(err, services.ErrPlanForbidden):
		applog.Security(c, "plan.submit.denied", map[string]any{"plan_id": c.Params("id")})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "access denied"})
	case errors.Is(err, services.ErrPlanNotDraft):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "plan is not a draft"})
	default:
		applog.Error(c, "plan.submit.fail", err, map[string]any{"plan_id": c.Params("id")})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not submit plan"})
	}
}

// POST /api/v1/delivery-plans/:id/cancel (seller)
func (h *PlanHandler) Cancel(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}

	err := h.Intake.Cancel(u, c.Params("id"))
	switch {
	case err == nil:
		applog.Audit(c, "plan.cancel", map[string]any{"plan_id": c.Params("id")})
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, services.ErrPlanNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "plan not found"})
	case errors.Is(err, services.ErrPlanForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "access denied"})
	case errors.Is(err, services.ErrPlanNotDraft):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "only drafts can be cancelled"})
	default:
		applog.Error(c, "plan.cancel.fail", err, map[string]any{"plan_id": c.Params("id")})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not cancel plan"})
	}
}

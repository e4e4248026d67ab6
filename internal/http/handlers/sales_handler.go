package handlers

import (
	"errors"

	applog "nexusops/internal/log"
	"nexusops/internal/services"
	"nexusops/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	Lifecycle *services.LifecycleService
}

type saleRequest struct {
	ProductID string `json:"productId"`
}

// POST /api/v1/sales/status-transition
func (h *SalesHandler) Transition(c *fiber.Ctx) error {
	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "invalid request body",
		})
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "productId is required",
		})
	}

	res, err := h.Lifecycle.Sell(pid)
	switch {
	case err == nil:
		applog.Audit(c, "sale.transition", map[string]any{
			"product_id": res.ProductID, "new_status": res.NewStatus, "changed": res.Changed,
		})
		return c.JSON(fiber.Map{
			"success":   true,
			"productId": res.ProductID,
			"newStatus": res.NewStatus,
		})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "error": "product not found",
		})
	case errors.Is(err, services.ErrTransitionDenied):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false, "error": "status transition not allowed",
		})
	default:
		applog.Error(c, "sale.transition.fail", err, map[string]any{"product_id": pid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": "could not update status",
		})
	}
}

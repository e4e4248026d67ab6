package handlers

import (
	"errors"

	"nexusops/internal/domain"
	applog "nexusops/internal/log"
	"nexusops/internal/services"
	"nexusops/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StorageHandler struct {
	Storage *services.StorageService
}

type storeRequest struct {
	ProductID    string `json:"productId"`
	LocationCode string `json:"locationCode"`
}

// POST /api/v1/products/storage (staff)
func (h *StorageHandler) Store(c *fiber.Ctx) error {
	var req storeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok || req.LocationCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "productId and locationCode are required",
		})
	}

	userID := "system"
	if u, _ := c.Locals("user").(*domain.User); u != nil {
		userID = u.ID
	}

	p, err := h.Storage.Store(pid, req.LocationCode, userID)
	switch {
	case err == nil:
		applog.Audit(c, "storage.assign", map[string]any{"product_id": p.ID, "location": req.LocationCode})
		return c.JSON(fiber.Map{"success": true, "productId": p.ID, "status": p.Status, "locationId": p.LocationID})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "product not found"})
	case errors.Is(err, services.ErrBadLocation), errors.Is(err, services.ErrUnknownShelf):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid location code"})
	case errors.Is(err, services.ErrNotStorable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "product cannot be stored from its current status"})
	case errors.Is(err, services.ErrLocationFull):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "location at capacity"})
	default:
		applog.Error(c, "storage.assign.fail", err, map[string]any{"product_id": pid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not store product"})
	}
}

type locationRequest struct {
	LocationCode string `json:"locationCode"`
}

// POST /api/v1/locations/validate
func (h *StorageHandler) ValidateLocation(c *fiber.Ctx) error {
	var req locationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"valid": false, "error": "invalid request body"})
	}
	if req.LocationCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"valid": false, "error": "locationCode is required"})
	}
	code, ok := h.Storage.ValidateCode(req.LocationCode)
	return c.JSON(fiber.Map{"valid": ok, "locationCode": code})
}

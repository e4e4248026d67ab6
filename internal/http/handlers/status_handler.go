package handlers

import (
	"database/sql"
	"strings"

	"nexusops/internal/domain"
	applog "nexusops/internal/log"
	"nexusops/internal/repos"
	"nexusops/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StatusHandler struct {
	Statuses *repos.StatusRepo
}

// GET /api/v1/master/product-statuses
func (h *StatusHandler) List(c *fiber.Ctx) error {
	includeInactive := c.Query("includeInactive") == "true"
	statuses, err := h.Statuses.List(includeInactive)
	if err != nil {
		applog.Error(c, "statuses.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": "could not load statuses",
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": statuses, "count": len(statuses)})
}

// Pointer fields tell absent values apart from explicit zero values, so an
// update can set sort order 0 or clear the description.
type statusRequest struct {
	ID          string  `json:"id"`
	Key         string  `json:"key"`
	NameJA      *string `json:"nameJa"`
	NameEN      *string `json:"nameEn"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sortOrder"`
	Active      *bool   `json:"isActive"`
}

func strField(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// POST /api/v1/master/product-statuses (admin)
func (h *StatusHandler) Create(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}
	key, ok := validate.StatusKey(req.Key)
	if !ok || strings.TrimSpace(strField(req.NameJA)) == "" || strings.TrimSpace(strField(req.NameEN)) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "key, nameJa and nameEn are required",
		})
	}

	if _, err := h.Statuses.ByKey(key); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false, "error": "key already exists",
		})
	} else if err != sql.ErrNoRows {
		applog.Error(c, "statuses.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not create status"})
	}

	s := domain.Status{
		ID:          uuid.NewString(),
		Key:         key,
		NameJA:      *req.NameJA,
		NameEN:      *req.NameEN,
		Description: strField(req.Description),
		Active:      true,
	}
	if req.SortOrder != nil {
		s.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		s.Active = *req.Active
	}
	if err := h.Statuses.Create(s); err != nil {
		applog.Error(c, "statuses.create.fail", err, map[string]any{"key": key})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not create status"})
	}
	applog.Audit(c, "statuses.create", map[string]any{"key": key})
	return c.JSON(fiber.Map{"success": true, "data": s})
}

// PUT /api/v1/master/product-statuses (admin)
func (h *StatusHandler) Update(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}
	if req.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "id is required"})
	}

	existing, err := h.Statuses.ByID(req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "status not found"})
		}
		applog.Error(c, "statuses.update.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not update status"})
	}

	if req.Key != "" && req.Key != existing.Key {
		key, ok := validate.StatusKey(req.Key)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid key"})
		}
		if _, err := h.Statuses.ByKey(key); err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "key already exists"})
		}
		existing.Key = key
	}
	// Display names stay required; description and sort order accept their
	// zero values.
	if req.NameJA != nil {
		if strings.TrimSpace(*req.NameJA) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "nameJa cannot be empty"})
		}
		existing.NameJA = *req.NameJA
	}
	if req.NameEN != nil {
		if strings.TrimSpace(*req.NameEN) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "nameEn cannot be empty"})
		}
		existing.NameEN = *req.NameEN
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.SortOrder != nil {
		existing.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		existing.Active = *req.Active
	}

	if err := h.Statuses.Update(existing); err != nil {
		applog.Error(c, "statuses.update.fail", err, map[string]any{"id": req.ID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not update status"})
	}
	applog.Audit(c, "statuses.update", map[string]any{"id": req.ID, "key": existing.Key})
	return c.JSON(fiber.Map{"success": true, "data": existing})
}

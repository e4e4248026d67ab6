package handlers

import (
	"database/sql"

	applog "nexusops/internal/log"
	"nexusops/internal/repos"
	"nexusops/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products   *repos.ProductRepo
	Shipments  *repos.ShipmentRepo
	Activities *repos.ActivityRepo
}

// GET /api/v1/products?status=&page=&limit=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "all" {
		status = ""
	}
	page := validate.Page(c.Query("page"))
	limit := validate.Limit(c.Query("limit"))

	products, err := h.Products.List(status, limit, (page-1)*limit)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	total, err := h.Products.Count(status)
	if err != nil {
		applog.Error(c, "products.count.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(fiber.Map{
		"success": true, "data": products,
		"pagination": fiber.Map{"page": page, "limit": limit, "total": total},
	})
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, err := h.Products.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		applog.Error(c, "products.get.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}
	shipments, _ := h.Shipments.ListByProduct(id)
	activities, _ := h.Activities.ListByProduct(id, 10)
	return c.JSON(fiber.Map{
		"success": true, "product": p, "shipments": shipments, "activities": activities,
	})
}

// GET /api/v1/shipments/:id
// Surfaces carrier, tracking number and generated label file for one parcel.
func (h *ProductHandler) Shipment(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid shipment id"})
	}
	s, err := h.Shipments.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "shipment not found"})
		}
		applog.Error(c, "shipments.get.fail", err, map[string]any{"shipment_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load shipment"})
	}
	return c.JSON(fiber.Map{"success": true, "shipment": s})
}

// GET /api/v1/products/:id/history
func (h *ProductHandler) History(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	if _, err := h.Products.Get(id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}
	acts, err := h.Activities.ListByProduct(id, validate.Limit(c.Query("limit")))
	if err != nil {
		applog.Error(c, "products.history.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load history"})
	}
	return c.JSON(fiber.Map{"success": true, "history": acts})
}

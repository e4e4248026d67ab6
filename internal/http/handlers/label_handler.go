package handlers

import (
	"os"
	"path/filepath"

	applog "nexusops/internal/log"
	"nexusops/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type LabelHandler struct {
	LabelsDir string
}

// GET /api/v1/shipping/label/get?fileName=...
// The traversal check runs before any filesystem access.
func (h *LabelHandler) Get(c *fiber.Ctx) error {
	raw := c.Query("fileName")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fileName is required"})
	}
	name, ok := validate.LabelFileName(raw)
	if !ok {
		applog.Security(c, "label.traversal.block", map[string]any{"file": raw})
		return c.SendStatus(fiber.StatusNotFound)
	}

	full := filepath.Join(h.LabelsDir, name)
	if _, err := os.Stat(full); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "label not found"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.SendFile(full, true)
}

package handlers

import (
	applog "nexusops/internal/log"
	"nexusops/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Reports *services.ReportService
}

// GET /api/v1/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	snap, err := h.Reports.Dashboard()
	if err != nil {
		// Both the live path and the snapshot failed.
		applog.Error(c, "dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "dashboard unavailable"})
	}
	if snap.Source == services.SourceFallback {
		applog.Info(c, "dashboard.fallback", nil)
	}
	return c.JSON(fiber.Map{"success": true, "source": snap.Source, "data": snap.Data})
}

// GET /api/v1/reports/analytics
func (h *ReportHandler) Analytics(c *fiber.Ctx) error {
	snap, err := h.Reports.Analytics()
	if err != nil {
		applog.Error(c, "analytics.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "analytics unavailable"})
	}
	if snap.Source == services.SourceFallback {
		applog.Info(c, "analytics.fallback", nil)
	}
	return c.JSON(fiber.Map{"success": true, "source": snap.Source, "data": snap.Data})
}

// GET /dashboard (rendered page)
func (h *ReportHandler) DashboardPage(c *fiber.Ctx) error {
	snap, err := h.Reports.Dashboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Dashboard unavailable"})
	}
	return render(c, "dashboard", fiber.Map{"Source": snap.Source, "Data": snap.Data})
}

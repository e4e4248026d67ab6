package handlers

import (
	"errors"

	"nexusops/internal/domain"
	applog "nexusops/internal/log"
	"nexusops/internal/services"
	"nexusops/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Notifs *services.NotificationService
}

// GET /api/v1/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	inbox, err := h.Notifs.InboxFor(u.ID, validate.Limit(c.Query("limit")))
	if err != nil {
		applog.Error(c, "notifications.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load notifications"})
	}
	return c.JSON(fiber.Map{"success": true, "items": inbox.Items, "unread": inbox.Unread})
}

type markReadRequest struct {
	NotificationID string `json:"notificationId"`
}

// POST /api/v1/notifications/mark-as-read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}

	var req markReadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "invalid request body",
		})
	}
	id, ok := validate.ID(req.NotificationID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "notificationId is required",
		})
	}

	err := h.Notifs.MarkRead(u.ID, id)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, services.ErrNotificationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "error": "notification not found",
		})
	default:
		applog.Error(c, "notifications.mark.fail", err, map[string]any{"notification_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": "could not update notification",
		})
	}
}

package handlers

import (
	applog "nexusops/internal/log"
	"nexusops/internal/services"

	"github.com/gofiber/fiber/v2"
)

func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireStaff gates warehouse-floor operations (storage, picking, sales).
func RequireStaff(auth *services.AuthService) fiber.Handler {
	return requireRole(auth, "access.denied.staff", "STAFF", "ADMIN")
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return requireRole(auth, "access.denied.admin", "ADMIN")
}

func requireRole(auth *services.AuthService, action string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		for _, r := range roles {
			if u.Role == r {
				c.Locals("user", u)
				return c.Next()
			}
		}
		applog.Security(c, action, map[string]any{"sid": sid, "role": u.Role})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
	}
}

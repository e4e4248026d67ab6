package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"nexusops/internal/config"
	"nexusops/internal/http/handlers"
	applog "nexusops/internal/log"
	"nexusops/internal/repos"
	"nexusops/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// JSON API is cookie-session + same-origin; form routes keep CSRF.
			return strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	// Pages
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/dashboard") })
	app.Get("/dashboard", handlers.RequireUser(authSvc), deps.ReportHandler.DashboardPage)
	app.Get("/staff/dashboard", handlers.RequireStaff(authSvc), deps.ReportHandler.DashboardPage)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// ---------- JSON API ----------
	api := app.Group("/api/v1")

	// Master data
	api.Get("/master/product-statuses", deps.StatusHandler.List)
	api.Post("/master/product-statuses", handlers.RequireAdmin(authSvc), deps.StatusHandler.Create)
	api.Put("/master/product-statuses", handlers.RequireAdmin(authSvc), deps.StatusHandler.Update)

	// Products
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/products/:id/history", deps.ProductHandler.History)
	api.Post("/products/storage", handlers.RequireStaff(authSvc), deps.StorageHandler.Store)

	// Shipments
	api.Get("/shipments/:id", deps.ProductHandler.Shipment)

	// Locations
	api.Post("/locations/validate", handlers.RequireStaff(authSvc), deps.StorageHandler.ValidateLocation)

	// Sales
	api.Post("/sales/status-transition", handlers.RequireStaff(authSvc), deps.SalesHandler.Transition)

	// Picking
	api.Get("/picking/tasks", handlers.RequireStaff(authSvc), deps.PickingHandler.List)
	api.Post("/picking/tasks", handlers.RequireStaff(authSvc), deps.PickingHandler.Open)
	api.Post("/picking/tasks/:id/complete", handlers.RequireStaff(authSvc), deps.PickingHandler.Complete)

	// Delivery plans
	api.Get("/delivery-plans", handlers.RequireUser(authSvc), deps.PlanHandler.List)
	api.Post("/delivery-plans/draft", handlers.RequireUser(authSvc), deps.PlanHandler.SaveDraft)
	api.Post("/delivery-plans/:id/submit", handlers.RequireUser(authSvc), deps.PlanHandler.Submit)
	api.Post("/delivery-plans/:id/cancel", handlers.RequireUser(authSvc), deps.PlanHandler.Cancel)

	// Notifications
	api.Get("/notifications", deps.NotificationHandler.List)
	api.Post("/notifications/mark-as-read", deps.NotificationHandler.MarkRead)

	// Shipping labels
	api.Get("/shipping/label/get", deps.LabelHandler.Get)

	// Reports
	api.Get("/dashboard", deps.ReportHandler.Dashboard)
	api.Get("/reports/analytics", deps.ReportHandler.Analytics)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

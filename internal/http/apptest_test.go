package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"nexusops/internal/config"
	"nexusops/internal/http/handlers"
	"nexusops/internal/repos"
	"nexusops/internal/services"
)

// newTestApp wires the real routes over a seeded in-memory database,
// without the CSRF/limiter layers that get in the way of API tests.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, config.Config) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", LabelsDir: t.TempDir(), SnapshotDir: t.TempDir()}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, cfg, authSvc)

	api := app.Group("/api/v1")
	api.Get("/master/product-statuses", deps.StatusHandler.List)
	api.Post("/master/product-statuses", handlers.RequireAdmin(authSvc), deps.StatusHandler.Create)
	api.Put("/master/product-statuses", handlers.RequireAdmin(authSvc), deps.StatusHandler.Update)
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/products/:id/history", deps.ProductHandler.History)
	api.Get("/shipments/:id", deps.ProductHandler.Shipment)
	api.Post("/products/storage", handlers.RequireStaff(authSvc), deps.StorageHandler.Store)
	api.Post("/locations/validate", handlers.RequireStaff(authSvc), deps.StorageHandler.ValidateLocation)
	api.Post("/sales/status-transition", handlers.RequireStaff(authSvc), deps.SalesHandler.Transition)
	api.Get("/picking/tasks", handlers.RequireStaff(authSvc), deps.PickingHandler.List)
	api.Post("/picking/tasks", handlers.RequireStaff(authSvc), deps.PickingHandler.Open)
	api.Post("/picking/tasks/:id/complete", handlers.RequireStaff(authSvc), deps.PickingHandler.Complete)
	api.Get("/delivery-plans", handlers.RequireUser(authSvc), deps.PlanHandler.List)
	api.Post("/delivery-plans/draft", handlers.RequireUser(authSvc), deps.PlanHandler.SaveDraft)
	api.Post("/delivery-plans/:id/submit", handlers.RequireUser(authSvc), deps.PlanHandler.Submit)
	api.Post("/delivery-plans/:id/cancel", handlers.RequireUser(authSvc), deps.PlanHandler.Cancel)
	api.Get("/notifications", deps.NotificationHandler.List)
	api.Post("/notifications/mark-as-read", deps.NotificationHandler.MarkRead)
	api.Get("/shipping/label/get", deps.LabelHandler.Get)
	api.Get("/dashboard", deps.ReportHandler.Dashboard)
	api.Get("/reports/analytics", deps.ReportHandler.Analytics)

	return app, db, cfg
}

// loginAs binds a session row to one of the seeded users and returns the sid.
func loginAs(t *testing.T, db *sqlx.DB, userID string) string {
	t.Helper()
	sid := "sid-" + userID
	if _, err := db.Exec(`INSERT INTO sessions(id,user_id,last_seen) VALUES(?,?,CURRENT_TIMESTAMP)
	                       ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id`, sid, userID); err != nil {
		t.Fatalf("bind session: %v", err)
	}
	return sid
}

func jsonReq(method, target, body, sid string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

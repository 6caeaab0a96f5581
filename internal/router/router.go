package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/edgylearn-api/internal/config"
	"github.com/noah-isme/edgylearn-api/internal/handler"
	"github.com/noah-isme/edgylearn-api/internal/middleware"
	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/observability"
)

const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler             *handler.AuthHandler
	CatalogHandler          *handler.CatalogHandler
	LearningHandler         *handler.LearningHandler
	AdminDashboardHandler   *handler.AdminDashboardHandler
	TeacherDashboardHandler *handler.TeacherDashboardHandler
	StudentDashboardHandler *handler.StudentDashboardHandler
	StreamHandler           *handler.StreamHandler
	Sessions                middleware.SessionLookup
	// ActiveSessions reports the open session count on the health endpoint.
	ActiveSessions func() int
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	// Common v1 group for health & landing
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.ActiveSessions))
	if deps.LearningHandler != nil {
		deps.LearningHandler.RegisterPublic(api)
	}

	// Every /api/v2 route except the public auth ones needs a signed token
	// naming an open session. Guards are attached per prefix so they never
	// leak onto the public auth routes.
	var guards []fiber.Handler
	if deps.JWTMiddleware != nil && deps.Sessions != nil {
		guards = []fiber.Handler{deps.JWTMiddleware, middleware.RequireSession(deps.Sessions)}
	}
	guarded := func(prefix string, extra ...fiber.Handler) fiber.Router {
		return app.Group(prefix, append(append([]fiber.Handler{}, guards...), extra...)...)
	}

	if deps.AuthHandler != nil {
		auth := app.Group("/api/v2/auth", middleware.RateLimit("auth", authRateLimit, authRateWindow))
		deps.AuthHandler.RegisterPublic(auth)
		if guards != nil {
			deps.AuthHandler.RegisterSession(auth, guards...)
		}
	}

	if guards == nil {
		return
	}

	if deps.LearningHandler != nil {
		deps.LearningHandler.RegisterSession(app.Group("/api/v2"), guards...)
	}
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.Register(guarded("/api/v2/catalog"))
	}
	if deps.StreamHandler != nil {
		deps.StreamHandler.Register(guarded("/api/v2/dashboard"))
	}

	if deps.AdminDashboardHandler != nil {
		deps.AdminDashboardHandler.Register(guarded("/api/v2/admin", middleware.RequireRole(models.RoleAdmin)))
	}
	if deps.TeacherDashboardHandler != nil {
		deps.TeacherDashboardHandler.Register(guarded("/api/v2/teacher", middleware.RequireRole(models.RoleTeacher)))
	}
	if deps.StudentDashboardHandler != nil {
		deps.StudentDashboardHandler.Register(guarded("/api/v2/student", middleware.RequireRole(models.RoleStudent)))
	}
}

package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/kit-service/internal/api/http/handlers"
	"github.com/spec-kit/kit-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	BMI               *handlers.BMIHandler
	Assessments       *handlers.AssessmentsHandler
	Kit               *handlers.KitHandler
	Admin             *handlers.AdminHandler
	AuthMiddleware    *auth.AuthMiddleware
	SubmissionLimiter fiber.Handler
	Metrics           nethttp.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	api := app.Group("/api/v1")
	api.Get("/bmi", cfg.BMI.Calculate)
	api.Get("/bmi/categories", cfg.BMI.Categories)
	api.Get("/kit", cfg.Kit.Preview)

	submit := []fiber.Handler{}
	if cfg.SubmissionLimiter != nil {
		submit = append(submit, cfg.SubmissionLimiter)
	}
	submit = append(submit, cfg.Assessments.Submit)
	api.Post("/assessments", submit...)

	authGroup := app.Group("/auth")
	authGroup.Post("/admin/login", cfg.Admin.Login)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/kit-items", cfg.Kit.List)
	admin.Post("/kit-items", cfg.Kit.Create)
	admin.Get("/kit-items/:id", cfg.Kit.Get)
	admin.Put("/kit-items/:id", cfg.Kit.Update)
	admin.Delete("/kit-items/:id", cfg.Kit.Delete)
}

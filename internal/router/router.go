package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/waaed/assessment-api/internal/config"
	"github.com/waaed/assessment-api/internal/handler"
	"github.com/waaed/assessment-api/internal/middleware"
	"github.com/waaed/assessment-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AttemptHandler *handler.AttemptHandler
	GradeHandler   *handler.GradeHandler
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	assessment := app.Group("/api/v1/assessment", jwtMiddleware)

	// Starting attempts is the one write a client could hammer in a retry
	// loop; everything else is bounded by the attempt state machine.
	assessment.Post("/quizzes/:quizId/attempts", middleware.RateLimit("attempt_start", 10, time.Minute))

	if deps.AttemptHandler != nil {
		deps.AttemptHandler.Register(assessment)
	}
	if deps.GradeHandler != nil {
		deps.GradeHandler.Register(assessment)
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iayeshaabid-21/productivity-app/internal/api/http/handlers"
	"github.com/iayeshaabid-21/productivity-app/internal/auth"
	"github.com/iayeshaabid-21/productivity-app/internal/config"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tasks          *handlers.TasksHandler
	Messages       *handlers.MessagesHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    RateLimiter
	RateLimit      config.RateLimitConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authLimit := rateLimitMiddleware(cfg.RateLimiter, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow())
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authLimit, cfg.Auth.Register)
	authGroup.Post("/login", authLimit, cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/users", cfg.Users.List)

	protected.Get("/tasks", cfg.Tasks.List)
	protected.Post("/tasks", cfg.Tasks.Create)
	protected.Put("/tasks/:id", cfg.Tasks.Update)
	protected.Delete("/tasks/:id", cfg.Tasks.Delete)

	protected.Get("/messages", cfg.Messages.List)
	protected.Post("/messages", cfg.Messages.Create)
	protected.Delete("/messages/:id", cfg.Messages.Delete)
}

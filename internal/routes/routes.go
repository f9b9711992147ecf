package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/umutcano/staffhub-backend/internal/apps"
	"github.com/umutcano/staffhub-backend/internal/config"
	"github.com/umutcano/staffhub-backend/internal/handlers"
	"github.com/umutcano/staffhub-backend/internal/middleware"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/session"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	resolver *session.Resolver,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no auth required)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/activate", authHandler.Activate)
	auth.Post("/refresh", authHandler.Refresh)

	// Session-restored routes: JWT verified, principal re-resolved per request
	restored := api.Group("", middleware.JWTProtected(cfg), middleware.Principal(resolver))
	restored.Post("/auth/logout", authHandler.Logout)
	restored.Get("/auth/me", authHandler.Me)

	// Plugin routes share the restored-session group; role gates are
	// declared per route inside each plugin.
	for _, p := range plugins {
		p.RegisterRoutes(restored, db, cfg)
	}

	// Admin-only plugin routes
	admin := api.Group("/admin",
		middleware.JWTProtected(cfg),
		middleware.Principal(resolver),
		middleware.RequireRoles(models.RoleAdmin),
	)
	for _, p := range plugins {
		if ap, ok := p.(apps.AdminPlugin); ok {
			ap.RegisterAdminRoutes(admin, db, cfg)
		}
	}
}

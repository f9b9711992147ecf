package apps

import (
	"github.com/gofiber/fiber/v2"
	"github.com/umutcano/staffhub-backend/internal/config"
	"gorm.io/gorm"
)

// Plugin defines the interface every HR feature module implements.
type Plugin interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts module routes on the given Fiber group. The
	// group is already prefixed with /api and has JWT plus principal
	// middleware applied; role gates are declared per route.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// AdminPlugin extends Plugin with admin-only route registration.
type AdminPlugin interface {
	Plugin

	// RegisterAdminRoutes mounts routes on a group that already requires
	// the admin role.
	RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

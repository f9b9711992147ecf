package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/umutcano/staffhub-backend/internal/config"
	"gorm.io/gorm"
)

type DashboardPlugin struct{}

func New() *DashboardPlugin {
	return &DashboardPlugin{}
}

func (p *DashboardPlugin) ID() string { return "dashboard" }

// Models is empty: the dashboard only reads other modules' tables.
func (p *DashboardPlugin) Models() []interface{} {
	return nil
}

func (p *DashboardPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db)
	handler := NewHandler(svc)

	// Every authenticated role gets a dashboard; the service picks the shape.
	router.Get("/dashboard/stats", handler.Stats)
}

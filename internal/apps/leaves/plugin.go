package leaves

import (
	"github.com/gofiber/fiber/v2"
	"github.com/umutcano/staffhub-backend/internal/config"
	"github.com/umutcano/staffhub-backend/internal/middleware"
	"github.com/umutcano/staffhub-backend/internal/models"
	"gorm.io/gorm"
)

type LeavesPlugin struct{}

func New() *LeavesPlugin {
	return &LeavesPlugin{}
}

func (p *LeavesPlugin) ID() string { return "leaves" }

func (p *LeavesPlugin) Models() []interface{} {
	return []interface{}{
		&LeaveRequest{},
		&Balance{},
	}
}

func (p *LeavesPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db)
	handler := NewHandler(svc)

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)
	selfService := middleware.RequireRoles(models.RoleEmployee)

	router.Post("/leaves", selfService, handler.Apply)
	router.Get("/leaves/me", selfService, handler.ListMine)
	router.Get("/leaves/balance", selfService, handler.MyBalance)
	router.Post("/leaves/:id/cancel", selfService, handler.Cancel)

	router.Get("/leaves", staff, handler.ListCompany)
	router.Put("/leaves/:id/decision", staff, handler.Decide)
}

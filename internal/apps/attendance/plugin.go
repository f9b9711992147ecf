package attendance

import (
	"github.com/gofiber/fiber/v2"
	"github.com/umutcano/staffhub-backend/internal/config"
	"github.com/umutcano/staffhub-backend/internal/middleware"
	"github.com/umutcano/staffhub-backend/internal/models"
	"gorm.io/gorm"
)

type AttendancePlugin struct{}

func New() *AttendancePlugin {
	return &AttendancePlugin{}
}

func (p *AttendancePlugin) ID() string { return "attendance" }

func (p *AttendancePlugin) Models() []interface{} {
	return []interface{}{
		&Record{},
	}
}

func (p *AttendancePlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db)
	handler := NewHandler(svc)

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)
	selfService := middleware.RequireRoles(models.RoleEmployee)

	router.Post("/attendance", selfService, handler.Mark)
	router.Get("/attendance/me", selfService, handler.ListMine)
	router.Get("/attendance", staff, handler.ListCompany)
	router.Get("/attendance/summary/:id", staff, handler.Summary)
}

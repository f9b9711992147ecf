package employees

import (
	"github.com/gofiber/fiber/v2"
	"github.com/umutcano/staffhub-backend/internal/config"
	"github.com/umutcano/staffhub-backend/internal/middleware"
	"github.com/umutcano/staffhub-backend/internal/models"
	"gorm.io/gorm"
)

type EmployeesPlugin struct{}

func New() *EmployeesPlugin {
	return &EmployeesPlugin{}
}

func (p *EmployeesPlugin) ID() string { return "employees" }

func (p *EmployeesPlugin) Models() []interface{} {
	return []interface{}{
		&Document{},
	}
}

func (p *EmployeesPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewDirectoryService(db)
	handler := NewDirectoryHandler(svc)

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	router.Get("/employees/me", handler.GetSelf)
	router.Get("/employees", staff, handler.List)
	router.Post("/employees", staff, handler.Create)
	router.Get("/employees/:id", staff, handler.Get)
	router.Put("/employees/:id", staff, handler.Update)
	router.Post("/employees/:id/deactivate", adminOnly, handler.Deactivate)

	router.Get("/managers", adminOnly, handler.ListManagers)
	router.Post("/managers", adminOnly, handler.CreateManager)

	router.Post("/employees/:id/documents", staff, handler.AddDocument)
	router.Get("/employees/:id/documents", staff, handler.ListDocuments)
	router.Get("/documents/expiring", staff, handler.ExpiringDocuments)
	router.Delete("/documents/:id", adminOnly, handler.DeleteDocument)
}

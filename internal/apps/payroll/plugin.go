package payroll

import (
	"github.com/gofiber/fiber/v2"
	"github.com/umutcano/staffhub-backend/internal/config"
	"github.com/umutcano/staffhub-backend/internal/middleware"
	"github.com/umutcano/staffhub-backend/internal/models"
	"gorm.io/gorm"
)

type PayrollPlugin struct{}

func New() *PayrollPlugin {
	return &PayrollPlugin{}
}

func (p *PayrollPlugin) ID() string { return "payroll" }

func (p *PayrollPlugin) Models() []interface{} {
	return []interface{}{
		&SalaryStructure{},
		&Payslip{},
	}
}

func (p *PayrollPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db)
	handler := NewHandler(svc)

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)
	selfService := middleware.RequireRoles(models.RoleEmployee)

	router.Get("/payroll/me", selfService, handler.MyPayslips)
	router.Get("/payroll/structure/:id", staff, handler.GetStructure)
	router.Get("/payroll/payslips", staff, handler.PeriodPayslips)
}

// RegisterAdminRoutes mounts the money-moving operations behind the admin
// gate: structure changes and payslip generation.
func (p *PayrollPlugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db)
	handler := NewHandler(svc)

	router.Post("/payroll/structure", handler.SetStructure)
	router.Post("/payroll/generate", handler.Generate)
}

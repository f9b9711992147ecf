package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/umutcano/staffhub-backend/internal/dto"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/tenant"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Stats serves the role-appropriate dashboard: company-wide counters for
// admin and manager, a personal snapshot for employees.
func (h *Handler) Stats(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	switch principal.Role {
	case models.RoleAdmin, models.RoleManager:
		stats, err := h.service.CompanyStats(principal.TenantID())
		if err != nil {
			return internalError(c)
		}
		return c.JSON(stats)
	default:
		if principal.EmployeeRef == nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: ErrNoEmployeeRecord.Error(),
			})
		}
		stats, err := h.service.EmployeeStats(principal.TenantID(), *principal.EmployeeRef)
		if err != nil {
			return internalError(c)
		}
		return c.JSON(stats)
	}
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

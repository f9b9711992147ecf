package payroll

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/dto"
	"github.com/umutcano/staffhub-backend/internal/tenant"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SetStructure(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req SetStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	structure, err := h.service.SetStructure(companyID, req)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return notFound(c, err)
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(structure)
}

func (h *Handler) GetStructure(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid employee id")
	}

	structure, err := h.service.CurrentStructure(companyID, employeeID)
	if err != nil {
		if errors.Is(err, ErrNoStructure) {
			return notFound(c, err)
		}
		return internalError(c)
	}
	return c.JSON(structure)
}

func (h *Handler) Generate(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.service.Generate(companyID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			return badRequest(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *Handler) MyPayslips(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return unauthorized(c)
	}
	if principal.EmployeeRef == nil {
		return badRequest(c, "Account has no linked employee record")
	}

	resp, err := h.service.PayslipsForEmployee(principal.TenantID(), *principal.EmployeeRef)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *Handler) PeriodPayslips(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	now := time.Now()
	year, _ := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
	if month < 1 || month > 12 {
		return badRequest(c, "Invalid month")
	}

	resp, err := h.service.PayslipsForPeriod(companyID, year, month)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func notFound(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
}

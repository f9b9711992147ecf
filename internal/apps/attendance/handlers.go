package attendance

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

// Mark records today's attendance for the calling employee.
func (h *Handler) Mark(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return unauthorized(c)
	}
	if principal.EmployeeRef == nil {
		return badRequest(c, "Account has no linked employee record")
	}

	var req MarkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	record, err := h.service.MarkToday(principal.TenantID(), *principal.EmployeeRef, req)
	if err != nil {
		if errors.Is(err, ErrAlreadyMarked) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, ErrInvalidStatus) {
			return badRequest(c, err.Error())
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListMine returns the calling employee's own history.
func (h *Handler) ListMine(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return unauthorized(c)
	}
	if principal.EmployeeRef == nil {
		return badRequest(c, "Account has no linked employee record")
	}

	from, to := parseRange(c)
	limit, offset := parsePage(c)

	resp, err := h.service.ListForEmployee(principal.TenantID(), *principal.EmployeeRef, from, to, limit, offset)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

// ListCompany returns one day's records across the company (manager/admin).
func (h *Handler) ListCompany(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	day := time.Now()
	if q := c.Query("day"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return badRequest(c, "Invalid day, expected YYYY-MM-DD")
		}
		day = parsed
	}
	limit, offset := parsePage(c)

	resp, err := h.service.ListForCompany(companyID, day, limit, offset)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

// Summary returns per-status counts for an employee and month.
func (h *Handler) Summary(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid employee id")
	}

	now := time.Now()
	year, _ := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
	if month < 1 || month > 12 {
		return badRequest(c, "Invalid month")
	}

	summary, err := h.service.Summary(companyID, employeeID, year, month)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(summary)
}

func parseRange(c *fiber.Ctx) (time.Time, time.Time) {
	var from, to time.Time
	if q := c.Query("from"); q != "" {
		if parsed, err := time.Parse("2006-01-02", q); err == nil {
			from = parsed
		}
	}
	if q := c.Query("to"); q != "" {
		if parsed, err := time.Parse("2006-01-02", q); err == nil {
			to = parsed
		}
	}
	return from, to
}

func parsePage(c *fiber.Ctx) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit", "31"))
	if limit <= 0 || limit > 100 {
		limit = 31
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
}

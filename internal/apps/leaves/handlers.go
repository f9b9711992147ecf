package leaves

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

func (h *Handler) Apply(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return unauthorized(c)
	}
	if principal.EmployeeRef == nil {
		return badRequest(c, "Account has no linked employee record")
	}

	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	request, err := h.service.Apply(principal.TenantID(), *principal.EmployeeRef, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientDays), errors.Is(err, ErrOverlappingRequest):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidRange):
			return badRequest(c, err.Error())
		default:
			return badRequest(c, err.Error())
		}
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *Handler) Cancel(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return unauthorized(c)
	}
	if principal.EmployeeRef == nil {
		return badRequest(c, "Account has no linked employee record")
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request id")
	}

	if err := h.service.CancelOwn(principal.TenantID(), *principal.EmployeeRef, requestID); err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			return notFound(c, err)
		case errors.Is(err, ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrNotPending):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return internalError(c)
		}
	}
	return c.JSON(fiber.Map{"message": "Leave request cancelled"})
}

func (h *Handler) Decide(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return unauthorized(c)
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request id")
	}

	var req DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	request, err := h.service.Decide(principal.TenantID(), principal.UID, requestID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			return notFound(c, err)
		case errors.Is(err, ErrNotPending), errors.Is(err, ErrInsufficientDays):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return internalError(c)
		}
	}
	return c.JSON(request)
}

func (h *Handler) ListMine(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return unauthorized(c)
	}
	if principal.EmployeeRef == nil {
		return badRequest(c, "Account has no linked employee record")
	}

	limit, offset := parsePage(c)
	resp, err := h.service.ListForEmployee(principal.TenantID(), *principal.EmployeeRef, limit, offset)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *Handler) ListCompany(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit, offset := parsePage(c)
	resp, err := h.service.ListForCompany(companyID, RequestStatus(c.Query("status")), limit, offset)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *Handler) MyBalance(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return unauthorized(c)
	}
	if principal.EmployeeRef == nil {
		return badRequest(c, "Account has no linked employee record")
	}

	year, _ := strconv.Atoi(c.Query("year", "0"))
	if year == 0 {
		year = currentYear()
	}

	balance, err := h.service.BalanceFor(principal.TenantID(), *principal.EmployeeRef, year)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(balance)
}

func currentYear() int {
	return time.Now().Year()
}

func parsePage(c *fiber.Ctx) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
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

func notFound(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
}

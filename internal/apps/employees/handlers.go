package employees

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/dto"
	"github.com/umutcano/staffhub-backend/internal/tenant"
)

type DirectoryHandler struct {
	service *DirectoryService
}

func NewDirectoryHandler(service *DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

func (h *DirectoryHandler) Create(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	emp, err := h.service.CreateEmployee(companyID, req)
	if err != nil {
		if errors.Is(err, ErrEmployeeNoTaken) {
			return conflict(c, err)
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(emp)
}

func (h *DirectoryHandler) List(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	resp, err := h.service.ListEmployees(companyID, c.Query("department"), limit, offset)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}

func (h *DirectoryHandler) Get(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid employee id")
	}

	emp, err := h.service.GetEmployee(companyID, id)
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(emp)
}

// GetSelf returns the employee record linked to the calling principal.
func (h *DirectoryHandler) GetSelf(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return unauthorized(c)
	}
	if principal.EmployeeRef == nil {
		return notFound(c, ErrNoEmployeeRecord)
	}

	emp, err := h.service.GetEmployee(principal.TenantID(), *principal.EmployeeRef)
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(emp)
}

func (h *DirectoryHandler) Update(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid employee id")
	}

	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	emp, err := h.service.UpdateEmployee(companyID, id, req)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return notFound(c, err)
		}
		return internalError(c, err)
	}
	return c.JSON(emp)
}

func (h *DirectoryHandler) Deactivate(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid employee id")
	}

	if err := h.service.DeactivateEmployee(companyID, id); err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return notFound(c, err)
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deactivated"})
}

func (h *DirectoryHandler) CreateManager(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	mgr, err := h.service.CreateManager(companyID, req)
	if err != nil {
		if errors.Is(err, ErrManagerNoTaken) {
			return conflict(c, err)
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(mgr)
}

func (h *DirectoryHandler) ListManagers(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.service.ListManagers(companyID)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}

func (h *DirectoryHandler) AddDocument(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid employee id")
	}

	var req AddDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	doc, err := h.service.AddDocument(companyID, employeeID, req)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return notFound(c, err)
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DirectoryHandler) ListDocuments(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid employee id")
	}

	docs, err := h.service.ListDocuments(companyID, employeeID)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(docs)
}

func (h *DirectoryHandler) ExpiringDocuments(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	days, _ := strconv.Atoi(c.Query("days", "30"))
	if days <= 0 || days > 365 {
		days = 30
	}

	docs, err := h.service.ExpiringDocuments(companyID, days)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(docs)
}

func (h *DirectoryHandler) DeleteDocument(c *fiber.Ctx) error {
	companyID, err := tenant.GetCompanyID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid document id")
	}

	if err := h.service.DeleteDocument(companyID, id); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return notFound(c, err)
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Document deleted"})
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

func conflict(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func internalError(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
}

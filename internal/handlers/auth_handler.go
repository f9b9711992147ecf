package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/umutcano/staffhub-backend/internal/dto"
	"github.com/umutcano/staffhub-backend/internal/gate"
	"github.com/umutcano/staffhub-backend/internal/services"
	"github.com/umutcano/staffhub-backend/internal/session"
	"github.com/umutcano/staffhub-backend/internal/tenant"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrLoginIDTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return badRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return authError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Activate(c *fiber.Ctx) error {
	var req dto.ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Activate(c.Context(), &req)
	if err != nil {
		return authError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Refresh(c.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(c.Context(), principal.UID, &req); err != nil {
		return internalError(c)
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me returns the restored-session principal plus its role menu.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, err := tenant.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	return c.JSON(fiber.Map{
		"principal":    principal,
		"menu":         gate.MenuFor(principal.Role),
		"landing_path": gate.LandingPath(principal.Role),
	})
}

// authError maps the resolver's error taxonomy onto HTTP statuses. Every
// sentinel stays distinguishable to the client.
func authError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrAccountNotFound),
		errors.Is(err, session.ErrSourceRecordNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, session.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, session.ErrAccountDisabled):
		status = fiber.StatusForbidden
	case errors.Is(err, session.ErrRateLimited):
		status = fiber.StatusTooManyRequests
	case errors.Is(err, session.ErrAccountAlreadyActivated):
		status = fiber.StatusConflict
	case errors.Is(err, session.ErrAuthProvider):
		status = fiber.StatusBadGateway
	}

	if status == fiber.StatusInternalServerError {
		return internalError(c)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/umutcano/staffhub-backend/internal/dto"
	"github.com/umutcano/staffhub-backend/internal/gate"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/tenant"
)

// RequireRoles gates a route with an explicit allowed-role set. The denial
// response carries the gate's redirect target so the client lands on a
// role-appropriate page.
func RequireRoles(roles ...models.Role) fiber.Handler {
	allowed := gate.Roles(roles...)
	return func(c *fiber.Ctx) error {
		principal, err := tenant.GetPrincipal(c)
		if err != nil {
			return unauthorized(c)
		}

		decision := gate.EvaluatePrincipal(principal, allowed, gate.DashboardPath)
		switch decision.Status {
		case gate.StatusAllowed:
			return c.Next()
		case gate.StatusUnauthenticated:
			return unauthorized(c)
		default:
			return c.Status(fiber.StatusForbidden).JSON(dto.DeniedResponse{
				Error:      true,
				Message:    "Access denied for role " + string(principal.Role),
				RedirectTo: decision.RedirectTo,
			})
		}
	}
}

package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/session"
)

// GetPrincipal extracts the resolved session principal from Fiber context
// locals. The principal middleware puts it there.
func GetPrincipal(c *fiber.Ctx) (*session.Principal, error) {
	p, ok := c.Locals("principal").(*session.Principal)
	if !ok || p == nil {
		return nil, errors.New("no principal in context")
	}
	return p, nil
}

// GetCompanyID returns the company scope of the current principal.
func GetCompanyID(c *fiber.Ctx) (uuid.UUID, error) {
	p, err := GetPrincipal(c)
	if err != nil {
		return uuid.Nil, err
	}
	return p.TenantID(), nil
}

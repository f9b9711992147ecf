package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/models"
)

// Principal is the resolved, authenticated session identity. It is derived
// from an account record at sign-in or session restore and never persisted
// by this package.
type Principal struct {
	UID         uuid.UUID            `json:"uid"`
	LoginID     string               `json:"login_id"`
	Role        models.Role          `json:"role"`
	CompanyID   *uuid.UUID           `json:"company_id,omitempty"`
	EmployeeRef *uuid.UUID           `json:"employee_ref,omitempty"`
	DisplayName string               `json:"display_name"`
	Status      models.AccountStatus `json:"status"`
	LastLoginAt *time.Time           `json:"last_login_at,omitempty"`
}

// TenantID returns the company scope for database queries. Admin accounts
// are the tenant root, so their own UID is the scope.
func (p *Principal) TenantID() uuid.UUID {
	if p.Role == models.RoleAdmin || p.CompanyID == nil {
		return p.UID
	}
	return *p.CompanyID
}

func principalFromAccount(a *models.Account) *Principal {
	return &Principal{
		UID:         a.UID,
		LoginID:     a.LoginID,
		Role:        a.Role,
		CompanyID:   a.CompanyID,
		EmployeeRef: a.EmployeeRef,
		DisplayName: a.DisplayName,
		Status:      a.Status,
		LastLoginAt: a.LastLoginAt,
	}
}

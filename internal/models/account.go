package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account links a human-chosen login identifier to a credential identity
// and a role. For manager and employee accounts, CompanyID points at the
// UID of the admin account that roots their company.
type Account struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"uid"`
	LoginID     string         `gorm:"size:50;not null;uniqueIndex" json:"login_id"`
	EmployeeNo  *string        `gorm:"size:50;index" json:"employee_no,omitempty"`
	Email       string         `gorm:"size:255;not null;index" json:"email"`
	Role        Role           `gorm:"size:20;not null" json:"role"`
	CompanyID   *uuid.UUID     `gorm:"type:uuid;index" json:"company_id,omitempty"`
	EmployeeRef *uuid.UUID     `gorm:"type:uuid;index" json:"employee_ref,omitempty"`
	DisplayName string         `gorm:"size:255" json:"display_name"`
	Status      AccountStatus  `gorm:"size:20;default:'active'" json:"status"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

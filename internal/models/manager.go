package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Manager is a pre-provisioned source record for the manager activation
// flow, identified by ManagerNo.
type Manager struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_managers_company_no" json:"company_id"`
	ManagerNo  string         `gorm:"size:50;not null;uniqueIndex:idx_managers_company_no" json:"manager_no"`
	FullName   string         `gorm:"size:255;not null" json:"full_name"`
	Email      string         `gorm:"size:255;not null" json:"email"`
	Department string         `gorm:"size:100;index" json:"department"`
	Status     AccountStatus  `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a pre-provisioned source record. An employee activates a
// login account against it using the EmployeeNo as the identifier.
type Employee struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_employees_company_no" json:"company_id"`
	EmployeeNo  string         `gorm:"size:50;not null;uniqueIndex:idx_employees_company_no" json:"employee_no"`
	FullName    string         `gorm:"size:255;not null" json:"full_name"`
	Email       string         `gorm:"size:255;not null" json:"email"`
	Phone       string         `gorm:"size:30" json:"phone"`
	Department  string         `gorm:"size:100;index" json:"department"`
	Designation string         `gorm:"size:100" json:"designation"`
	ManagerID   *uuid.UUID     `gorm:"type:uuid;index" json:"manager_id,omitempty"`
	JoinedAt    time.Time      `json:"joined_at"`
	Status      AccountStatus  `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

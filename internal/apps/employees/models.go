package employees

import (
	"time"

	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document is a tracked record about an employee (contract, ID proof,
// certificate). Metadata holds free-form attributes; blob storage is out of
// scope, only the record is kept.
type Document struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	DocType    string         `gorm:"size:50;index" json:"doc_type"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	ExpiresAt  *time.Time     `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateEmployeeRequest struct {
	EmployeeNo  string     `json:"employee_no"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Department  string     `json:"department"`
	Designation string     `json:"designation"`
	ManagerID   *uuid.UUID `json:"manager_id"`
	JoinedAt    time.Time  `json:"joined_at"`
}

type UpdateEmployeeRequest struct {
	FullName    *string    `json:"full_name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Department  *string    `json:"department"`
	Designation *string    `json:"designation"`
	ManagerID   *uuid.UUID `json:"manager_id"`
}

type CreateManagerRequest struct {
	ManagerNo  string `json:"manager_no"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type EmployeeListResponse struct {
	Employees []models.Employee `json:"employees"`
	Total     int64             `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

type ManagerListResponse struct {
	Managers []models.Manager `json:"managers"`
	Total    int64            `json:"total"`
}

type AddDocumentRequest struct {
	Title     string            `json:"title"`
	DocType   string            `json:"doc_type"`
	Metadata  map[string]string `json:"metadata"`
	ExpiresAt *time.Time        `json:"expires_at"`
}

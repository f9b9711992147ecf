package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalaryStructure is an employee's pay breakdown in minor currency units
// (cents). A new structure supersedes the previous one by EffectiveFrom;
// old rows are kept for history.
type SalaryStructure struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Basic         int64          `gorm:"not null" json:"basic"`
	Allowances    int64          `gorm:"default:0" json:"allowances"`
	Deductions    int64          `gorm:"default:0" json:"deductions"`
	EffectiveFrom time.Time      `gorm:"type:date;not null;index" json:"effective_from"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *SalaryStructure) Gross() int64 {
	return s.Basic + s.Allowances
}

func (s *SalaryStructure) Net() int64 {
	return s.Gross() - s.Deductions
}

type PayslipStatus string

const (
	PayslipDraft  PayslipStatus = "draft"
	PayslipIssued PayslipStatus = "issued"
)

// Payslip is one employee's pay for one month. The unique index keeps
// generation idempotent: one payslip per employee per month.
type Payslip struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_payslips_employee_month" json:"employee_id"`
	Year        int           `gorm:"not null;uniqueIndex:idx_payslips_employee_month" json:"year"`
	Month       int           `gorm:"not null;uniqueIndex:idx_payslips_employee_month" json:"month"`
	Basic       int64         `gorm:"not null" json:"basic"`
	Allowances  int64         `gorm:"default:0" json:"allowances"`
	Deductions  int64         `gorm:"default:0" json:"deductions"`
	Gross       int64         `gorm:"not null" json:"gross"`
	Net         int64         `gorm:"not null" json:"net"`
	Status      PayslipStatus `gorm:"size:20;default:'issued'" json:"status"`
	GeneratedAt time.Time     `json:"generated_at"`
	CreatedAt   time.Time     `json:"created_at"`
}

// --- DTOs ---

type SetStructureRequest struct {
	EmployeeID    uuid.UUID `json:"employee_id"`
	Basic         int64     `json:"basic"`
	Allowances    int64     `json:"allowances"`
	Deductions    int64     `json:"deductions"`
	EffectiveFrom string    `json:"effective_from"` // YYYY-MM-DD, defaults to today
}

type GenerateRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type GenerateResponse struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Year      int `json:"year"`
	Month     int `json:"month"`
}

type PayslipListResponse struct {
	Payslips []Payslip `json:"payslips"`
	Total    int64     `json:"total"`
}

package leaves

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType string

const (
	TypeCasual LeaveType = "casual"
	TypeSick   LeaveType = "sick"
	TypeEarned LeaveType = "earned"
	TypeUnpaid LeaveType = "unpaid"
)

func (t LeaveType) Valid() bool {
	switch t {
	case TypeCasual, TypeSick, TypeEarned, TypeUnpaid:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// LeaveRequest is one employee's request for a date range. Approval and
// rejection are terminal; only pending requests can be cancelled by their
// owner.
type LeaveRequest struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Type         LeaveType      `gorm:"size:20;not null" json:"type"`
	FromDay      time.Time      `gorm:"type:date;not null" json:"from_day"`
	ToDay        time.Time      `gorm:"type:date;not null" json:"to_day"`
	Days         int            `gorm:"not null" json:"days"`
	Reason       string         `gorm:"size:500" json:"reason"`
	Status       RequestStatus  `gorm:"size:20;default:'pending';index" json:"status"`
	DecidedBy    *uuid.UUID     `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecisionNote string         `gorm:"size:500" json:"decision_note"`
	DecidedAt    *time.Time     `json:"decided_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Balance tracks remaining leave days per employee per year. Unpaid leave
// has no balance.
type Balance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_balance_employee_year" json:"employee_id"`
	Year       int       `gorm:"not null;uniqueIndex:idx_leave_balance_employee_year" json:"year"`
	Casual     int       `gorm:"default:12" json:"casual"`
	Sick       int       `gorm:"default:10" json:"sick"`
	Earned     int       `gorm:"default:0" json:"earned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (b *Balance) remaining(t LeaveType) int {
	switch t {
	case TypeCasual:
		return b.Casual
	case TypeSick:
		return b.Sick
	case TypeEarned:
		return b.Earned
	}
	return 0
}

// --- DTOs ---

type ApplyRequest struct {
	Type    LeaveType `json:"type"`
	FromDay string    `json:"from_day"` // YYYY-MM-DD
	ToDay   string    `json:"to_day"`
	Reason  string    `json:"reason"`
}

type DecideRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

type ListResponse struct {
	Requests []LeaveRequest `json:"requests"`
	Total    int64          `json:"total"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
}

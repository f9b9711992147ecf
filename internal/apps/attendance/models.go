package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusHalfDay, StatusAbsent, StatusOnLeave:
		return true
	}
	return false
}

// Record is one employee's attendance for one day. The unique index is the
// final authority against double marking.
type Record struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_day" json:"employee_id"`
	Day        time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_day;index" json:"day"`
	Status     Status    `gorm:"size:20;not null" json:"status"`
	CheckInAt  time.Time `json:"check_in_at"`
	Note       string    `gorm:"size:255" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// --- DTOs ---

type MarkRequest struct {
	Status Status `json:"status"`
	Note   string `json:"note"`
}

type ListResponse struct {
	Records []Record `json:"records"`
	Total   int64    `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}

// MonthlySummary is the per-status count for one employee and month.
type MonthlySummary struct {
	EmployeeID uuid.UUID      `json:"employee_id"`
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Counts     map[Status]int `json:"counts"`
	WorkedDays int            `json:"worked_days"`
}

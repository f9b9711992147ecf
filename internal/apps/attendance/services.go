package attendance

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/tenant"
	"gorm.io/gorm"
)

var (
	ErrAlreadyMarked = errors.New("attendance already marked for today")
	ErrInvalidStatus = errors.New("invalid attendance status")
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// dateOnly truncates to a UTC calendar day so the per-day unique index
// compares equal regardless of wall-clock time.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MarkToday records today's attendance for one employee. One row per
// employee per day; a second mark fails with ErrAlreadyMarked.
func (s *Service) MarkToday(companyID, employeeID uuid.UUID, req MarkRequest) (*Record, error) {
	status := req.Status
	if status == "" {
		status = StatusPresent
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	now := s.now()
	record := Record{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Day:        dateOnly(now),
		Status:     status,
		CheckInAt:  now,
		Note:       req.Note,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMarked
		}
		return nil, fmt.Errorf("failed to mark attendance: %w", err)
	}
	return &record, nil
}

func (s *Service) ListForEmployee(companyID, employeeID uuid.UUID, from, to time.Time, limit, offset int) (*ListResponse, error) {
	query := s.db.Model(&Record{}).
		Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ?", employeeID)
	if !from.IsZero() {
		query = query.Where("day >= ?", dateOnly(from))
	}
	if !to.IsZero() {
		query = query.Where("day <= ?", dateOnly(to))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var records []Record
	if err := query.Order("day desc").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, err
	}
	return &ListResponse{Records: records, Total: total, Limit: limit, Offset: offset}, nil
}

// ListForCompany returns all records for one day across the company.
func (s *Service) ListForCompany(companyID uuid.UUID, day time.Time, limit, offset int) (*ListResponse, error) {
	query := s.db.Model(&Record{}).
		Scopes(tenant.ForCompany(companyID)).
		Where("day = ?", dateOnly(day))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var records []Record
	if err := query.Order("check_in_at asc").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, err
	}
	return &ListResponse{Records: records, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *Service) Summary(companyID, employeeID uuid.UUID, year, month int) (*MonthlySummary, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var records []Record
	if err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ? AND day BETWEEN ? AND ?", employeeID, start, end).
		Find(&records).Error; err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Counts:     make(map[Status]int),
	}
	for _, r := range records {
		summary.Counts[r.Status]++
		switch r.Status {
		case StatusPresent:
			summary.WorkedDays++
		case StatusHalfDay:
			summary.WorkedDays++ // half days count as worked for summary purposes
		}
	}
	return summary, nil
}

// CloseDay inserts absent rows for every active employee without a record
// on the given day. Run by the nightly scheduler for the previous day.
func (s *Service) CloseDay(day time.Time) error {
	target := dateOnly(day)

	var employees []models.Employee
	if err := s.db.Where("status = ?", models.StatusActive).Find(&employees).Error; err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	closed := 0
	for _, emp := range employees {
		record := Record{
			ID:         uuid.New(),
			CompanyID:  emp.CompanyID,
			EmployeeID: emp.ID,
			Day:        target,
			Status:     StatusAbsent,
			CheckInAt:  target,
			Note:       "auto-closed",
		}
		err := s.db.Create(&record).Error
		if err == nil {
			closed++
			continue
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			slog.Error("failed to close attendance day", "action", "close_day",
				"employee_id", emp.ID.String(), "error", err.Error())
		}
	}

	if closed > 0 {
		slog.Info("attendance day closed", "day", target.Format("2006-01-02"), "absent_rows", closed)
	}
	return nil
}

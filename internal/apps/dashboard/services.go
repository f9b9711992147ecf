package dashboard

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/apps/attendance"
	"github.com/umutcano/staffhub-backend/internal/apps/employees"
	"github.com/umutcano/staffhub-backend/internal/apps/leaves"
	"github.com/umutcano/staffhub-backend/internal/apps/payroll"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/tenant"
	"gorm.io/gorm"
)

var ErrNoEmployeeRecord = errors.New("account has no linked employee record")

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CompanyStats aggregates the admin/manager dashboard counters. Each
// counter is one scoped query; nothing here mutates state.
func (s *Service) CompanyStats(companyID uuid.UUID) (*CompanyStats, error) {
	now := s.now()
	today := dateOnly(now)
	weekAgo := now.AddDate(0, 0, -7)
	docCutoff := now.AddDate(0, 0, 30)

	stats := &CompanyStats{}
	scoped := func(model interface{}) *gorm.DB {
		return s.db.Model(model).Scopes(tenant.ForCompany(companyID))
	}

	if err := scoped(&models.Employee{}).Count(&stats.Headcount).Error; err != nil {
		return nil, err
	}
	if err := scoped(&models.Employee{}).
		Where("status = ?", models.StatusActive).
		Count(&stats.ActiveEmployees).Error; err != nil {
		return nil, err
	}
	if err := scoped(&models.Manager{}).Count(&stats.Managers).Error; err != nil {
		return nil, err
	}
	if err := scoped(&attendance.Record{}).
		Where("day = ? AND status IN ?", today, []attendance.Status{attendance.StatusPresent, attendance.StatusHalfDay}).
		Count(&stats.PresentToday).Error; err != nil {
		return nil, err
	}
	if err := scoped(&leaves.LeaveRequest{}).
		Where("status = ? AND from_day <= ? AND to_day >= ?", leaves.StatusApproved, today, today).
		Count(&stats.OnLeaveToday).Error; err != nil {
		return nil, err
	}
	if err := scoped(&leaves.LeaveRequest{}).
		Where("status = ?", leaves.StatusPending).
		Count(&stats.PendingLeaves).Error; err != nil {
		return nil, err
	}
	if err := scoped(&models.Employee{}).
		Where("joined_at >= ?", weekAgo).
		Count(&stats.RecentJoiners).Error; err != nil {
		return nil, err
	}
	if err := scoped(&employees.Document{}).
		Where("expires_at IS NOT NULL AND expires_at <= ?", docCutoff).
		Count(&stats.ExpiringDocuments).Error; err != nil {
		return nil, err
	}

	total, err := payroll.NewService(s.db).MonthlyTotal(companyID, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	stats.MonthlySalaryTotal = total

	return stats, nil
}

// EmployeeStats aggregates the employee's own snapshot.
func (s *Service) EmployeeStats(companyID, employeeID uuid.UUID) (*EmployeeStats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &EmployeeStats{EmployeeID: employeeID}

	if err := s.db.Model(&attendance.Record{}).
		Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ? AND day >= ? AND status IN ?",
			employeeID, monthStart, []attendance.Status{attendance.StatusPresent, attendance.StatusHalfDay}).
		Count(&stats.PresentThisMonth).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&leaves.LeaveRequest{}).
		Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ? AND status = ?", employeeID, leaves.StatusPending).
		Count(&stats.PendingLeaves).Error; err != nil {
		return nil, err
	}

	balance, err := leaves.NewService(s.db).BalanceFor(companyID, employeeID, now.Year())
	if err != nil {
		return nil, err
	}
	stats.CasualRemaining = balance.Casual
	stats.SickRemaining = balance.Sick
	stats.EarnedRemaining = balance.Earned

	var last payroll.Payslip
	err = s.db.Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ?", employeeID).
		Order("year desc, month desc").
		First(&last).Error
	if err == nil {
		stats.LastPayslipNet = last.Net
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return stats, nil
}

package leaves

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
	ErrInvalidType        = errors.New("invalid leave type")
	ErrInvalidRange       = errors.New("from_day must not be after to_day")
	ErrInsufficientDays   = errors.New("insufficient leave balance")
	ErrRequestNotFound    = errors.New("leave request not found")
	ErrNotPending         = errors.New("leave request is not pending")
	ErrNotOwner           = errors.New("leave request belongs to another employee")
	ErrOverlappingRequest = errors.New("an open request already covers part of this range")
)

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

// Apply files a leave request. Balance is checked at apply time for typed
// leave; the authoritative deduction happens at approval.
func (s *Service) Apply(companyID, employeeID uuid.UUID, req ApplyRequest) (*LeaveRequest, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}

	from, err := time.Parse("2006-01-02", req.FromDay)
	if err != nil {
		return nil, fmt.Errorf("invalid from_day: %w", err)
	}
	to, err := time.Parse("2006-01-02", req.ToDay)
	if err != nil {
		return nil, fmt.Errorf("invalid to_day: %w", err)
	}
	from, to = dateOnly(from), dateOnly(to)
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	days := int(to.Sub(from).Hours()/24) + 1

	var overlapping int64
	if err := s.db.Model(&LeaveRequest{}).
		Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ? AND status IN ? AND from_day <= ? AND to_day >= ?",
			employeeID, []RequestStatus{StatusPending, StatusApproved}, to, from).
		Count(&overlapping).Error; err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrOverlappingRequest
	}

	if req.Type != TypeUnpaid {
		balance, err := s.BalanceFor(companyID, employeeID, from.Year())
		if err != nil {
			return nil, err
		}
		if balance.remaining(req.Type) < days {
			return nil, ErrInsufficientDays
		}
	}

	request := LeaveRequest{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Type:       req.Type,
		FromDay:    from,
		ToDay:      to,
		Days:       days,
		Reason:     req.Reason,
		Status:     StatusPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}
	return &request, nil
}

// CancelOwn cancels the caller's own pending request.
func (s *Service) CancelOwn(companyID, employeeID, requestID uuid.UUID) error {
	var request LeaveRequest
	if err := s.db.Scopes(tenant.ForCompany(companyID)).First(&request, "id = ?", requestID).Error; err != nil {
		return ErrRequestNotFound
	}
	if request.EmployeeID != employeeID {
		return ErrNotOwner
	}
	if request.Status != StatusPending {
		return ErrNotPending
	}
	return s.db.Model(&request).Update("status", StatusCancelled).Error
}

// Decide approves or rejects a pending request. Approval deducts the typed
// balance inside the same transaction.
func (s *Service) Decide(companyID, deciderUID, requestID uuid.UUID, req DecideRequest) (*LeaveRequest, error) {
	var request LeaveRequest
	if err := s.db.Scopes(tenant.ForCompany(companyID)).First(&request, "id = ?", requestID).Error; err != nil {
		return nil, ErrRequestNotFound
	}
	if request.Status != StatusPending {
		return nil, ErrNotPending
	}

	status := StatusRejected
	if req.Approve {
		status = StatusApproved
	}
	now := s.now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Updates(map[string]interface{}{
			"status":        status,
			"decided_by":    deciderUID,
			"decision_note": req.Note,
			"decided_at":    now,
		}).Error; err != nil {
			return err
		}

		if status != StatusApproved || request.Type == TypeUnpaid {
			return nil
		}

		balance, err := s.balanceForTx(tx, companyID, request.EmployeeID, request.FromDay.Year())
		if err != nil {
			return err
		}
		if balance.remaining(request.Type) < request.Days {
			return ErrInsufficientDays
		}

		column := string(request.Type)
		return tx.Model(balance).
			Update(column, gorm.Expr(column+" - ?", request.Days)).Error
	})
	if err != nil {
		return nil, err
	}

	request.Status = status
	request.DecidedBy = &deciderUID
	request.DecisionNote = req.Note
	request.DecidedAt = &now
	return &request, nil
}

func (s *Service) ListForEmployee(companyID, employeeID uuid.UUID, limit, offset int) (*ListResponse, error) {
	query := s.db.Model(&LeaveRequest{}).
		Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ?", employeeID)
	return s.list(query, limit, offset)
}

func (s *Service) ListForCompany(companyID uuid.UUID, status RequestStatus, limit, offset int) (*ListResponse, error) {
	query := s.db.Model(&LeaveRequest{}).Scopes(tenant.ForCompany(companyID))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return s.list(query, limit, offset)
}

func (s *Service) list(query *gorm.DB, limit, offset int) (*ListResponse, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var requests []LeaveRequest
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&requests).Error; err != nil {
		return nil, err
	}
	return &ListResponse{Requests: requests, Total: total, Limit: limit, Offset: offset}, nil
}

// BalanceFor returns the employee's balance row for a year, creating it
// with the default allocation on first use.
func (s *Service) BalanceFor(companyID, employeeID uuid.UUID, year int) (*Balance, error) {
	return s.balanceForTx(s.db, companyID, employeeID, year)
}

func (s *Service) balanceForTx(tx *gorm.DB, companyID, employeeID uuid.UUID, year int) (*Balance, error) {
	var balance Balance
	err := tx.Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ? AND year = ?", employeeID, year).
		First(&balance).Error
	if err == nil {
		return &balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	balance = Balance{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Year:       year,
		Casual:     12,
		Sick:       10,
		Earned:     0,
	}
	if err := tx.Create(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = tx.Scopes(tenant.ForCompany(companyID)).
				Where("employee_id = ? AND year = ?", employeeID, year).
				First(&balance).Error
			if err == nil {
				return &balance, nil
			}
		}
		return nil, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return &balance, nil
}

// AccrueMonthly adds one earned-leave day to every active employee's
// current-year balance. Run by the monthly scheduler.
func (s *Service) AccrueMonthly() error {
	year := s.now().Year()

	var employees []models.Employee
	if err := s.db.Where("status = ?", models.StatusActive).Find(&employees).Error; err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	for _, emp := range employees {
		balance, err := s.BalanceFor(emp.CompanyID, emp.ID, year)
		if err != nil {
			slog.Error("leave accrual failed", "action", "accrue_monthly",
				"employee_id", emp.ID.String(), "error", err.Error())
			continue
		}
		if err := s.db.Model(balance).Update("earned", gorm.Expr("earned + 1")).Error; err != nil {
			slog.Error("leave accrual failed", "action", "accrue_monthly",
				"employee_id", emp.ID.String(), "error", err.Error())
		}
	}

	slog.Info("monthly leave accrual completed", "employees", len(employees), "year", year)
	return nil
}

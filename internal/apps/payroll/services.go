package payroll

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
	ErrInvalidAmount    = errors.New("basic salary must be positive")
	ErrNoStructure      = errors.New("no salary structure for employee")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidPeriod    = errors.New("invalid payroll period")
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// SetStructure records a new salary structure for an employee. History is
// kept; the row with the latest EffectiveFrom wins.
func (s *Service) SetStructure(companyID uuid.UUID, req SetStructureRequest) (*SalaryStructure, error) {
	if req.Basic <= 0 {
		return nil, ErrInvalidAmount
	}

	var emp models.Employee
	if err := s.db.Scopes(tenant.ForCompany(companyID)).First(&emp, "id = ?", req.EmployeeID).Error; err != nil {
		return nil, ErrEmployeeNotFound
	}

	effective := s.now()
	if req.EffectiveFrom != "" {
		parsed, err := time.Parse("2006-01-02", req.EffectiveFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid effective_from: %w", err)
		}
		effective = parsed
	}

	structure := SalaryStructure{
		ID:            uuid.New(),
		CompanyID:     companyID,
		EmployeeID:    req.EmployeeID,
		Basic:         req.Basic,
		Allowances:    req.Allowances,
		Deductions:    req.Deductions,
		EffectiveFrom: effective,
	}
	if err := s.db.Create(&structure).Error; err != nil {
		return nil, fmt.Errorf("failed to create salary structure: %w", err)
	}
	return &structure, nil
}

// CurrentStructure returns the structure in effect for an employee.
func (s *Service) CurrentStructure(companyID, employeeID uuid.UUID) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ? AND effective_from <= ?", employeeID, s.now()).
		Order("effective_from desc").
		First(&structure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoStructure
	}
	if err != nil {
		return nil, err
	}
	return &structure, nil
}

// Generate creates the month's payslips for every active employee with a
// structure. Employees with an existing payslip for the period are skipped,
// so the operation is idempotent.
func (s *Service) Generate(companyID uuid.UUID, req GenerateRequest) (*GenerateResponse, error) {
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return nil, ErrInvalidPeriod
	}

	var employees []models.Employee
	if err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("status = ?", models.StatusActive).
		Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := &GenerateResponse{Year: req.Year, Month: req.Month}
	for _, emp := range employees {
		structure, err := s.CurrentStructure(companyID, emp.ID)
		if err != nil {
			if errors.Is(err, ErrNoStructure) {
				resp.Skipped++
				continue
			}
			return nil, err
		}

		payslip := Payslip{
			ID:          uuid.New(),
			CompanyID:   companyID,
			EmployeeID:  emp.ID,
			Year:        req.Year,
			Month:       req.Month,
			Basic:       structure.Basic,
			Allowances:  structure.Allowances,
			Deductions:  structure.Deductions,
			Gross:       structure.Gross(),
			Net:         structure.Net(),
			Status:      PayslipIssued,
			GeneratedAt: s.now(),
		}
		if err := s.db.Create(&payslip).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				resp.Skipped++
				continue
			}
			slog.Error("payslip generation failed", "action", "generate_payslips",
				"employee_id", emp.ID.String(), "error", err.Error())
			return nil, fmt.Errorf("failed to create payslip: %w", err)
		}
		resp.Generated++
	}
	return resp, nil
}

func (s *Service) PayslipsForEmployee(companyID, employeeID uuid.UUID) (*PayslipListResponse, error) {
	var payslips []Payslip
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ?", employeeID).
		Order("year desc, month desc").
		Find(&payslips).Error
	if err != nil {
		return nil, err
	}
	return &PayslipListResponse{Payslips: payslips, Total: int64(len(payslips))}, nil
}

func (s *Service) PayslipsForPeriod(companyID uuid.UUID, year, month int) (*PayslipListResponse, error) {
	var payslips []Payslip
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("year = ? AND month = ?", year, month).
		Order("created_at asc").
		Find(&payslips).Error
	if err != nil {
		return nil, err
	}
	return &PayslipListResponse{Payslips: payslips, Total: int64(len(payslips))}, nil
}

// MonthlyTotal sums the net pay issued for a period, for dashboards.
func (s *Service) MonthlyTotal(companyID uuid.UUID, year, month int) (int64, error) {
	var total *int64
	err := s.db.Model(&Payslip{}).
		Scopes(tenant.ForCompany(companyID)).
		Where("year = ? AND month = ?", year, month).
		Select("SUM(net)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

package employees

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/tenant"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeNoTaken  = errors.New("employee number already in use")
	ErrManagerNotFound  = errors.New("manager not found")
	ErrManagerNoTaken   = errors.New("manager number already in use")
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoEmployeeRecord = errors.New("account has no linked employee record")
)

type DirectoryService struct {
	db *gorm.DB
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db}
}

func (s *DirectoryService) CreateEmployee(companyID uuid.UUID, req CreateEmployeeRequest) (*models.Employee, error) {
	if req.EmployeeNo == "" || req.FullName == "" || req.Email == "" {
		return nil, errors.New("employee number, full name and email are required")
	}

	var existing models.Employee
	if err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("employee_no = ?", req.EmployeeNo).First(&existing).Error; err == nil {
		return nil, ErrEmployeeNoTaken
	}

	joined := req.JoinedAt
	if joined.IsZero() {
		joined = time.Now()
	}

	emp := models.Employee{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EmployeeNo:  req.EmployeeNo,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Department:  req.Department,
		Designation: req.Designation,
		ManagerID:   req.ManagerID,
		JoinedAt:    joined,
		Status:      models.StatusActive,
	}
	if err := s.db.Create(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmployeeNoTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return &emp, nil
}

func (s *DirectoryService) ListEmployees(companyID uuid.UUID, department string, limit, offset int) (*EmployeeListResponse, error) {
	query := s.db.Model(&models.Employee{}).Scopes(tenant.ForCompany(companyID))
	if department != "" {
		query = query.Where("department = ?", department)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var list []models.Employee
	if err := query.Order("employee_no asc").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, err
	}

	return &EmployeeListResponse{Employees: list, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *DirectoryService) GetEmployee(companyID, id uuid.UUID) (*models.Employee, error) {
	var emp models.Employee
	if err := s.db.Scopes(tenant.ForCompany(companyID)).First(&emp, "id = ?", id).Error; err != nil {
		return nil, ErrEmployeeNotFound
	}
	return &emp, nil
}

func (s *DirectoryService) UpdateEmployee(companyID, id uuid.UUID, req UpdateEmployeeRequest) (*models.Employee, error) {
	emp, err := s.GetEmployee(companyID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Designation != nil {
		updates["designation"] = *req.Designation
	}
	if req.ManagerID != nil {
		updates["manager_id"] = *req.ManagerID
	}
	if len(updates) == 0 {
		return emp, nil
	}

	if err := s.db.Model(emp).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return emp, nil
}

// DeactivateEmployee flips the record and any linked account to inactive.
// Rows are never deleted.
func (s *DirectoryService) DeactivateEmployee(companyID, id uuid.UUID) error {
	emp, err := s.GetEmployee(companyID, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(emp).Update("status", models.StatusInactive).Error; err != nil {
			return err
		}
		return tx.Model(&models.Account{}).
			Where("employee_ref = ?", emp.ID).
			Update("status", models.StatusInactive).Error
	})
}

func (s *DirectoryService) CreateManager(companyID uuid.UUID, req CreateManagerRequest) (*models.Manager, error) {
	if req.ManagerNo == "" || req.FullName == "" || req.Email == "" {
		return nil, errors.New("manager number, full name and email are required")
	}

	var existing models.Manager
	if err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("manager_no = ?", req.ManagerNo).First(&existing).Error; err == nil {
		return nil, ErrManagerNoTaken
	}

	mgr := models.Manager{
		ID:         uuid.New(),
		CompanyID:  companyID,
		ManagerNo:  req.ManagerNo,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Status:     models.StatusActive,
	}
	if err := s.db.Create(&mgr).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrManagerNoTaken
		}
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}
	return &mgr, nil
}

func (s *DirectoryService) ListManagers(companyID uuid.UUID) (*ManagerListResponse, error) {
	var list []models.Manager
	if err := s.db.Scopes(tenant.ForCompany(companyID)).Order("manager_no asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return &ManagerListResponse{Managers: list, Total: int64(len(list))}, nil
}

func (s *DirectoryService) AddDocument(companyID, employeeID uuid.UUID, req AddDocumentRequest) (*Document, error) {
	if req.Title == "" {
		return nil, errors.New("document title is required")
	}
	if _, err := s.GetEmployee(companyID, employeeID); err != nil {
		return nil, err
	}

	doc := Document{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Title:      req.Title,
		DocType:    req.DocType,
		ExpiresAt:  req.ExpiresAt,
	}
	if len(req.Metadata) > 0 {
		if b, err := json.Marshal(req.Metadata); err == nil {
			doc.Metadata = datatypes.JSON(b)
		}
	}
	if err := s.db.Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &doc, nil
}

func (s *DirectoryService) ListDocuments(companyID, employeeID uuid.UUID) ([]Document, error) {
	var docs []Document
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("employee_id = ?", employeeID).
		Order("created_at desc").
		Find(&docs).Error
	return docs, err
}

// ExpiringDocuments lists documents expiring within the given number of days.
func (s *DirectoryService) ExpiringDocuments(companyID uuid.UUID, withinDays int) ([]Document, error) {
	cutoff := time.Now().AddDate(0, 0, withinDays)
	var docs []Document
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("expires_at IS NOT NULL AND expires_at <= ?", cutoff).
		Order("expires_at asc").
		Find(&docs).Error
	return docs, err
}

func (s *DirectoryService) DeleteDocument(companyID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForCompany(companyID)).Where("id = ?", id).Delete(&Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

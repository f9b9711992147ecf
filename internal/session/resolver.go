package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/identity"
	"github.com/umutcano/staffhub-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound         = errors.New("no account matches the identifier")
	ErrInvalidCredentials      = errors.New("invalid login or password")
	ErrAccountDisabled         = errors.New("account is disabled")
	ErrRateLimited             = errors.New("too many failed attempts, try again later")
	ErrAccountAlreadyActivated = errors.New("account already activated for this identifier")
	ErrSourceRecordNotFound    = errors.New("no employee or manager record matches the identifier")

	// ErrAuthProvider wraps any provider failure outside the taxonomy above;
	// the provider's message rides along via %w formatting.
	ErrAuthProvider = errors.New("auth provider error")
)

// lookup locates an account record for one identifier field. Lookups are
// tried in a fixed order; the first non-empty result wins.
type lookup func(ctx context.Context, db *gorm.DB, id string) (*models.Account, error)

func byLoginID(ctx context.Context, db *gorm.DB, id string) (*models.Account, error) {
	var a models.Account
	err := db.WithContext(ctx).Where("login_id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func byEmployeeNo(ctx context.Context, db *gorm.DB, id string) (*models.Account, error) {
	var a models.Account
	err := db.WithContext(ctx).Where("employee_no = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Resolver maps login attempts and restored provider identities onto
// Principals.
type Resolver struct {
	db       *gorm.DB
	provider identity.Provider
	lookups  []lookup
	now      func() time.Time
}

func NewResolver(db *gorm.DB, provider identity.Provider) *Resolver {
	return &Resolver{
		db:       db,
		provider: provider,
		lookups:  []lookup{byLoginID, byEmployeeNo},
		now:      time.Now,
	}
}

// ResolveByCredentials finds the account record for the supplied identifier
// (assigned login ID first, then source employee number), authenticates its
// registered email against the provider and returns the Principal.
func (r *Resolver) ResolveByCredentials(ctx context.Context, loginID, password string) (*Principal, error) {
	if loginID == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := r.findAccount(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if account.Status != models.StatusActive {
		return nil, ErrAccountDisabled
	}

	if _, err := r.provider.SignIn(ctx, account.Email, password); err != nil {
		return nil, mapProviderError(err)
	}

	// Best effort: a failed timestamp write never fails the login.
	now := r.now()
	if err := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", account.ID).
		Update("last_login_at", now).Error; err != nil {
		slog.Warn("failed to update last_login_at", "login_id", account.LoginID, "error", err)
	} else {
		account.LastLoginAt = &now
	}

	return principalFromAccount(account), nil
}

// ResolveFromRestoredSession maps a provider-reported identity back onto a
// Principal. An identity with no account record is a data-integrity fault:
// it is logged and the session is treated as absent.
func (r *Resolver) ResolveFromRestoredSession(ctx context.Context, uid uuid.UUID) (*Principal, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Error("auth identity has no account record", "action", "restore_session", "error", "missing account", "uid", uid.String())
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	return principalFromAccount(&account), nil
}

// ActivateAccount turns a pre-provisioned employee or manager source record
// into a login account. The provider identity and the account row are two
// separate writes; the unique index on login_id is the final authority when
// two activations race, and the loser surfaces ErrAccountAlreadyActivated.
func (r *Resolver) ActivateAccount(ctx context.Context, sourceID, password string) (*Principal, error) {
	source, err := r.findSource(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrSourceRecordNotFound
	}

	existing, err := byLoginID(ctx, r.db, sourceID)
	if err != nil {
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	if existing != nil {
		return nil, ErrAccountAlreadyActivated
	}

	ident, err := r.provider.CreateIdentity(ctx, source.email, password, source.fullName)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, ErrAccountAlreadyActivated
		}
		return nil, mapProviderError(err)
	}

	account := models.Account{
		ID:          uuid.New(),
		UID:         ident.UID,
		LoginID:     sourceID,
		EmployeeNo:  source.employeeNo,
		Email:       source.email,
		Role:        source.role,
		CompanyID:   &source.companyID,
		EmployeeRef: source.employeeRef,
		DisplayName: source.fullName,
		Status:      models.StatusActive,
	}
	if err := r.db.WithContext(ctx).Create(&account).Error; err != nil {
		// The provider identity now exists without an account record; log it
		// so the orphan can be reconciled.
		slog.Error("account creation failed after identity creation",
			"action", "activate_account", "login_id", sourceID,
			"orphan_uid", ident.UID.String(), "error", err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAccountAlreadyActivated
		}
		return nil, fmt.Errorf("failed to create account record: %w", err)
	}

	return principalFromAccount(&account), nil
}

func (r *Resolver) findAccount(ctx context.Context, id string) (*models.Account, error) {
	for _, lk := range r.lookups {
		account, err := lk(ctx, r.db, id)
		if err != nil {
			return nil, fmt.Errorf("account lookup failed: %w", err)
		}
		if account != nil {
			return account, nil
		}
	}
	return nil, nil
}

// sourceRecord is the common shape of the two activation sources.
type sourceRecord struct {
	role        models.Role
	companyID   uuid.UUID
	employeeRef *uuid.UUID
	employeeNo  *string
	email       string
	fullName    string
}

func (r *Resolver) findSource(ctx context.Context, sourceID string) (*sourceRecord, error) {
	var emp models.Employee
	err := r.db.WithContext(ctx).Where("employee_no = ?", sourceID).First(&emp).Error
	if err == nil {
		no := emp.EmployeeNo
		ref := emp.ID
		return &sourceRecord{
			role:        models.RoleEmployee,
			companyID:   emp.CompanyID,
			employeeRef: &ref,
			employeeNo:  &no,
			email:       emp.Email,
			fullName:    emp.FullName,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("employee lookup failed: %w", err)
	}

	var mgr models.Manager
	err = r.db.WithContext(ctx).Where("manager_no = ?", sourceID).First(&mgr).Error
	if err == nil {
		return &sourceRecord{
			role:      models.RoleManager,
			companyID: mgr.CompanyID,
			email:     mgr.Email,
			fullName:  mgr.FullName,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("manager lookup failed: %w", err)
	}

	return nil, nil
}

func mapProviderError(err error) error {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, identity.ErrIdentityDisabled):
		return ErrAccountDisabled
	case errors.Is(err, identity.ErrTooManyAttempts):
		return ErrRateLimited
	default:
		return fmt.Errorf("%w: %v", ErrAuthProvider, err)
	}
}

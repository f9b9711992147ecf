package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LocalProvider is a database-backed Provider: bcrypt credentials plus a
// per-email failed-attempt window. The provider itself owns failed-attempt
// counting; callers only see ErrTooManyAttempts.
type LocalProvider struct {
	db          *gorm.DB
	maxAttempts int
	window      time.Duration

	mu        sync.Mutex
	nextSubID int
	listeners map[int]func(*Identity)
}

func NewLocalProvider(db *gorm.DB, maxAttempts int, window time.Duration) *LocalProvider {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LocalProvider{
		db:          db,
		maxAttempts: maxAttempts,
		window:      window,
		listeners:   make(map[int]func(*Identity)),
	}
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	var recent int64
	cutoff := time.Now().Add(-p.window)
	if err := p.db.WithContext(ctx).Model(&models.LoginAttempt{}).
		Where("email = ? AND created_at > ?", email, cutoff).
		Count(&recent).Error; err != nil {
		return nil, fmt.Errorf("failed to count login attempts: %w", err)
	}
	if recent >= int64(p.maxAttempts) {
		return nil, ErrTooManyAttempts
	}

	var cred models.Credential
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p.recordFailure(ctx, email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential lookup failed: %w", err)
	}

	if cred.Disabled {
		return nil, ErrIdentityDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		p.recordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	// Successful sign-in resets the window.
	if err := p.db.WithContext(ctx).Where("email = ?", email).
		Delete(&models.LoginAttempt{}).Error; err != nil {
		slog.Warn("failed to clear login attempts", "error", err)
	}

	id := &Identity{UID: cred.ID, Email: cred.Email, DisplayName: cred.DisplayName}
	p.notify(id)
	return id, nil
}

func (p *LocalProvider) CreateIdentity(ctx context.Context, email, password, displayName string) (*Identity, error) {
	if email == "" || len(password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.Credential
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := models.Credential{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if err := p.db.WithContext(ctx).Create(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	return &Identity{UID: cred.ID, Email: cred.Email, DisplayName: cred.DisplayName}, nil
}

func (p *LocalProvider) SignOut(ctx context.Context, uid uuid.UUID) error {
	p.notify(nil)
	return nil
}

func (p *LocalProvider) UpdateDisplayName(ctx context.Context, uid uuid.UUID, name string) error {
	result := p.db.WithContext(ctx).Model(&models.Credential{}).
		Where("id = ?", uid).
		Update("display_name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to update display name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrIdentityNotFound
	}
	return nil
}

// Subscribe registers an auth-state listener and returns its unsubscribe
// function. Listeners receive a full snapshot per event, nil on sign-out.
func (p *LocalProvider) Subscribe(fn func(*Identity)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSubID
	p.nextSubID++
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

func (p *LocalProvider) notify(id *Identity) {
	p.mu.Lock()
	fns := make([]func(*Identity), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(id)
	}
}

func (p *LocalProvider) recordFailure(ctx context.Context, email string) {
	attempt := models.LoginAttempt{ID: uuid.New(), Email: email}
	if err := p.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		slog.Warn("failed to record login attempt", "error", err)
	}
}

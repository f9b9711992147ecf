package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIdentityDisabled   = errors.New("identity is disabled")
	ErrTooManyAttempts    = errors.New("too many failed sign-in attempts")
	ErrEmailTaken         = errors.New("email already registered")
	ErrIdentityNotFound   = errors.New("identity not found")
)

// Identity is a snapshot of a signed-in credential identity.
type Identity struct {
	UID         uuid.UUID
	Email       string
	DisplayName string
}

// Provider is the credential backend: email+password sign-in, identity
// creation and an auth-state listener stream. Each notification carries a
// full snapshot (nil means signed out); later notifications supersede
// earlier ones.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	CreateIdentity(ctx context.Context, email, password, displayName string) (*Identity, error)
	SignOut(ctx context.Context, uid uuid.UUID) error
	UpdateDisplayName(ctx context.Context, uid uuid.UUID, name string) error
	Subscribe(fn func(*Identity)) (unsubscribe func())
}

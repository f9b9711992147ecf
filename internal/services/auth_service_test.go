package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umutcano/staffhub-backend/internal/config"
	"github.com/umutcano/staffhub-backend/internal/dto"
	"github.com/umutcano/staffhub-backend/internal/gate"
	"github.com/umutcano/staffhub-backend/internal/identity"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/session"
	"github.com/umutcano/staffhub-backend/internal/testutil"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret-key",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
	provider := identity.NewLocalProvider(db, 5, 15*time.Minute)
	resolver := session.NewResolver(db, provider)
	return NewAuthService(db, cfg, provider, resolver, session.NewState()), db
}

func registerAdmin(t *testing.T, svc *AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		LoginID:     "acme-admin",
		Email:       "admin@acme.test",
		Password:    "s3cret-pass",
		DisplayName: "Acme Admin",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc, db := newAuthService(t)

	resp := registerAdmin(t, svc)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleAdmin, resp.Principal.Role)
	assert.Nil(t, resp.Principal.CompanyID, "admins root their own tenant")
	assert.Equal(t, gate.DashboardPath, resp.LandingPath)

	var account models.Account
	require.NoError(t, db.Where("login_id = ?", "acme-admin").First(&account).Error)
	assert.Equal(t, models.RoleAdmin, account.Role)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		LoginID: "acme-admin", Email: "other@acme.test", Password: "other-pass-123",
	})
	assert.ErrorIs(t, err, ErrLoginIDTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	registerAdmin(t, svc)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		LoginID: "acme-admin", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-admin", resp.Principal.LoginID)

	// The access token carries the expected claims.
	token, err := jwt.Parse(resp.AccessToken, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret-key"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.Principal.UID.String(), claims["sub"])
	assert.Equal(t, "acme-admin", claims["login_id"])
	assert.Equal(t, "admin", claims["role"])

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		LoginID: "acme-admin", Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestActivate(t *testing.T) {
	svc, db := newAuthService(t)

	emp := models.Employee{
		ID: uuid.New(), CompanyID: uuid.New(), EmployeeNo: "E100",
		FullName: "Deniz Kaya", Email: "deniz@acme.test",
		JoinedAt: time.Now(), Status: models.StatusActive,
	}
	require.NoError(t, db.Create(&emp).Error)

	resp, err := svc.Activate(context.Background(), &dto.ActivateRequest{
		SourceID: "E100", Password: "new-password",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, resp.Principal.Role)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Activate(context.Background(), &dto.ActivateRequest{
		SourceID: "E100", Password: "another-pass",
	})
	assert.ErrorIs(t, err, session.ErrAccountAlreadyActivated)
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := newAuthService(t)
	first := registerAdmin(t, svc)

	second, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: first.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken, "refresh rotates the token")

	// The spent token is revoked.
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: first.RefreshToken,
	})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The rotated token still works.
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: second.RefreshToken,
	})
	require.NoError(t, err)
}

func TestRefreshExpired(t *testing.T) {
	svc, db := newAuthService(t)
	resp := registerAdmin(t, svc)

	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("account_uid = ?", resp.Principal.UID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: resp.RefreshToken,
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: "never-issued",
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	svc, _ := newAuthService(t)
	resp := registerAdmin(t, svc)

	require.NoError(t, svc.Logout(context.Background(), resp.Principal.UID, &dto.LogoutRequest{
		RefreshToken: resp.RefreshToken,
	}))

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: resp.RefreshToken,
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

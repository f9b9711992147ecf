package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/umutcano/staffhub-backend/internal/config"
	"github.com/umutcano/staffhub-backend/internal/dto"
	"github.com/umutcano/staffhub-backend/internal/gate"
	"github.com/umutcano/staffhub-backend/internal/identity"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/session"
	"gorm.io/gorm"
)

var (
	ErrLoginIDTaken = errors.New("login ID already registered")
	ErrInvalidToken = errors.New("invalid or expired refresh token")
)

// AuthService glues the session resolver and identity provider to the HTTP
// surface: token pair issuance, admin registration and refresh rotation.
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	provider identity.Provider
	resolver *session.Resolver
	state    *session.State
}

func NewAuthService(db *gorm.DB, cfg *config.Config, provider identity.Provider, resolver *session.Resolver, state *session.State) *AuthService {
	return &AuthService{db: db, cfg: cfg, provider: provider, resolver: resolver, state: state}
}

// Register creates an admin account directly: the admin is the tenant root,
// so CompanyID stays nil.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.LoginID == "" {
		return nil, errors.New("login ID is required")
	}

	var existing models.Account
	if err := s.db.WithContext(ctx).Where("login_id = ?", req.LoginID).First(&existing).Error; err == nil {
		return nil, ErrLoginIDTaken
	}

	ident, err := s.provider.CreateIdentity(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return nil, err
	}

	account := models.Account{
		ID:          uuid.New(),
		UID:         ident.UID,
		LoginID:     req.LoginID,
		Email:       req.Email,
		Role:        models.RoleAdmin,
		DisplayName: req.DisplayName,
		Status:      models.StatusActive,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLoginIDTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	principal, err := s.resolver.ResolveByCredentials(ctx, req.LoginID, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, principal)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	principal, err := s.resolver.ResolveByCredentials(ctx, req.LoginID, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, principal)
}

func (s *AuthService) Activate(ctx context.Context, req *dto.ActivateRequest) (*dto.AuthResponse, error) {
	principal, err := s.resolver.ActivateAccount(ctx, req.SourceID, req.Password)
	if err != nil {
		return nil, err
	}
	s.state.Set(principal)
	return s.issueTokens(ctx, principal)
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.WithContext(ctx).Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	principal, err := s.resolver.ResolveFromRestoredSession(ctx, stored.AccountUID)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, ErrInvalidToken
	}
	return s.issueTokens(ctx, principal)
}

func (s *AuthService) Logout(ctx context.Context, uid uuid.UUID, req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	if err := s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error; err != nil {
		return err
	}
	return s.provider.SignOut(ctx, uid)
}

func (s *AuthService) issueTokens(ctx context.Context, principal *session.Principal) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(principal)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, principal)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Principal:    principal,
		LandingPath:  gate.LandingPath(principal.Role),
	}, nil
}

func (s *AuthService) generateAccessToken(principal *session.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":      principal.UID.String(),
		"login_id": principal.LoginID,
		"role":     string(principal.Role),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	if principal.CompanyID != nil {
		claims["company_id"] = principal.CompanyID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, principal *session.Principal) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:         uuid.New(),
		AccountUID: principal.UID,
		TokenHash:  hashToken(rawToken),
		ExpiresAt:  time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

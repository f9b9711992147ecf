package dto

import "github.com/umutcano/staffhub-backend/internal/session"

// RegisterRequest is direct admin registration; managers and employees go
// through the activation flow instead.
type RegisterRequest struct {
	LoginID     string `json:"login_id"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	CompanyName string `json:"company_name"`
}

type LoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// ActivateRequest covers both employee and manager self-activation; the
// source ID is the pre-provisioned employee or manager number.
type ActivateRequest struct {
	SourceID string `json:"source_id"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	Principal    *session.Principal `json:"principal"`
	LandingPath  string             `json:"landing_path"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// DeniedResponse is the 403 envelope; RedirectTo tells the client where the
// gate wants it to land instead.
type DeniedResponse struct {
	Error      bool   `json:"error"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirect_to"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

package dto

import (
	"time"

	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/session"
)

// LoginRequest is the body of a login. The mock directory only checks the email.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// RegisterRequest signs a new user up and opens a session for them.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,basic_email"`
}

// SessionResponse is returned after login or registration.
type SessionResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      models.User        `json:"user"`
	View      session.View       `json:"view"`
	Menu      []session.MenuItem `json:"menu"`
}

// MeResponse describes the caller's session.
type MeResponse struct {
	SessionID string             `json:"session_id"`
	User      models.User        `json:"user"`
	View      session.View       `json:"view"`
	Menu      []session.MenuItem `json:"menu"`
	OpenedAt  time.Time          `json:"opened_at"`
}

// ViewResponse tells the client which screen to show next.
type ViewResponse struct {
	View session.View `json:"view"`
}

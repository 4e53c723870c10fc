package dto

import "time"

// LoginRequest body para POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token del servicio y vencimiento de la sesión.
type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      SessionUserResponse `json:"user"`
}

// SessionUserResponse usuario devuelto por el backend al iniciar sesión.
type SessionUserResponse struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SessionResponse estado de la sesión actual (GET /api/session).
type SessionResponse struct {
	Email            string    `json:"email"`
	ExpiresAt        time.Time `json:"expires_at"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

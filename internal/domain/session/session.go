// Package session modela la sesión del administrador: el token del backend externo
// y su vencimiento, explícitos en lugar de guardados en el navegador.
package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTTL vigencia de una sesión desde el login.
const DefaultTTL = 24 * time.Hour

// Session sesión activa de un administrador.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"` // bearer del backend externo
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New crea una sesión que vence ttl después de now. Si ttl <= 0 usa DefaultTTL.
func New(token, email string, now time.Time, ttl time.Duration) Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Session{
		ID:        uuid.NewString(),
		Token:     token,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired indica si la sesión venció en el instante now. Una sesión sin token también cuenta como vencida.
func (s Session) IsExpired(now time.Time) bool {
	if s.Token == "" {
		return true
	}
	return !now.Before(s.ExpiresAt)
}

// Remaining tiempo de vida restante; cero si ya venció.
func (s Session) Remaining(now time.Time) time.Duration {
	if s.IsExpired(now) {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}

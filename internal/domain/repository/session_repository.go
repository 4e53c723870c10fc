package repository

import (
	"context"

	"github.com/viajespy/agencia-api/internal/domain/session"
)

// SessionRepository guarda sesiones de administrador con vencimiento.
// Get devuelve (nil, nil) si la sesión no existe o ya fue descartada.
type SessionRepository interface {
	Save(ctx context.Context, s session.Session) error
	Get(ctx context.Context, id string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

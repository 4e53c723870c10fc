package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/viajespy/agencia-api/internal/domain/repository"
	"github.com/viajespy/agencia-api/internal/domain/session"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

const sessionPrefix = "session:"

// SessionStore sesiones como JSON con TTL igual al tiempo restante; Redis las expira solo.
type SessionStore struct {
	rdb *goredis.Client
	now func() time.Time
}

// NewSessionStore construye el store.
func NewSessionStore(rdb *goredis.Client) *SessionStore {
	return &SessionStore{rdb: rdb, now: time.Now}
}

// Save guarda la sesión. Una sesión ya vencida no se guarda.
func (s *SessionStore) Save(ctx context.Context, sess session.Session) error {
	ttl := sess.Remaining(s.now())
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis: serializar sesión: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionPrefix+sess.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar sesión: %w", err)
	}
	return nil
}

// Get devuelve (nil, nil) si la clave no existe.
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis: leer sesión: %w", err)
	}
	var sess session.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("redis: sesión corrupta: %w", err)
	}
	return &sess, nil
}

// Delete descarta la sesión.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis: borrar sesión: %w", err)
	}
	return nil
}

// Package memory implementaciones en proceso para cuando no hay Redis configurado.
// Los datos se pierden al reiniciar y no se comparten entre réplicas.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/viajespy/agencia-api/internal/domain/repository"
	"github.com/viajespy/agencia-api/internal/domain/session"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

// SessionStore sesiones en un mapa protegido por mutex. Las vencidas se descartan al leerlas.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
	now      func() time.Time
}

// NewSessionStore construye el store vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]session.Session), now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if sess.IsExpired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len cantidad de sesiones guardadas, vencidas incluidas.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

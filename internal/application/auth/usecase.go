package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/repository"
	"github.com/viajespy/agencia-api/internal/domain/session"
	"github.com/viajespy/agencia-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
}

// AuthUseCase login contra el backend externo y sesiones propias del servicio.
// El token emitido solo identifica la sesión; el bearer del backend queda del lado del servidor.
type AuthUseCase struct {
	auth     ports.Authenticator
	sessions repository.SessionRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(auth ports.Authenticator, sessions repository.SessionRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{auth: auth, sessions: sessions, jwtCfg: jwtCfg, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Login autentica contra el backend, abre una sesión de 24h y devuelve el token del servicio.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	res, err := uc.auth.Login(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sess := session.New(res.Token, email, now, uc.jwtCfg.SessionTTL)
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, sess.ID, sess.Email, uc.jwtCfg.Issuer, now, sess.ExpiresAt)
	if err != nil {
		return nil, err
	}

	user := dto.SessionUserResponse{ID: res.UserID, Email: email, Name: res.Name}
	if res.Email != "" {
		user.Email = res.Email
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: sess.ExpiresAt, User: user}, nil
}

// Authenticate resuelve el token del servicio a la sesión activa.
// Una sesión vencida se descarta y devuelve ErrSessionExpired.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, token)
	if err != nil {
		if jwt.IsExpired(err) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("token inválido: %w", domain.ErrUnauthorized)
	}
	sess, err := uc.sessions.Get(ctx, claims.SessionID())
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	if sess == nil {
		return nil, domain.ErrUnauthorized
	}
	if sess.IsExpired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sess.ID)
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

// Logout descarta la sesión.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}

// Describe estado de la sesión para GET /api/session.
func (uc *AuthUseCase) Describe(s *session.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Email:            s.Email,
		ExpiresAt:        s.ExpiresAt,
		RemainingSeconds: int64(s.Remaining(uc.now()) / time.Second),
	}
}

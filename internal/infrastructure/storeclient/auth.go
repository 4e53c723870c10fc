package storeclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
)

// Login POST /login. Un 400/401/403 del backend se devuelve como domain.ErrUnauthorized.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var reply loginReply
	err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password}, &reply)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && (se.StatusCode == http.StatusBadRequest || se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, se.Message)
		}
		return nil, err
	}
	if reply.Token == "" {
		return nil, fmt.Errorf("%w: login sin token", domain.ErrUpstream)
	}
	res := &ports.LoginResult{
		Token:  reply.Token,
		UserID: string(reply.User.ID),
		Email:  reply.User.Email,
		Name:   reply.User.Name,
	}
	if res.Email == "" {
		res.Email = email
	}
	return res, nil
}

// Package storeclient es el cliente tipado del backend REST de la agencia:
// Invoice Store, catálogo de paquetes, banners y login.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa los puertos del backend.
var (
	_ ports.InvoiceStore  = (*Client)(nil)
	_ ports.PackageStore  = (*Client)(nil)
	_ ports.BannerStore   = (*Client)(nil)
	_ ports.Authenticator = (*Client)(nil)
)

const maxResponseBytes = 8 << 20

// StatusError respuesta no 2xx del backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("store: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("store: %s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap traduce el status a un error de dominio para errors.Is.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	}
	return domain.ErrUpstream
}

// Client adaptador HTTP del backend. Usa net/http; cada llamada respeta el ctx recibido.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New construye el cliente. timeout es el límite de red por llamada; los use cases
// pueden imponer uno menor con context.WithTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do ejecuta la llamada; in se serializa como JSON si no es nil y out recibe la respuesta si no es nil.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("store: serializar %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("store: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("store: %s %s: timeout o cancelación: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta de %s %s: %v", domain.ErrUpstream, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: respuesta inválida de %s %s: %v", domain.ErrUpstream, method, path, err)
	}
	return nil
}

// errorMessage extrae "message" o "error" del cuerpo; si no es JSON devuelve el texto recortado.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

// IsStatus indica si err es un StatusError con el código dado.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

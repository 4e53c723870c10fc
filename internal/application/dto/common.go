package dto

import "github.com/viajespy/agencia-api/internal/domain/invoice"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code        string               `json:"code"`
	Message     string               `json:"message"`
	FieldErrors []invoice.FieldError `json:"field_errors,omitempty"`
	Rows        []ImportRowError     `json:"rows,omitempty"`
}

// DeletedResponse confirmación de borrado.
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrSessionExpired   = errors.New("la sesión expiró")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrSubmitInProgress = errors.New("el borrador ya se está enviando")
	ErrAlreadySubmitted = errors.New("el borrador ya fue enviado")
	ErrUpstream         = errors.New("error del servicio externo")
)

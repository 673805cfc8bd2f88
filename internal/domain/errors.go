package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrInvalidAPIKey  = errors.New("api key inválida")
	ErrMissingScope   = errors.New("scope insuficiente")
	ErrBadCredentials = errors.New("credenciales inválidas")
)

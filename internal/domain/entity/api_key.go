package entity

import "time"

// APIKey es una credencial de integración con scopes.
// Solo se persiste el hash; la clave en claro se entrega una única vez al crearla.
type APIKey struct {
	ID         string
	Name       string
	KeyHash    string
	Scopes     []string
	Active     bool
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

// HasScope indica si la clave concede el scope pedido.
func (k *APIKey) HasScope(scope string) bool {
	for _, s := range k.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

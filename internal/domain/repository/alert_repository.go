package repository

import (
	"context"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// AlertFilter filtros opcionales para listar alertas.
type AlertFilter struct {
	Status     string
	Type       string
	Severity   string
	LocationID string
	Limit      int
	Offset     int
}

// AlertRepository define el puerto de persistencia para alertas.
// Las alertas nunca se borran; solo cambian de estado.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	List(ctx context.Context, f AlertFilter) ([]*entity.Alert, int, error)

	// UpdateStatus cambia status/ack_by/ack_at de una alerta existente.
	UpdateStatus(ctx context.Context, alert *entity.Alert) error
}

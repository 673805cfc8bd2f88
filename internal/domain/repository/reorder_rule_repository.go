package repository

import (
	"context"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// ReorderRuleRepository define el puerto de persistencia para reglas de reorden.
type ReorderRuleRepository interface {
	Create(ctx context.Context, rule *entity.ReorderRule) error
	GetByID(ctx context.Context, id string) (*entity.ReorderRule, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ReorderRule, error)

	// ListActiveByItemLocation devuelve las reglas activas de un (item, location).
	// Por la unicidad (item_id, location_id) hay a lo sumo una, pero el evaluador
	// itera el slice para no depender de esa restricción.
	ListActiveByItemLocation(ctx context.Context, itemID, locationID string) ([]*entity.ReorderRule, error)

	Update(ctx context.Context, rule *entity.ReorderRule) error
	Delete(ctx context.Context, id string) error
}

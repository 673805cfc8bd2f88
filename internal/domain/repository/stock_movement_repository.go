package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// StockBalance es el agregado SUM(qty_delta) de un (item, location) con los
// umbrales de su regla de reorden si existe.
type StockBalance struct {
	ItemID       string
	ItemCode     *string
	ItemName     *string
	LocationID   string
	LocationName *string
	Available    decimal.Decimal
	MinLevel     *decimal.Decimal
	MaxLevel     *decimal.Decimal
}

// StockMovementRepository define el puerto de persistencia del libro de inventario.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	// Insert persiste el movimiento. Si la clave de idempotencia
	// (ref_type, ref_id, movement_type, item_id) ya existe, retorna domain.ErrDuplicate.
	Insert(ctx context.Context, m *entity.StockMovement) error

	// GetByIdempotencyKey busca el movimiento por su clave natural; nil si no existe.
	GetByIdempotencyKey(ctx context.Context, refType, refID, movementType, itemID string) (*entity.StockMovement, error)

	// SumQtyDelta devuelve COALESCE(SUM(qty_delta), 0) para (item, location):
	// la definición de stock disponible.
	SumQtyDelta(ctx context.Context, itemID, locationID string) (decimal.Decimal, error)

	// ListByItemLocation lista los movimientos de un (item, location), más reciente primero.
	ListByItemLocation(ctx context.Context, itemID, locationID string, limit, offset int) ([]*entity.StockMovement, error)

	// Balances devuelve los agregados por (item, location) con sus umbrales de reorden.
	Balances(ctx context.Context, locationID, search string, limit, offset int) ([]StockBalance, error)

	// LowStock devuelve los agregados de reglas activas con available <= min_level.
	LowStock(ctx context.Context) ([]StockBalance, error)
}

package inventory

import (
	"context"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// BalancesUseCase consultas de solo lectura sobre el libro de inventario.
type BalancesUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewBalancesUseCase construye el caso de uso de consultas.
func NewBalancesUseCase(movRepo repository.StockMovementRepository) *BalancesUseCase {
	return &BalancesUseCase{movRepo: movRepo}
}

// Balances devuelve el disponible agregado por (item, location), con los
// umbrales de la regla de reorden si existe. Filtro opcional por ubicación
// y búsqueda por nombre/código de ítem.
func (uc *BalancesUseCase) Balances(ctx context.Context, locationID, search string, limit, offset int) ([]repository.StockBalance, error) {
	return uc.movRepo.Balances(ctx, locationID, search, limit, offset)
}

// LowStock devuelve las reglas activas cuyo disponible está en o bajo el mínimo.
func (uc *BalancesUseCase) LowStock(ctx context.Context) ([]repository.StockBalance, error) {
	return uc.movRepo.LowStock(ctx)
}

// Movements lista los movimientos de un (item, location), más reciente primero.
func (uc *BalancesUseCase) Movements(ctx context.Context, itemID, locationID string, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByItemLocation(ctx, itemID, locationID, limit, offset)
}

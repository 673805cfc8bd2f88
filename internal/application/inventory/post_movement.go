package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// Evaluator reacciona a un movimiento recién insertado en el libro.
// Lo implementa *ReorderEvaluator; la interfaz evita acoplar el poster al evaluador.
type Evaluator interface {
	Evaluate(ctx context.Context, itemID, locationID string)
}

// StockPoster es la única vía de escritura al libro de inventario.
// Garantiza a lo sumo un efecto por (ref_type, ref_id, movement_type, item_id):
// repostear un documento es siempre un no-op.
type StockPoster struct {
	movRepo   repository.StockMovementRepository
	evaluator Evaluator
}

// NewStockPoster construye el poster.
func NewStockPoster(movRepo repository.StockMovementRepository, evaluator Evaluator) *StockPoster {
	return &StockPoster{movRepo: movRepo, evaluator: evaluator}
}

// PostMovementInput entrada para registrar un movimiento.
// QtyDelta lleva signo según el tipo; RefType/RefID identifican la operación de origen.
type PostMovementInput struct {
	ItemID       string
	LocationID   string
	MovementType string
	QtyDelta     decimal.Decimal
	UnitCost     *decimal.Decimal
	RefType      string
	RefID        string
	Details      map[string]any
}

func (in PostMovementInput) validate() error {
	if in.ItemID == "" || in.LocationID == "" || in.RefType == "" || in.RefID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.MovementType) {
		return domain.ErrInvalidInput
	}
	if in.QtyDelta.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}

// PostMovement inserta el movimiento de forma idempotente.
//
// Si ya existe un movimiento con la misma clave (ref_type, ref_id, movement_type,
// item_id) lo retorna sin efectos secundarios: no se vuelve a disparar la
// evaluación de reorden. Si dos posters compiten por la misma clave, el que
// pierde la carrera recibe la violación de unicidad, relee la fila ganadora y
// la retorna como si hubiera llegado segundo.
//
// Solo un insert nuevo invoca al evaluador, de forma síncrona, antes de retornar.
func (uc *StockPoster) PostMovement(ctx context.Context, in PostMovementInput) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := uc.movRepo.GetByIdempotencyKey(ctx, in.RefType, in.RefID, in.MovementType, in.ItemID)
	if err != nil {
		return nil, fmt.Errorf("lookup movimiento existente: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		ItemID:       in.ItemID,
		LocationID:   in.LocationID,
		RefType:      in.RefType,
		RefID:        in.RefID,
		MovementType: in.MovementType,
		QtyDelta:     in.QtyDelta,
		UnitCost:     in.UnitCost,
		Details:      in.Details,
		CreatedAt:    time.Now().UTC(),
	}
	if mov.Details == nil {
		mov.Details = map[string]any{}
	}

	if err := uc.movRepo.Insert(ctx, mov); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Otro poster insertó esta fila entre el lookup y el insert:
			// resolver releyendo, nunca propagar el conflicto.
			winner, lookupErr := uc.movRepo.GetByIdempotencyKey(ctx, in.RefType, in.RefID, in.MovementType, in.ItemID)
			if lookupErr != nil {
				return nil, fmt.Errorf("relectura tras conflicto de idempotencia: %w", lookupErr)
			}
			if winner == nil {
				return nil, fmt.Errorf("conflicto de idempotencia sin fila existente: %w", err)
			}
			return winner, nil
		}
		return nil, fmt.Errorf("insert movimiento: %w", err)
	}

	uc.evaluator.Evaluate(ctx, in.ItemID, in.LocationID)
	return mov, nil
}

package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/inventory"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// RefType de los movimientos generados por compras.
const (
	RefTypeGoodsReceipt   = "goods_receipt"
	RefTypePurchaseReturn = "purchase_return"
)

// UseCase orquesta recepciones de mercancía y órdenes de compra.
type UseCase struct {
	grnRepo repository.GoodsReceiptRepository
	poRepo  repository.PurchaseOrderRepository
	poster  *inventory.StockPoster
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(
	grnRepo repository.GoodsReceiptRepository,
	poRepo repository.PurchaseOrderRepository,
	poster *inventory.StockPoster,
) *UseCase {
	return &UseCase{grnRepo: grnRepo, poRepo: poRepo, poster: poster}
}

// CreateReceiptLineInput línea de recepción al crear el borrador.
type CreateReceiptLineInput struct {
	ItemID   string
	Qty      decimal.Decimal
	UnitCost decimal.Decimal
}

// CreateReceiptInput datos para crear una recepción en borrador.
type CreateReceiptInput struct {
	GrnNo      string
	SupplierID string
	LocationID string
	Lines      []CreateReceiptLineInput
}

// CreateReceipt persiste una recepción DRAFT con sus líneas.
func (uc *UseCase) CreateReceipt(ctx context.Context, in CreateReceiptInput) (*entity.GoodsReceipt, error) {
	if in.GrnNo == "" || in.SupplierID == "" || in.LocationID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	grn := &entity.GoodsReceipt{
		ID:         uuid.New().String(),
		GrnNo:      in.GrnNo,
		SupplierID: in.SupplierID,
		LocationID: in.LocationID,
		Status:     entity.GoodsReceiptStatusDraft,
		ReceivedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, l := range in.Lines {
		if l.ItemID == "" || !l.Qty.IsPositive() || l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		grn.Lines = append(grn.Lines, entity.GoodsReceiptLine{
			ID:        uuid.New().String(),
			GrnID:     grn.ID,
			ItemID:    l.ItemID,
			Qty:       l.Qty,
			UnitCost:  l.UnitCost,
			LineTotal: l.Qty.Mul(l.UnitCost).Round(2),
		})
	}

	if err := uc.grnRepo.Create(ctx, grn); err != nil {
		return nil, err
	}
	return grn, nil
}

// GetReceipt carga una recepción con sus líneas.
func (uc *UseCase) GetReceipt(ctx context.Context, id string) (*entity.GoodsReceipt, error) {
	grn, err := uc.grnRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if grn == nil {
		return nil, domain.ErrNotFound
	}
	return grn, nil
}

// ListReceipts lista recepciones, con filtro opcional por estado.
func (uc *UseCase) ListReceipts(ctx context.Context, status string, limit, offset int) ([]*entity.GoodsReceipt, error) {
	return uc.grnRepo.List(ctx, status, limit, offset)
}

// PostReceipt postea la recepción al libro: un movimiento PURCHASE_RECEIPT
// positivo por línea, y transición a POSTED. Una recepción ya POSTED se
// retorna sin efectos.
func (uc *UseCase) PostReceipt(ctx context.Context, grnID string) (*entity.GoodsReceipt, error) {
	grn, err := uc.grnRepo.GetWithLines(ctx, grnID)
	if err != nil {
		return nil, err
	}
	if grn == nil {
		return nil, domain.ErrNotFound
	}
	if grn.Status == entity.GoodsReceiptStatusPosted {
		return grn, nil
	}

	for _, line := range grn.Lines {
		unitCost := line.UnitCost
		_, err := uc.poster.PostMovement(ctx, inventory.PostMovementInput{
			ItemID:       line.ItemID,
			LocationID:   grn.LocationID,
			MovementType: entity.MovementTypePURCHASERECEIPT,
			QtyDelta:     line.Qty,
			UnitCost:     &unitCost,
			RefType:      RefTypeGoodsReceipt,
			RefID:        grn.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("postear línea %s: %w", line.ID, err)
		}
	}

	if err := uc.grnRepo.UpdateStatus(ctx, grn.ID, entity.GoodsReceiptStatusPosted); err != nil {
		return nil, err
	}
	grn.Status = entity.GoodsReceiptStatusPosted
	return grn, nil
}

// PostReturn postea una devolución a proveedor: un movimiento PURCHASE_RETURN
// negativo por línea. No cambia el estado de la recepción.
//
// Igual que en ventas, el ref_id es el id de la recepción: la clave de
// idempotencia permite a lo sumo una devolución por recepción e ítem.
func (uc *UseCase) PostReturn(ctx context.Context, grnID string) (*entity.GoodsReceipt, error) {
	grn, err := uc.grnRepo.GetWithLines(ctx, grnID)
	if err != nil {
		return nil, err
	}
	if grn == nil {
		return nil, domain.ErrNotFound
	}

	for _, line := range grn.Lines {
		unitCost := line.UnitCost
		_, err := uc.poster.PostMovement(ctx, inventory.PostMovementInput{
			ItemID:       line.ItemID,
			LocationID:   grn.LocationID,
			MovementType: entity.MovementTypePURCHASERETURN,
			QtyDelta:     line.Qty.Neg(),
			UnitCost:     &unitCost,
			RefType:      RefTypePurchaseReturn,
			RefID:        grn.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("postear devolución de línea %s: %w", line.ID, err)
		}
	}
	return grn, nil
}

// CreateOrderInput datos para crear una orden de compra abierta.
type CreateOrderInput struct {
	PoNo       string
	SupplierID string
	LocationID string
}

// CreateOrder persiste una orden de compra en estado OPEN.
func (uc *UseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.PurchaseOrder, error) {
	if in.PoNo == "" || in.SupplierID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		PoNo:       in.PoNo,
		SupplierID: in.SupplierID,
		LocationID: in.LocationID,
		Status:     entity.PurchaseOrderStatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// ListOrders lista órdenes de compra, con filtro opcional por estado.
func (uc *UseCase) ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.poRepo.List(ctx, status, limit, offset)
}

// CloseOrder cierra la orden. Cerrar una orden ya CLOSED es un no-op.
func (uc *UseCase) CloseOrder(ctx context.Context, poID string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.Status == entity.PurchaseOrderStatusClosed {
		return po, nil
	}
	if err := uc.poRepo.UpdateStatus(ctx, po.ID, entity.PurchaseOrderStatusClosed); err != nil {
		return nil, err
	}
	po.Status = entity.PurchaseOrderStatusClosed
	return po, nil
}

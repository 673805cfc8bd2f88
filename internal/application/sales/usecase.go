package sales

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

// RefType de los movimientos generados por ventas.
const (
	RefTypeSalesInvoice = "sales_invoice"
	RefTypeSalesReturn  = "sales_return"
)

// UseCase orquesta facturas de venta: creación de borradores y posteo al
// libro de inventario (una llamada al StockPoster por línea).
type UseCase struct {
	invoiceRepo repository.SalesInvoiceRepository
	poster      *inventory.StockPoster
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(invoiceRepo repository.SalesInvoiceRepository, poster *inventory.StockPoster) *UseCase {
	return &UseCase{invoiceRepo: invoiceRepo, poster: poster}
}

// CreateLineInput línea de factura al crear el borrador.
type CreateLineInput struct {
	ItemID           string
	Qty              decimal.Decimal
	UnitPrice        decimal.Decimal
	Discount         decimal.Decimal
	Tax              decimal.Decimal
	UnitCostSnapshot *decimal.Decimal
}

// CreateInput datos para crear una factura en borrador.
type CreateInput struct {
	InvoiceNo  string
	CustomerID string
	LocationID string
	Lines      []CreateLineInput
}

// Create persiste una factura DRAFT con sus líneas y totales calculados.
// El costo unitario se congela aquí (snapshot) y viajará sin cambios al libro.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.SalesInvoice, error) {
	if in.InvoiceNo == "" || in.CustomerID == "" || in.LocationID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	inv := &entity.SalesInvoice{
		ID:         uuid.New().String(),
		InvoiceNo:  in.InvoiceNo,
		CustomerID: in.CustomerID,
		LocationID: in.LocationID,
		Status:     entity.SalesInvoiceStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	subtotal, taxTotal, discountTotal := decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range in.Lines {
		if l.ItemID == "" || !l.Qty.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		lineTotal := l.Qty.Mul(l.UnitPrice).Sub(l.Discount).Add(l.Tax).Round(2)
		inv.Lines = append(inv.Lines, entity.SalesInvoiceLine{
			ID:               uuid.New().String(),
			InvoiceID:        inv.ID,
			ItemID:           l.ItemID,
			Qty:              l.Qty,
			UnitPrice:        l.UnitPrice,
			Discount:         l.Discount,
			Tax:              l.Tax,
			LineTotal:        lineTotal,
			UnitCostSnapshot: l.UnitCostSnapshot,
		})
		subtotal = subtotal.Add(l.Qty.Mul(l.UnitPrice))
		taxTotal = taxTotal.Add(l.Tax)
		discountTotal = discountTotal.Add(l.Discount)
	}
	inv.Subtotal = subtotal.Round(2)
	inv.TaxTotal = taxTotal.Round(2)
	inv.DiscountTotal = discountTotal.Round(2)
	inv.GrandTotal = subtotal.Sub(discountTotal).Add(taxTotal).Round(2)

	if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Get carga una factura con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.SalesInvoice, error) {
	inv, err := uc.invoiceRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// List lista facturas, con filtro opcional por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesInvoice, error) {
	return uc.invoiceRepo.List(ctx, status, limit, offset)
}

// PostInvoice postea la factura al libro: un movimiento SALE con qty_delta
// negativo por línea, y transición a POSTED.
//
// Idempotente en dos capas: si la factura ya está POSTED se retorna sin tocar
// nada; y aun si el guard de estado se saltara, el StockPoster deduplica cada
// línea por su clave (ref_type, ref_id, movement_type, item_id).
func (uc *UseCase) PostInvoice(ctx context.Context, invoiceID string) (*entity.SalesInvoice, error) {
	inv, err := uc.invoiceRepo.GetWithLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status == entity.SalesInvoiceStatusPosted {
		return inv, nil
	}

	for _, line := range inv.Lines {
		_, err := uc.poster.PostMovement(ctx, inventory.PostMovementInput{
			ItemID:       line.ItemID,
			LocationID:   inv.LocationID,
			MovementType: entity.MovementTypeSALE,
			QtyDelta:     line.Qty.Neg(),
			UnitCost:     line.UnitCostSnapshot,
			RefType:      RefTypeSalesInvoice,
			RefID:        inv.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("postear línea %s: %w", line.ID, err)
		}
	}

	if err := uc.invoiceRepo.UpdateStatus(ctx, inv.ID, entity.SalesInvoiceStatusPosted); err != nil {
		return nil, err
	}
	inv.Status = entity.SalesInvoiceStatusPosted
	return inv, nil
}

// PostReturn postea la devolución de una factura: un movimiento SALE_RETURN
// positivo por línea. No cambia el estado del documento.
//
// La devolución reutiliza el id de la factura como ref_id, así que la clave de
// idempotencia permite a lo sumo una devolución por factura e ítem.
func (uc *UseCase) PostReturn(ctx context.Context, invoiceID string) (*entity.SalesInvoice, error) {
	inv, err := uc.invoiceRepo.GetWithLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	for _, line := range inv.Lines {
		_, err := uc.poster.PostMovement(ctx, inventory.PostMovementInput{
			ItemID:       line.ItemID,
			LocationID:   inv.LocationID,
			MovementType: entity.MovementTypeSALERETURN,
			QtyDelta:     line.Qty,
			UnitCost:     line.UnitCostSnapshot,
			RefType:      RefTypeSalesReturn,
			RefID:        inv.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("postear devolución de línea %s: %w", line.ID, err)
		}
	}
	return inv, nil
}

package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaeedBadree/TBSL-ERP/internal/application/inventory"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/purchasing"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type ledgerFake struct {
	rows []*entity.StockMovement
}

var _ repository.StockMovementRepository = (*ledgerFake)(nil)

func (f *ledgerFake) Insert(_ context.Context, m *entity.StockMovement) error {
	for _, r := range f.rows {
		if r.RefType == m.RefType && r.RefID == m.RefID && r.MovementType == m.MovementType && r.ItemID == m.ItemID {
			return domain.ErrDuplicate
		}
	}
	f.rows = append(f.rows, m)
	return nil
}

func (f *ledgerFake) GetByIdempotencyKey(_ context.Context, refType, refID, movementType, itemID string) (*entity.StockMovement, error) {
	for _, r := range f.rows {
		if r.RefType == refType && r.RefID == refID && r.MovementType == movementType && r.ItemID == itemID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *ledgerFake) SumQtyDelta(_ context.Context, itemID, locationID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, r := range f.rows {
		if r.ItemID == itemID && r.LocationID == locationID {
			sum = sum.Add(r.QtyDelta)
		}
	}
	return sum, nil
}

func (f *ledgerFake) ListByItemLocation(_ context.Context, _, _ string, _, _ int) ([]*entity.StockMovement, error) {
	return f.rows, nil
}
func (f *ledgerFake) Balances(_ context.Context, _, _ string, _, _ int) ([]repository.StockBalance, error) {
	return nil, nil
}
func (f *ledgerFake) LowStock(_ context.Context) ([]repository.StockBalance, error) {
	return nil, nil
}

type noopEvaluator struct{}

func (noopEvaluator) Evaluate(_ context.Context, _, _ string) {}

type grnRepoFake struct {
	byID map[string]*entity.GoodsReceipt
}

var _ repository.GoodsReceiptRepository = (*grnRepoFake)(nil)

func (f *grnRepoFake) Create(_ context.Context, grn *entity.GoodsReceipt) error {
	f.byID[grn.ID] = grn
	return nil
}
func (f *grnRepoFake) GetWithLines(_ context.Context, id string) (*entity.GoodsReceipt, error) {
	return f.byID[id], nil
}
func (f *grnRepoFake) List(_ context.Context, _ string, _, _ int) ([]*entity.GoodsReceipt, error) {
	var out []*entity.GoodsReceipt
	for _, g := range f.byID {
		out = append(out, g)
	}
	return out, nil
}
func (f *grnRepoFake) UpdateStatus(_ context.Context, id, status string) error {
	grn, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	grn.Status = status
	return nil
}

type poRepoFake struct {
	byID map[string]*entity.PurchaseOrder
}

var _ repository.PurchaseOrderRepository = (*poRepoFake)(nil)

func (f *poRepoFake) Create(_ context.Context, po *entity.PurchaseOrder) error {
	f.byID[po.ID] = po
	return nil
}
func (f *poRepoFake) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	return f.byID[id], nil
}
func (f *poRepoFake) List(_ context.Context, _ string, _, _ int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range f.byID {
		out = append(out, po)
	}
	return out, nil
}
func (f *poRepoFake) UpdateStatus(_ context.Context, id, status string) error {
	po, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	return nil
}

func newPurchasingUC() (*purchasing.UseCase, *grnRepoFake, *poRepoFake, *ledgerFake) {
	ledger := &ledgerFake{}
	poster := inventory.NewStockPoster(ledger, noopEvaluator{})
	grnRepo := &grnRepoFake{byID: map[string]*entity.GoodsReceipt{}}
	poRepo := &poRepoFake{byID: map[string]*entity.PurchaseOrder{}}
	return purchasing.NewUseCase(grnRepo, poRepo, poster), grnRepo, poRepo, ledger
}

func draftReceipt(t *testing.T, uc *purchasing.UseCase) *entity.GoodsReceipt {
	t.Helper()
	grn, err := uc.CreateReceipt(context.Background(), purchasing.CreateReceiptInput{
		GrnNo:      "GRN-001",
		SupplierID: "sup-1",
		LocationID: "loc-1",
		Lines: []purchasing.CreateReceiptLineInput{
			{ItemID: "item-1", Qty: decimal.NewFromInt(10), UnitCost: decimal.NewFromFloat(4.5)},
			{ItemID: "item-2", Qty: decimal.NewFromInt(3), UnitCost: decimal.NewFromInt(12)},
		},
	})
	require.NoError(t, err)
	return grn
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests recepciones
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el borrador calcula el total por línea y queda en draft.
func TestCreateReceipt_Borrador(t *testing.T) {
	uc, repo, _, _ := newPurchasingUC()
	grn := draftReceipt(t, uc)

	assert.Equal(t, entity.GoodsReceiptStatusDraft, grn.Status)
	require.Len(t, grn.Lines, 2)
	assert.True(t, grn.Lines[0].LineTotal.Equal(decimal.NewFromInt(45)), "10 * 4.5")
	assert.Contains(t, repo.byID, grn.ID)
}

// Caso 1b: validación de entrada.
func TestCreateReceipt_ValidacionEntrada(t *testing.T) {
	uc, _, _, _ := newPurchasingUC()
	ctx := context.Background()

	_, err := uc.CreateReceipt(ctx, purchasing.CreateReceiptInput{SupplierID: "s", LocationID: "l",
		Lines: []purchasing.CreateReceiptLineInput{{ItemID: "i", Qty: decimal.NewFromInt(1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin número de GRN")

	_, err = uc.CreateReceipt(ctx, purchasing.CreateReceiptInput{GrnNo: "G", SupplierID: "s", LocationID: "l",
		Lines: []purchasing.CreateReceiptLineInput{{ItemID: "i", Qty: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(-1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")
}

// Caso 2: postear genera PURCHASE_RECEIPT positivo por línea, con el costo de
// la línea congelado en el movimiento, y deja la recepción posted.
func TestPostReceipt_MovimientosPositivosConCosto(t *testing.T) {
	uc, _, _, ledger := newPurchasingUC()
	grn := draftReceipt(t, uc)

	posted, err := uc.PostReceipt(context.Background(), grn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoodsReceiptStatusPosted, posted.Status)

	require.Len(t, ledger.rows, 2)
	for _, m := range ledger.rows {
		assert.Equal(t, entity.MovementTypePURCHASERECEIPT, m.MovementType)
		assert.Equal(t, purchasing.RefTypeGoodsReceipt, m.RefType)
		assert.Equal(t, grn.ID, m.RefID)
		assert.True(t, m.QtyDelta.IsPositive(), "una recepción suma stock")
		require.NotNil(t, m.UnitCost)
	}

	available, err := ledger.SumQtyDelta(context.Background(), "item-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, available.Equal(decimal.NewFromInt(10)))
}

// Caso 3: doble post es un no-op por el guard de estado.
func TestPostReceipt_DoblePostNoDuplica(t *testing.T) {
	uc, _, _, ledger := newPurchasingUC()
	grn := draftReceipt(t, uc)

	_, err := uc.PostReceipt(context.Background(), grn.ID)
	require.NoError(t, err)
	again, err := uc.PostReceipt(context.Background(), grn.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.GoodsReceiptStatusPosted, again.Status)
	assert.Len(t, ledger.rows, 2)
}

// Caso 4: la devolución a proveedor descuenta stock sin tocar el estado.
func TestPostReturn_NegativoSinCambiarEstado(t *testing.T) {
	uc, _, _, ledger := newPurchasingUC()
	grn := draftReceipt(t, uc)
	_, err := uc.PostReceipt(context.Background(), grn.ID)
	require.NoError(t, err)

	returned, err := uc.PostReturn(context.Background(), grn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoodsReceiptStatusPosted, returned.Status)

	require.Len(t, ledger.rows, 4)
	var returns int
	for _, m := range ledger.rows {
		if m.MovementType == entity.MovementTypePURCHASERETURN {
			returns++
			assert.Equal(t, purchasing.RefTypePurchaseReturn, m.RefType)
			assert.True(t, m.QtyDelta.IsNegative(), "la devolución a proveedor descuenta stock")
		}
	}
	assert.Equal(t, 2, returns)

	// Repetir la devolución no inserta nada (clave de idempotencia).
	_, err = uc.PostReturn(context.Background(), grn.ID)
	require.NoError(t, err)
	assert.Len(t, ledger.rows, 4)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: crear y cerrar una orden; cerrar dos veces es un no-op.
func TestOrdenDeCompra_CicloAbrirCerrar(t *testing.T) {
	uc, _, repo, _ := newPurchasingUC()

	po, err := uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		PoNo: "PO-001", SupplierID: "sup-1", LocationID: "loc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusOpen, po.Status)

	closed, err := uc.CloseOrder(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusClosed, closed.Status)
	assert.Equal(t, entity.PurchaseOrderStatusClosed, repo.byID[po.ID].Status)

	again, err := uc.CloseOrder(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusClosed, again.Status)

	_, err = uc.CloseOrder(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeMovementRepo implementa el libro en memoria con la misma semántica de
// unicidad que la tabla real: duplicar la clave natural retorna ErrDuplicate.
type fakeMovementRepo struct {
	mu   sync.Mutex
	rows []*entity.StockMovement

	// lookupMisses fuerza que los próximos N GetByIdempotencyKey retornen nil
	// aunque la fila exista, para simular la carrera lookup → insert.
	lookupMisses int
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (f *fakeMovementRepo) Insert(_ context.Context, m *entity.StockMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.RefType == m.RefType && r.RefID == m.RefID && r.MovementType == m.MovementType && r.ItemID == m.ItemID {
			return domain.ErrDuplicate
		}
	}
	f.rows = append(f.rows, m)
	return nil
}

func (f *fakeMovementRepo) GetByIdempotencyKey(_ context.Context, refType, refID, movementType, itemID string) (*entity.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupMisses > 0 {
		f.lookupMisses--
		return nil, nil
	}
	for _, r := range f.rows {
		if r.RefType == refType && r.RefID == refID && r.MovementType == movementType && r.ItemID == itemID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) SumQtyDelta(_ context.Context, itemID, locationID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := decimal.Zero
	for _, r := range f.rows {
		if r.ItemID == itemID && r.LocationID == locationID {
			sum = sum.Add(r.QtyDelta)
		}
	}
	return sum, nil
}

func (f *fakeMovementRepo) ListByItemLocation(_ context.Context, itemID, locationID string, _, _ int) ([]*entity.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.StockMovement
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].ItemID == itemID && f.rows[i].LocationID == locationID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) Balances(_ context.Context, _, _ string, _, _ int) ([]repository.StockBalance, error) {
	return nil, nil
}

func (f *fakeMovementRepo) LowStock(_ context.Context) ([]repository.StockBalance, error) {
	return nil, nil
}

// stubEvaluator cuenta las invocaciones del poster.
type stubEvaluator struct {
	calls   int
	lastKey string
}

func (s *stubEvaluator) Evaluate(_ context.Context, itemID, locationID string) {
	s.calls++
	s.lastKey = itemID + "/" + locationID
}

func validInput() PostMovementInput {
	return PostMovementInput{
		ItemID:       "item-1",
		LocationID:   "loc-1",
		MovementType: entity.MovementTypePURCHASERECEIPT,
		QtyDelta:     decimal.NewFromInt(10),
		RefType:      "goods_receipt",
		RefID:        "grn-1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests StockPoster
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: entradas inválidas → ErrInvalidInput, sin tocar el libro.
func TestPostMovement_ValidacionEntrada(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PostMovementInput)
	}{
		{"sin item", func(in *PostMovementInput) { in.ItemID = "" }},
		{"sin location", func(in *PostMovementInput) { in.LocationID = "" }},
		{"sin ref_type", func(in *PostMovementInput) { in.RefType = "" }},
		{"sin ref_id", func(in *PostMovementInput) { in.RefID = "" }},
		{"tipo desconocido", func(in *PostMovementInput) { in.MovementType = "TRANSFER" }},
		{"qty cero", func(in *PostMovementInput) { in.QtyDelta = decimal.Zero }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeMovementRepo{}
			eval := &stubEvaluator{}
			poster := NewStockPoster(repo, eval)

			in := validInput()
			tc.mutate(&in)

			_, err := poster.PostMovement(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, repo.rows, "una entrada inválida no debe insertar nada")
			assert.Zero(t, eval.calls, "una entrada inválida no debe evaluar reorden")
		})
	}
}

// Caso 2: un insert nuevo persiste la fila y dispara la evaluación una vez.
func TestPostMovement_InsertNuevoDisparaEvaluador(t *testing.T) {
	repo := &fakeMovementRepo{}
	eval := &stubEvaluator{}
	poster := NewStockPoster(repo, eval)

	mov, err := poster.PostMovement(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, "item-1", mov.ItemID)
	assert.Equal(t, entity.MovementTypePURCHASERECEIPT, mov.MovementType)
	assert.True(t, mov.QtyDelta.Equal(decimal.NewFromInt(10)))
	assert.NotNil(t, mov.Details, "details nil debe normalizarse a mapa vacío")
	assert.False(t, mov.CreatedAt.IsZero())

	require.Len(t, repo.rows, 1)
	assert.Equal(t, 1, eval.calls)
	assert.Equal(t, "item-1/loc-1", eval.lastKey)
}

// Caso 3: repostear la misma clave natural es un no-op: retorna el movimiento
// original y no vuelve a disparar la evaluación.
func TestPostMovement_RepostEsNoOp(t *testing.T) {
	repo := &fakeMovementRepo{}
	eval := &stubEvaluator{}
	poster := NewStockPoster(repo, eval)

	first, err := poster.PostMovement(context.Background(), validInput())
	require.NoError(t, err)

	// Mismo documento, misma operación: da igual qué qty llegue esta vez.
	in := validInput()
	in.QtyDelta = decimal.NewFromInt(999)
	second, err := poster.PostMovement(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "el repost debe retornar el movimiento original")
	assert.True(t, second.QtyDelta.Equal(decimal.NewFromInt(10)), "la fila original no debe mutar")
	assert.Len(t, repo.rows, 1, "el libro debe seguir con una sola fila")
	assert.Equal(t, 1, eval.calls, "el repost no debe reevaluar reorden")
}

// Caso 4: carrera perdida — el lookup no ve la fila, el insert choca con la
// unicidad y el poster resuelve releyendo al ganador, sin propagar el conflicto.
func TestPostMovement_CarreraPerdidaReleeGanador(t *testing.T) {
	repo := &fakeMovementRepo{}
	eval := &stubEvaluator{}
	poster := NewStockPoster(repo, eval)

	winner, err := poster.PostMovement(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, 1, eval.calls)

	// El siguiente lookup no ve la fila: simula al poster que pierde la carrera.
	repo.lookupMisses = 1

	got, err := poster.PostMovement(context.Background(), validInput())
	require.NoError(t, err, "perder la carrera nunca debe propagar el duplicado")
	assert.Equal(t, winner.ID, got.ID, "debe retornarse la fila ganadora")
	assert.Len(t, repo.rows, 1)
	assert.Equal(t, 1, eval.calls, "el perdedor de la carrera no debe reevaluar")
}

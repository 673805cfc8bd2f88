package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake con persistencia
// ──────────────────────────────────────────────────────────────────────────────

// ruleStoreFake guarda reglas en memoria y replica la unicidad
// (item_id, location_id) de la tabla real en Create y en Update.
type ruleStoreFake struct {
	byID map[string]*entity.ReorderRule
}

var _ repository.ReorderRuleRepository = (*ruleStoreFake)(nil)

func newRuleStoreFake() *ruleStoreFake {
	return &ruleStoreFake{byID: map[string]*entity.ReorderRule{}}
}

func (f *ruleStoreFake) pairTaken(id, itemID, locationID string) bool {
	for _, r := range f.byID {
		if r.ID != id && r.ItemID == itemID && r.LocationID == locationID {
			return true
		}
	}
	return false
}

func (f *ruleStoreFake) Create(_ context.Context, rule *entity.ReorderRule) error {
	if f.pairTaken(rule.ID, rule.ItemID, rule.LocationID) {
		return domain.ErrDuplicate
	}
	stored := *rule
	f.byID[rule.ID] = &stored
	return nil
}

func (f *ruleStoreFake) GetByID(_ context.Context, id string) (*entity.ReorderRule, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copia := *r
	return &copia, nil
}

func (f *ruleStoreFake) List(_ context.Context, _, _ int) ([]*entity.ReorderRule, error) {
	var out []*entity.ReorderRule
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, nil
}

func (f *ruleStoreFake) ListActiveByItemLocation(_ context.Context, itemID, locationID string) ([]*entity.ReorderRule, error) {
	var out []*entity.ReorderRule
	for _, r := range f.byID {
		if r.Active && r.ItemID == itemID && r.LocationID == locationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *ruleStoreFake) Update(_ context.Context, rule *entity.ReorderRule) error {
	if _, ok := f.byID[rule.ID]; !ok {
		return domain.ErrNotFound
	}
	if f.pairTaken(rule.ID, rule.ItemID, rule.LocationID) {
		return domain.ErrDuplicate
	}
	stored := *rule
	f.byID[rule.ID] = &stored
	return nil
}

func (f *ruleStoreFake) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func ruleInput(itemID, locationID string, minLevel, maxLevel int64) RuleInput {
	return RuleInput{
		ItemID:     itemID,
		LocationID: locationID,
		MinLevel:   decimal.NewFromInt(minLevel),
		MaxLevel:   decimal.NewFromInt(maxLevel),
		Active:     true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RuleAdminUseCase
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el update es un reemplazo completo — cambiar el par (item, location)
// debe persistirse, y lo retornado debe coincidir con lo guardado.
func TestRuleUpdate_ReemplazaElParCompleto(t *testing.T) {
	store := newRuleStoreFake()
	uc := NewRuleAdminUseCase(store)

	created, err := uc.Create(context.Background(), ruleInput("item-1", "loc-1", 5, 20))
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, ruleInput("item-2", "loc-2", 3, 30))
	require.NoError(t, err)
	assert.Equal(t, "item-2", updated.ItemID)
	assert.Equal(t, "loc-2", updated.LocationID)

	stored, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, updated.ItemID, stored.ItemID, "la respuesta debe reflejar lo persistido")
	assert.Equal(t, updated.LocationID, stored.LocationID)
	assert.True(t, stored.MinLevel.Equal(decimal.NewFromInt(3)))
	assert.True(t, stored.MaxLevel.Equal(decimal.NewFromInt(30)))
}

// Caso 2: mover la regla a un par ya ocupado por otra regla → ErrDuplicate,
// sin tocar la fila original.
func TestRuleUpdate_ParOcupadoRetornaDuplicate(t *testing.T) {
	store := newRuleStoreFake()
	uc := NewRuleAdminUseCase(store)

	_, err := uc.Create(context.Background(), ruleInput("item-1", "loc-1", 5, 20))
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), ruleInput("item-2", "loc-1", 5, 20))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), second.ID, ruleInput("item-1", "loc-1", 5, 20))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	stored, err := store.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, "item-2", stored.ItemID, "la regla no debe mutar tras el conflicto")
}

// Caso 3: validación — max_level < min_level se rechaza en alta y en update.
func TestRuleAdmin_ValidacionNiveles(t *testing.T) {
	store := newRuleStoreFake()
	uc := NewRuleAdminUseCase(store)

	_, err := uc.Create(context.Background(), ruleInput("item-1", "loc-1", 20, 5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := uc.Create(context.Background(), ruleInput("item-1", "loc-1", 5, 20))
	require.NoError(t, err)
	_, err = uc.Update(context.Background(), created.ID, ruleInput("item-1", "loc-1", 20, 5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 4: update y delete sobre una regla inexistente → ErrNotFound.
func TestRuleAdmin_ReglaInexistente(t *testing.T) {
	store := newRuleStoreFake()
	uc := NewRuleAdminUseCase(store)

	_, err := uc.Update(context.Background(), "no-existe", ruleInput("item-1", "loc-1", 5, 20))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

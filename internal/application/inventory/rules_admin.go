package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// RuleAdminUseCase administración de reglas de reorden (manager/admin).
// El evaluador solo las lee; aquí viven las altas y cambios.
type RuleAdminUseCase struct {
	ruleRepo repository.ReorderRuleRepository
}

// NewRuleAdminUseCase construye el caso de uso.
func NewRuleAdminUseCase(ruleRepo repository.ReorderRuleRepository) *RuleAdminUseCase {
	return &RuleAdminUseCase{ruleRepo: ruleRepo}
}

// RuleInput datos de una regla (alta o reemplazo completo).
type RuleInput struct {
	ItemID              string
	LocationID          string
	MinLevel            decimal.Decimal
	MaxLevel            decimal.Decimal
	ReorderQty          *decimal.Decimal
	PreferredSupplierID *string
	LeadTimeDays        *int
	Active              bool
}

func (in RuleInput) validate() error {
	if in.ItemID == "" || in.LocationID == "" {
		return domain.ErrInvalidInput
	}
	if in.MaxLevel.LessThan(in.MinLevel) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create da de alta una regla; (item_id, location_id) es único.
func (uc *RuleAdminUseCase) Create(ctx context.Context, in RuleInput) (*entity.ReorderRule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rule := &entity.ReorderRule{
		ID:                  uuid.New().String(),
		ItemID:              in.ItemID,
		LocationID:          in.LocationID,
		MinLevel:            in.MinLevel,
		MaxLevel:            in.MaxLevel,
		ReorderQty:          in.ReorderQty,
		PreferredSupplierID: in.PreferredSupplierID,
		LeadTimeDays:        in.LeadTimeDays,
		Active:              in.Active,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// List lista reglas con paginación.
func (uc *RuleAdminUseCase) List(ctx context.Context, limit, offset int) ([]*entity.ReorderRule, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.ruleRepo.List(ctx, limit, offset)
}

// Update reemplaza los campos de la regla.
func (uc *RuleAdminUseCase) Update(ctx context.Context, id string, in RuleInput) (*entity.ReorderRule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	rule, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	rule.ItemID = in.ItemID
	rule.LocationID = in.LocationID
	rule.MinLevel = in.MinLevel
	rule.MaxLevel = in.MaxLevel
	rule.ReorderQty = in.ReorderQty
	rule.PreferredSupplierID = in.PreferredSupplierID
	rule.LeadTimeDays = in.LeadTimeDays
	rule.Active = in.Active
	rule.UpdatedAt = time.Now().UTC()
	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// Delete borra la regla.
func (uc *RuleAdminUseCase) Delete(ctx context.Context, id string) error {
	rule, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rule == nil {
		return domain.ErrNotFound
	}
	return uc.ruleRepo.Delete(ctx, id)
}

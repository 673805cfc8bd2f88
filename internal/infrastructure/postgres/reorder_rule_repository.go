package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

var _ repository.ReorderRuleRepository = (*ReorderRuleRepo)(nil)

// ReorderRuleRepo implementación de reglas de reorden sobre PostgreSQL.
type ReorderRuleRepo struct {
	q Querier
}

func NewReorderRuleRepository(q Querier) *ReorderRuleRepo {
	return &ReorderRuleRepo{q: q}
}

const ruleColumns = `id, item_id, location_id, min_level, max_level, reorder_qty, preferred_supplier_id, lead_time_days, active, created_at, updated_at`

func (r *ReorderRuleRepo) Create(ctx context.Context, rule *entity.ReorderRule) error {
	query := `
		INSERT INTO reorder_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		rule.ID, rule.ItemID, rule.LocationID, rule.MinLevel, rule.MaxLevel,
		rule.ReorderQty, rule.PreferredSupplierID, rule.LeadTimeDays, rule.Active,
		rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		// Unicidad (item_id, location_id): una sola regla por par.
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reorder rule: %w", err)
	}
	return nil
}

func (r *ReorderRuleRepo) GetByID(ctx context.Context, id string) (*entity.ReorderRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM reorder_rules WHERE id = $1`
	rule, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reorder rule: %w", err)
	}
	return rule, nil
}

func (r *ReorderRuleRepo) List(ctx context.Context, limit, offset int) ([]*entity.ReorderRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM reorder_rules
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	return r.queryMany(ctx, query, limit, offset)
}

func (r *ReorderRuleRepo) ListActiveByItemLocation(ctx context.Context, itemID, locationID string) ([]*entity.ReorderRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM reorder_rules
		WHERE item_id = $1 AND location_id = $2 AND active`
	return r.queryMany(ctx, query, itemID, locationID)
}

// Update reemplaza todos los campos de la regla, incluido el par
// (item_id, location_id); mover la regla a un par ya ocupado viola la
// unicidad y retorna ErrDuplicate.
func (r *ReorderRuleRepo) Update(ctx context.Context, rule *entity.ReorderRule) error {
	query := `
		UPDATE reorder_rules
		SET item_id = $2, location_id = $3, min_level = $4, max_level = $5,
		    reorder_qty = $6, preferred_supplier_id = $7, lead_time_days = $8,
		    active = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rule.ID, rule.ItemID, rule.LocationID, rule.MinLevel, rule.MaxLevel,
		rule.ReorderQty, rule.PreferredSupplierID, rule.LeadTimeDays, rule.Active,
		rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update reorder rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReorderRuleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM reorder_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reorder rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReorderRuleRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.ReorderRule, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reorder rules: %w", err)
	}
	defer rows.Close()

	var list []*entity.ReorderRule
	for rows.Next() {
		rule, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reorder rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

func (r *ReorderRuleRepo) scanOne(row pgx.Row) (*entity.ReorderRule, error) {
	var rule entity.ReorderRule
	if err := row.Scan(&rule.ID, &rule.ItemID, &rule.LocationID, &rule.MinLevel, &rule.MaxLevel,
		&rule.ReorderQty, &rule.PreferredSupplierID, &rule.LeadTimeDays, &rule.Active,
		&rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return nil, err
	}
	return &rule, nil
}

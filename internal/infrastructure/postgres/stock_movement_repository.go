package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de inventario sobre PostgreSQL
// (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, item_id, location_id, ref_type, ref_id, movement_type, qty_delta, unit_cost, details, created_at`

// Insert persiste el movimiento. La constraint uq_stock_movement_idempotent
// (ref_type, ref_id, movement_type, item_id) convierte el insert duplicado en
// domain.ErrDuplicate, que el StockPoster resuelve releyendo la fila ganadora.
func (r *StockMovementRepo) Insert(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.LocationID, m.RefType, m.RefID, m.MovementType,
		m.QtyDelta, m.UnitCost, m.Details, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByIdempotencyKey busca el movimiento por su clave natural; nil si no existe.
func (r *StockMovementRepo) GetByIdempotencyKey(ctx context.Context, refType, refID, movementType, itemID string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE ref_type = $1 AND ref_id = $2 AND movement_type = $3 AND item_id = $4`
	m, err := r.scanOne(r.q.QueryRow(ctx, query, refType, refID, movementType, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement by key: %w", err)
	}
	return m, nil
}

// SumQtyDelta devuelve COALESCE(SUM(qty_delta), 0) para (item, location).
func (r *StockMovementRepo) SumQtyDelta(ctx context.Context, itemID, locationID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(qty_delta), 0)
		FROM stock_movements
		WHERE item_id = $1 AND location_id = $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, itemID, locationID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum qty_delta: %w", err)
	}
	return sum, nil
}

// ListByItemLocation lista los movimientos de un (item, location), más reciente primero.
func (r *StockMovementRepo) ListByItemLocation(ctx context.Context, itemID, locationID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE item_id = $1 AND location_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, itemID, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Balances devuelve SUM(qty_delta) por (item, location) con los umbrales de la
// regla de reorden si existe (LEFT JOIN).
func (r *StockMovementRepo) Balances(ctx context.Context, locationID, search string, limit, offset int) ([]repository.StockBalance, error) {
	query := `
		WITH agg AS (
			SELECT item_id, location_id, SUM(qty_delta) AS available
			FROM stock_movements
			GROUP BY item_id, location_id
		)
		SELECT a.item_id, i.item_code, i.name, a.location_id, l.name, a.available,
		       rr.min_level, rr.max_level
		FROM agg a
		JOIN items i ON i.id = a.item_id
		JOIN store_locations l ON l.id = a.location_id
		LEFT JOIN reorder_rules rr ON rr.item_id = a.item_id AND rr.location_id = a.location_id`
	args := []any{}
	pos := 1
	where := ""
	if locationID != "" {
		where += fmt.Sprintf(" AND a.location_id = $%d", pos)
		args = append(args, locationID)
		pos++
	}
	if search != "" {
		where += fmt.Sprintf(" AND (i.name ILIKE $%d OR i.item_code ILIKE $%d)", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	if where != "" {
		query += " WHERE" + where[4:] // quitar el " AND" inicial
	}
	query += fmt.Sprintf(" ORDER BY i.name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("balances: %w", err)
	}
	defer rows.Close()

	var list []repository.StockBalance
	for rows.Next() {
		var b repository.StockBalance
		if err := rows.Scan(&b.ItemID, &b.ItemCode, &b.ItemName, &b.LocationID, &b.LocationName,
			&b.Available, &b.MinLevel, &b.MaxLevel); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// LowStock devuelve los pares con regla activa cuyo disponible está en o bajo el mínimo.
func (r *StockMovementRepo) LowStock(ctx context.Context) ([]repository.StockBalance, error) {
	query := `
		WITH agg AS (
			SELECT item_id, location_id, COALESCE(SUM(qty_delta), 0) AS available
			FROM stock_movements
			GROUP BY item_id, location_id
		)
		SELECT rr.item_id, i.item_code, i.name, rr.location_id, l.name, a.available,
		       rr.min_level, rr.max_level
		FROM reorder_rules rr
		JOIN agg a ON a.item_id = rr.item_id AND a.location_id = rr.location_id
		JOIN items i ON i.id = rr.item_id
		JOIN store_locations l ON l.id = rr.location_id
		WHERE rr.active AND a.available <= rr.min_level
		ORDER BY a.available ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()

	var list []repository.StockBalance
	for rows.Next() {
		var b repository.StockBalance
		if err := rows.Scan(&b.ItemID, &b.ItemCode, &b.ItemName, &b.LocationID, &b.LocationName,
			&b.Available, &b.MinLevel, &b.MaxLevel); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *StockMovementRepo) scanOne(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	if err := row.Scan(&m.ID, &m.ItemID, &m.LocationID, &m.RefType, &m.RefID, &m.MovementType,
		&m.QtyDelta, &m.UnitCost, &m.Details, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

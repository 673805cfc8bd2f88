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

var (
	_ repository.GoodsReceiptRepository  = (*GoodsReceiptRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
)

// GoodsReceiptRepo implementación de recepciones de mercancía sobre PostgreSQL.
type GoodsReceiptRepo struct {
	q Querier
}

func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

const grnColumns = `id, grn_no, supplier_id, location_id, status, received_at, created_at, updated_at`

func (r *GoodsReceiptRepo) Create(ctx context.Context, grn *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (` + grnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		grn.ID, grn.GrnNo, grn.SupplierID, grn.LocationID, grn.Status,
		grn.ReceivedAt, grn.CreatedAt, grn.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert goods receipt: %w", err)
	}

	lineQuery := `
		INSERT INTO goods_receipt_lines (id, grn_id, item_id, qty, unit_cost, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range grn.Lines {
		l := &grn.Lines[i]
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, grn.ID, l.ItemID, l.Qty, l.UnitCost, l.LineTotal,
		); err != nil {
			return fmt.Errorf("insert goods receipt line: %w", err)
		}
	}
	return nil
}

func (r *GoodsReceiptRepo) GetWithLines(ctx context.Context, id string) (*entity.GoodsReceipt, error) {
	query := `SELECT ` + grnColumns + ` FROM goods_receipts WHERE id = $1`
	grn, err := r.scanHeader(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}

	lineQuery := `
		SELECT id, grn_id, item_id, qty, unit_cost, line_total
		FROM goods_receipt_lines
		WHERE grn_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list goods receipt lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.GoodsReceiptLine
		if err := rows.Scan(&l.ID, &l.GrnID, &l.ItemID, &l.Qty, &l.UnitCost, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan goods receipt line: %w", err)
		}
		grn.Lines = append(grn.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grn, nil
}

func (r *GoodsReceiptRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.GoodsReceipt, error) {
	query := `SELECT ` + grnColumns + ` FROM goods_receipts`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()

	var list []*entity.GoodsReceipt
	for rows.Next() {
		grn, err := r.scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		list = append(list, grn)
	}
	return list, rows.Err()
}

func (r *GoodsReceiptRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE goods_receipts SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update goods receipt status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GoodsReceiptRepo) scanHeader(row pgx.Row) (*entity.GoodsReceipt, error) {
	var grn entity.GoodsReceipt
	if err := row.Scan(&grn.ID, &grn.GrnNo, &grn.SupplierID, &grn.LocationID, &grn.Status,
		&grn.ReceivedAt, &grn.CreatedAt, &grn.UpdatedAt); err != nil {
		return nil, err
	}
	return &grn, nil
}

// ─────────────────────────────────────────────────────────────────────────────

// PurchaseOrderRepo implementación de órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, po_no, supplier_id, location_id, status, created_at, updated_at`

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.PoNo, po.SupplierID, po.LocationID, po.Status, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(&po.ID, &po.PoNo, &po.SupplierID, &po.LocationID,
		&po.Status, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &po, nil
}

func (r *PurchaseOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.PoNo, &po.SupplierID, &po.LocationID,
			&po.Status, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &po)
	}
	return list, rows.Err()
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

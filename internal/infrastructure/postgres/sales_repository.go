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

var _ repository.SalesInvoiceRepository = (*SalesInvoiceRepo)(nil)

// SalesInvoiceRepo implementación de facturas de venta sobre PostgreSQL.
type SalesInvoiceRepo struct {
	q Querier
}

func NewSalesInvoiceRepository(q Querier) *SalesInvoiceRepo {
	return &SalesInvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_no, customer_id, location_id, status, subtotal, tax_total, discount_total, grand_total, created_at, updated_at`

// Create persiste la factura y sus líneas. Sin transacción envolvente: el
// llamador decide si pasa un tx como Querier.
func (r *SalesInvoiceRepo) Create(ctx context.Context, inv *entity.SalesInvoice) error {
	query := `
		INSERT INTO sales_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNo, inv.CustomerID, inv.LocationID, inv.Status,
		inv.Subtotal, inv.TaxTotal, inv.DiscountTotal, inv.GrandTotal,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales invoice: %w", err)
	}

	lineQuery := `
		INSERT INTO sales_invoice_lines
			(id, invoice_id, item_id, qty, unit_price, discount, tax, line_total, unit_cost_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range inv.Lines {
		l := &inv.Lines[i]
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, inv.ID, l.ItemID, l.Qty, l.UnitPrice, l.Discount, l.Tax,
			l.LineTotal, l.UnitCostSnapshot,
		); err != nil {
			return fmt.Errorf("insert sales invoice line: %w", err)
		}
	}
	return nil
}

func (r *SalesInvoiceRepo) GetWithLines(ctx context.Context, id string) (*entity.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE id = $1`
	inv, err := r.scanHeader(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales invoice: %w", err)
	}

	lineQuery := `
		SELECT id, invoice_id, item_id, qty, unit_price, discount, tax, line_total, unit_cost_snapshot
		FROM sales_invoice_lines
		WHERE invoice_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list sales invoice lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.SalesInvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ItemID, &l.Qty, &l.UnitPrice,
			&l.Discount, &l.Tax, &l.LineTotal, &l.UnitCostSnapshot); err != nil {
			return nil, fmt.Errorf("scan sales invoice line: %w", err)
		}
		inv.Lines = append(inv.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *SalesInvoiceRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices`
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
		return nil, fmt.Errorf("list sales invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.SalesInvoice
	for rows.Next() {
		inv, err := r.scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *SalesInvoiceRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE sales_invoices SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update sales invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SalesInvoiceRepo) scanHeader(row pgx.Row) (*entity.SalesInvoice, error) {
	var inv entity.SalesInvoice
	if err := row.Scan(&inv.ID, &inv.InvoiceNo, &inv.CustomerID, &inv.LocationID, &inv.Status,
		&inv.Subtotal, &inv.TaxTotal, &inv.DiscountTotal, &inv.GrandTotal,
		&inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

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
	_ repository.ItemRepository          = (*ItemRepo)(nil)
	_ repository.StoreLocationRepository = (*StoreLocationRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
)

// ItemRepo implementación del catálogo de artículos sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, tenant_id, item_code, sku, name, short_name, barcode, uom, brand, active, created_at, updated_at`

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.TenantID, item.ItemCode, item.SKU, item.Name, item.ShortName,
		item.Barcode, item.UOM, item.Brand, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(&it.ID, &it.TenantID, &it.ItemCode, &it.SKU,
		&it.Name, &it.ShortName, &it.Barcode, &it.UOM, &it.Brand, &it.Active,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *ItemRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Item, int, error) {
	where := ""
	args := []any{}
	pos := 1
	if search != "" {
		where = fmt.Sprintf(" WHERE name ILIKE $%d OR item_code ILIKE $%d OR barcode ILIKE $%d", pos, pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items` + where +
		fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.TenantID, &it.ItemCode, &it.SKU,
			&it.Name, &it.ShortName, &it.Barcode, &it.UOM, &it.Brand, &it.Active,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, total, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────

// StoreLocationRepo implementación de ubicaciones sobre PostgreSQL.
type StoreLocationRepo struct {
	q Querier
}

func NewStoreLocationRepository(q Querier) *StoreLocationRepo {
	return &StoreLocationRepo{q: q}
}

const locationColumns = `id, tenant_id, code, name, address, phone, created_at, updated_at`

func (r *StoreLocationRepo) Create(ctx context.Context, loc *entity.StoreLocation) error {
	query := `
		INSERT INTO store_locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		loc.ID, loc.TenantID, loc.Code, loc.Name, loc.Address, loc.Phone,
		loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store location: %w", err)
	}
	return nil
}

func (r *StoreLocationRepo) GetByID(ctx context.Context, id string) (*entity.StoreLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM store_locations WHERE id = $1`
	var loc entity.StoreLocation
	err := r.q.QueryRow(ctx, query, id).Scan(&loc.ID, &loc.TenantID, &loc.Code, &loc.Name,
		&loc.Address, &loc.Phone, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store location: %w", err)
	}
	return &loc, nil
}

func (r *StoreLocationRepo) List(ctx context.Context) ([]*entity.StoreLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM store_locations ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list store locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.StoreLocation
	for rows.Next() {
		var loc entity.StoreLocation
		if err := rows.Scan(&loc.ID, &loc.TenantID, &loc.Code, &loc.Name,
			&loc.Address, &loc.Phone, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store location: %w", err)
		}
		list = append(list, &loc)
	}
	return list, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────

// CustomerRepo implementación de clientes sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, customer_code, name, phone, email, address, credit_limit, credit_days, status, type, created_at, updated_at`

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.CustomerCode, c.Name, c.Phone, c.Email, c.Address,
		c.CreditLimit, c.CreditDays, c.Status, c.Type, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := r.scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, int, error) {
	where := ""
	args := []any{}
	pos := 1
	if search != "" {
		where = fmt.Sprintf(" WHERE name ILIKE $%d OR customer_code ILIKE $%d", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + where +
		fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r *CustomerRepo) scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.TenantID, &c.CustomerCode, &c.Name, &c.Phone, &c.Email,
		&c.Address, &c.CreditLimit, &c.CreditDays, &c.Status, &c.Type,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ─────────────────────────────────────────────────────────────────────────────

// SupplierRepo implementación de proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, tenant_id, supplier_code, name, phone, email, address, payment_terms, created_at, updated_at`

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.SupplierCode, s.Name, s.Phone, s.Email, s.Address,
		s.PaymentTerms, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.TenantID, &s.SupplierCode, &s.Name,
		&s.Phone, &s.Email, &s.Address, &s.PaymentTerms, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Supplier, int, error) {
	where := ""
	args := []any{}
	pos := 1
	if search != "" {
		where = fmt.Sprintf(" WHERE name ILIKE $%d OR supplier_code ILIKE $%d", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	query := `SELECT ` + supplierColumns + ` FROM suppliers` + where +
		fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.TenantID, &s.SupplierCode, &s.Name,
			&s.Phone, &s.Email, &s.Address, &s.PaymentTerms, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

package repository

import (
	"context"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para artículos.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// List busca por nombre, código o barcode (ILIKE) con paginación.
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Item, int, error)
}

// StoreLocationRepository define el puerto de persistencia para ubicaciones.
type StoreLocationRepository interface {
	Create(ctx context.Context, loc *entity.StoreLocation) error
	GetByID(ctx context.Context, id string) (*entity.StoreLocation, error)
	List(ctx context.Context) ([]*entity.StoreLocation, error)
}

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, int, error)
}

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Supplier, int, error)
}

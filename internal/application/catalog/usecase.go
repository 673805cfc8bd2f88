package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// UseCase consultas y altas del catálogo maestro: ítems, clientes, proveedores
// y ubicaciones. El núcleo de inventario los consume como claves foráneas ya
// válidas; aquí solo viven los lookups y el alta administrativa.
type UseCase struct {
	itemRepo     repository.ItemRepository
	locationRepo repository.StoreLocationRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(
	itemRepo repository.ItemRepository,
	locationRepo repository.StoreLocationRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *UseCase {
	return &UseCase{
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// ListItems busca ítems por nombre, código o barcode.
func (uc *UseCase) ListItems(ctx context.Context, search string, limit, offset int) ([]*entity.Item, int, error) {
	return uc.itemRepo.List(ctx, search, clampLimit(limit), offset)
}

// GetItem obtiene un ítem por id.
func (uc *UseCase) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// CreateItem da de alta un ítem del catálogo.
func (uc *UseCase) CreateItem(ctx context.Context, item *entity.Item) error {
	if item.ItemCode == "" || item.SKU == "" || item.Name == "" {
		return domain.ErrInvalidInput
	}
	item.ID = uuid.New().String()
	item.Active = true
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	return uc.itemRepo.Create(ctx, item)
}

// ListLocations lista todas las ubicaciones.
func (uc *UseCase) ListLocations(ctx context.Context) ([]*entity.StoreLocation, error) {
	return uc.locationRepo.List(ctx)
}

// CreateLocation da de alta una ubicación.
func (uc *UseCase) CreateLocation(ctx context.Context, loc *entity.StoreLocation) error {
	if loc.Code == "" || loc.Name == "" {
		return domain.ErrInvalidInput
	}
	loc.ID = uuid.New().String()
	loc.CreatedAt = time.Now().UTC()
	loc.UpdatedAt = loc.CreatedAt
	return uc.locationRepo.Create(ctx, loc)
}

// ListCustomers busca clientes por nombre, código o teléfono.
func (uc *UseCase) ListCustomers(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, int, error) {
	return uc.customerRepo.List(ctx, search, clampLimit(limit), offset)
}

// GetCustomer obtiene un cliente por id.
func (uc *UseCase) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// CreateCustomer da de alta un cliente.
func (uc *UseCase) CreateCustomer(ctx context.Context, c *entity.Customer) error {
	if c.CustomerCode == "" || c.Name == "" {
		return domain.ErrInvalidInput
	}
	c.ID = uuid.New().String()
	if c.Status == "" {
		c.Status = "active"
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	return uc.customerRepo.Create(ctx, c)
}

// ListSuppliers busca proveedores por nombre, código o teléfono.
func (uc *UseCase) ListSuppliers(ctx context.Context, search string, limit, offset int) ([]*entity.Supplier, int, error) {
	return uc.supplierRepo.List(ctx, search, clampLimit(limit), offset)
}

// GetSupplier obtiene un proveedor por id.
func (uc *UseCase) GetSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// CreateSupplier da de alta un proveedor.
func (uc *UseCase) CreateSupplier(ctx context.Context, s *entity.Supplier) error {
	if s.SupplierCode == "" || s.Name == "" {
		return domain.ErrInvalidInput
	}
	s.ID = uuid.New().String()
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	return uc.supplierRepo.Create(ctx, s)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 200 {
		return 200
	}
	return limit
}

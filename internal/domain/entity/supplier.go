package entity

import "time"

// Supplier es un proveedor del catálogo de compras.
type Supplier struct {
	ID           string
	TenantID     *string
	SupplierCode string
	Name         string
	Phone        *string
	Email        *string
	Address      *string
	PaymentTerms *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import "time"

// Estados de la orden de compra: open → closed | cancelled.
const (
	PurchaseOrderStatusOpen      = "open"
	PurchaseOrderStatusClosed    = "closed"
	PurchaseOrderStatusCancelled = "cancelled"
)

// PurchaseOrder es una orden de compra a un proveedor.
type PurchaseOrder struct {
	ID         string
	PoNo       string
	SupplierID string
	LocationID string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

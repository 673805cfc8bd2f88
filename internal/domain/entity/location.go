package entity

import "time"

// StoreLocation es una tienda o bodega donde vive el stock.
type StoreLocation struct {
	ID        string
	TenantID  *string
	Code      string
	Name      string
	Address   *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

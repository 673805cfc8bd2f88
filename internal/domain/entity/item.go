package entity

import "time"

// Item es un artículo del catálogo.
type Item struct {
	ID        string
	TenantID  *string
	ItemCode  string
	SKU       string
	Name      string
	ShortName *string
	Barcode   *string
	UOM       *string
	Brand     *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

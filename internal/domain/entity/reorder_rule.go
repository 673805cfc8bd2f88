package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReorderRule define los umbrales de reorden de un ítem en una ubicación.
// Única por (ItemID, LocationID); solo las reglas activas se evalúan.
type ReorderRule struct {
	ID                  string
	ItemID              string
	LocationID          string
	MinLevel            decimal.Decimal
	MaxLevel            decimal.Decimal
	ReorderQty          *decimal.Decimal
	PreferredSupplierID *string
	LeadTimeDays        *int
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

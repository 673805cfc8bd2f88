package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la recepción de mercancía: draft → posted.
const (
	GoodsReceiptStatusDraft  = "draft"
	GoodsReceiptStatusPosted = "posted"
)

// GoodsReceipt es una recepción de mercancía (GRN) con sus líneas.
type GoodsReceipt struct {
	ID         string
	GrnNo      string
	SupplierID string
	LocationID string
	Status     string
	ReceivedAt time.Time
	Lines      []GoodsReceiptLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GoodsReceiptLine es una línea de recepción con su costo unitario de compra.
type GoodsReceiptLine struct {
	ID        string
	GrnID     string
	ItemID    string
	Qty       decimal.Decimal
	UnitCost  decimal.Decimal
	LineTotal decimal.Decimal
}

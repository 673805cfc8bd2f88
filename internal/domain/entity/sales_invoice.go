package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura de venta: draft → finalized → posted.
// Una factura POSTED no vuelve a tocar el libro de inventario.
const (
	SalesInvoiceStatusDraft     = "draft"
	SalesInvoiceStatusFinalized = "finalized"
	SalesInvoiceStatusPosted    = "posted"
)

// SalesInvoice es una factura de venta con sus líneas.
type SalesInvoice struct {
	ID            string
	InvoiceNo     string
	CustomerID    string
	LocationID    string
	Status        string
	Subtotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	GrandTotal    decimal.Decimal
	Lines         []SalesInvoiceLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SalesInvoiceLine es una línea de factura. UnitCostSnapshot se congela al
// crear el documento y viaja sin cambios al movimiento de inventario.
type SalesInvoiceLine struct {
	ID               string
	InvoiceID        string
	ItemID           string
	Qty              decimal.Decimal
	UnitPrice        decimal.Decimal
	Discount         decimal.Decimal
	Tax              decimal.Decimal
	LineTotal        decimal.Decimal
	UnitCostSnapshot *decimal.Decimal
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// CreateInvoiceLineRequest línea de factura en la creación.
type CreateInvoiceLineRequest struct {
	ItemID           string           `json:"item_id"`
	Qty              decimal.Decimal  `json:"qty"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	Discount         decimal.Decimal  `json:"discount"`
	Tax              decimal.Decimal  `json:"tax"`
	UnitCostSnapshot *decimal.Decimal `json:"unit_cost_snapshot,omitempty"`
}

// CreateInvoiceRequest entrada para crear una factura en borrador.
type CreateInvoiceRequest struct {
	InvoiceNo  string                     `json:"invoice_no"`
	CustomerID string                     `json:"customer_id"`
	LocationID string                     `json:"location_id"`
	Lines      []CreateInvoiceLineRequest `json:"lines"`
}

// InvoiceLineResponse línea de factura en respuestas.
type InvoiceLineResponse struct {
	ID               string           `json:"id"`
	ItemID           string           `json:"item_id"`
	Qty              decimal.Decimal  `json:"qty"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	Discount         decimal.Decimal  `json:"discount"`
	Tax              decimal.Decimal  `json:"tax"`
	LineTotal        decimal.Decimal  `json:"line_total"`
	UnitCostSnapshot *decimal.Decimal `json:"unit_cost_snapshot,omitempty"`
}

// InvoiceResponse una factura de venta con sus líneas.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNo     string                `json:"invoice_no"`
	CustomerID    string                `json:"customer_id"`
	LocationID    string                `json:"location_id"`
	Status        string                `json:"status"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxTotal      decimal.Decimal       `json:"tax_total"`
	DiscountTotal decimal.Decimal       `json:"discount_total"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	Lines         []InvoiceLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToInvoiceResponse convierte la entidad al DTO de respuesta.
func ToInvoiceResponse(inv *entity.SalesInvoice) InvoiceResponse {
	out := InvoiceResponse{
		ID:            inv.ID,
		InvoiceNo:     inv.InvoiceNo,
		CustomerID:    inv.CustomerID,
		LocationID:    inv.LocationID,
		Status:        inv.Status,
		Subtotal:      inv.Subtotal,
		TaxTotal:      inv.TaxTotal,
		DiscountTotal: inv.DiscountTotal,
		GrandTotal:    inv.GrandTotal,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	for _, l := range inv.Lines {
		out.Lines = append(out.Lines, InvoiceLineResponse{
			ID:               l.ID,
			ItemID:           l.ItemID,
			Qty:              l.Qty,
			UnitPrice:        l.UnitPrice,
			Discount:         l.Discount,
			Tax:              l.Tax,
			LineTotal:        l.LineTotal,
			UnitCostSnapshot: l.UnitCostSnapshot,
		})
	}
	return out
}

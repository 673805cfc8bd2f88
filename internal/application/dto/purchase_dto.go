package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// CreateReceiptLineRequest línea de recepción en la creación.
type CreateReceiptLineRequest struct {
	ItemID   string          `json:"item_id"`
	Qty      decimal.Decimal `json:"qty"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreateReceiptRequest entrada para crear una recepción en borrador.
type CreateReceiptRequest struct {
	GrnNo      string                     `json:"grn_no"`
	SupplierID string                     `json:"supplier_id"`
	LocationID string                     `json:"location_id"`
	Lines      []CreateReceiptLineRequest `json:"lines"`
}

// ReceiptLineResponse línea de recepción en respuestas.
type ReceiptLineResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Qty       decimal.Decimal `json:"qty"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// ReceiptResponse una recepción de mercancía con sus líneas.
type ReceiptResponse struct {
	ID         string                `json:"id"`
	GrnNo      string                `json:"grn_no"`
	SupplierID string                `json:"supplier_id"`
	LocationID string                `json:"location_id"`
	Status     string                `json:"status"`
	ReceivedAt time.Time             `json:"received_at"`
	Lines      []ReceiptLineResponse `json:"lines,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// ToReceiptResponse convierte la entidad al DTO de respuesta.
func ToReceiptResponse(grn *entity.GoodsReceipt) ReceiptResponse {
	out := ReceiptResponse{
		ID:         grn.ID,
		GrnNo:      grn.GrnNo,
		SupplierID: grn.SupplierID,
		LocationID: grn.LocationID,
		Status:     grn.Status,
		ReceivedAt: grn.ReceivedAt,
		CreatedAt:  grn.CreatedAt,
		UpdatedAt:  grn.UpdatedAt,
	}
	for _, l := range grn.Lines {
		out.Lines = append(out.Lines, ReceiptLineResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			Qty:       l.Qty,
			UnitCost:  l.UnitCost,
			LineTotal: l.LineTotal,
		})
	}
	return out
}

// CreateOrderRequest entrada para crear una orden de compra.
type CreateOrderRequest struct {
	PoNo       string `json:"po_no"`
	SupplierID string `json:"supplier_id"`
	LocationID string `json:"location_id"`
}

// OrderResponse una orden de compra.
type OrderResponse struct {
	ID         string    `json:"id"`
	PoNo       string    `json:"po_no"`
	SupplierID string    `json:"supplier_id"`
	LocationID string    `json:"location_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToOrderResponse convierte la entidad al DTO de respuesta.
func ToOrderResponse(po *entity.PurchaseOrder) OrderResponse {
	return OrderResponse{
		ID:         po.ID,
		PoNo:       po.PoNo,
		SupplierID: po.SupplierID,
		LocationID: po.LocationID,
		Status:     po.Status,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	}
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// PostMovementRequest entrada para registrar un movimiento manual (ajustes).
type PostMovementRequest struct {
	ItemID       string          `json:"item_id"`
	LocationID   string          `json:"location_id"`
	MovementType string          `json:"movement_type"`
	QtyDelta     decimal.Decimal `json:"qty_delta"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	RefType      string          `json:"ref_type"`
	RefID        string          `json:"ref_id"`
	Details      map[string]any  `json:"details,omitempty"`
}

// MovementResponse un movimiento del libro de inventario.
type MovementResponse struct {
	ID           string           `json:"id"`
	ItemID       string           `json:"item_id"`
	LocationID   string           `json:"location_id"`
	RefType      string           `json:"ref_type"`
	RefID        string           `json:"ref_id"`
	MovementType string           `json:"movement_type"`
	QtyDelta     decimal.Decimal  `json:"qty_delta"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Details      map[string]any   `json:"details,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ToMovementResponse convierte la entidad al DTO de respuesta.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		LocationID:   m.LocationID,
		RefType:      m.RefType,
		RefID:        m.RefID,
		MovementType: m.MovementType,
		QtyDelta:     m.QtyDelta,
		UnitCost:     m.UnitCost,
		Details:      m.Details,
		CreatedAt:    m.CreatedAt,
	}
}

// BalanceResponse disponible de un (item, location) con sus umbrales.
type BalanceResponse struct {
	ItemID       string           `json:"item_id"`
	ItemCode     *string          `json:"item_code,omitempty"`
	ItemName     *string          `json:"item_name,omitempty"`
	LocationID   string           `json:"location_id"`
	LocationName *string          `json:"location_name,omitempty"`
	Available    decimal.Decimal  `json:"available"`
	MinLevel     *decimal.Decimal `json:"min_level,omitempty"`
	MaxLevel     *decimal.Decimal `json:"max_level,omitempty"`
}

// ToBalanceResponse convierte el agregado al DTO de respuesta.
func ToBalanceResponse(b repository.StockBalance) BalanceResponse {
	return BalanceResponse{
		ItemID:       b.ItemID,
		ItemCode:     b.ItemCode,
		ItemName:     b.ItemName,
		LocationID:   b.LocationID,
		LocationName: b.LocationName,
		Available:    b.Available,
		MinLevel:     b.MinLevel,
		MaxLevel:     b.MaxLevel,
	}
}

// ReorderRuleRequest entrada para crear o actualizar una regla de reorden.
type ReorderRuleRequest struct {
	ItemID              string           `json:"item_id"`
	LocationID          string           `json:"location_id"`
	MinLevel            decimal.Decimal  `json:"min_level"`
	MaxLevel            decimal.Decimal  `json:"max_level"`
	ReorderQty          *decimal.Decimal `json:"reorder_qty,omitempty"`
	PreferredSupplierID *string          `json:"preferred_supplier_id,omitempty"`
	LeadTimeDays        *int             `json:"lead_time_days,omitempty"`
	Active              *bool            `json:"active,omitempty"`
}

// ReorderRuleResponse una regla de reorden.
type ReorderRuleResponse struct {
	ID                  string           `json:"id"`
	ItemID              string           `json:"item_id"`
	LocationID          string           `json:"location_id"`
	MinLevel            decimal.Decimal  `json:"min_level"`
	MaxLevel            decimal.Decimal  `json:"max_level"`
	ReorderQty          *decimal.Decimal `json:"reorder_qty,omitempty"`
	PreferredSupplierID *string          `json:"preferred_supplier_id,omitempty"`
	LeadTimeDays        *int             `json:"lead_time_days,omitempty"`
	Active              bool             `json:"active"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// ToReorderRuleResponse convierte la entidad al DTO de respuesta.
func ToReorderRuleResponse(r *entity.ReorderRule) ReorderRuleResponse {
	return ReorderRuleResponse{
		ID:                  r.ID,
		ItemID:              r.ItemID,
		LocationID:          r.LocationID,
		MinLevel:            r.MinLevel,
		MaxLevel:            r.MaxLevel,
		ReorderQty:          r.ReorderQty,
		PreferredSupplierID: r.PreferredSupplierID,
		LeadTimeDays:        r.LeadTimeDays,
		Active:              r.Active,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

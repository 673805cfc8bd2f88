package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeSALE            = "SALE"             // venta (salida)
	MovementTypeSALERETURN      = "SALE_RETURN"      // devolución de venta (entrada)
	MovementTypePURCHASERECEIPT = "PURCHASE_RECEIPT" // recepción de compra (entrada)
	MovementTypePURCHASERETURN  = "PURCHASE_RETURN"  // devolución a proveedor (salida)
)

// ValidMovementType indica si el tipo pertenece al conjunto permitido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeSALE, MovementTypeSALERETURN, MovementTypePURCHASERECEIPT, MovementTypePURCHASERETURN:
		return true
	}
	return false
}

// StockMovement es una fila inmutable del libro de inventario (append-only).
// La tupla (RefType, RefID, MovementType, ItemID) es única: a lo sumo un
// movimiento por combinación documento-línea-operación (clave de idempotencia).
// El stock disponible de un (item, location) es siempre la suma de QtyDelta;
// nunca se materializa.
type StockMovement struct {
	ID           string
	ItemID       string
	LocationID   string
	RefType      string // "sales_invoice", "sales_return", "goods_receipt", "purchase_return"
	RefID        string
	MovementType string
	QtyDelta     decimal.Decimal // con signo, escala 3
	UnitCost     *decimal.Decimal
	Details      map[string]any
	CreatedAt    time.Time
}

package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeLowStock      = "LOW_STOCK"
	AlertTypeNegativeStock = "NEGATIVE_STOCK"
	AlertTypeDeadStock     = "DEAD_STOCK"
	AlertTypeSpikeSales    = "SPIKE_SALES"
	AlertTypeCostChange    = "COST_CHANGE"
	AlertTypeSupplierDelay = "SUPPLIER_DELAY"
)

// Severidades.
const (
	AlertSeverityInfo     = "INFO"
	AlertSeverityWarning  = "WARNING"
	AlertSeverityCritical = "CRITICAL"
)

// Estados del ciclo de vida: OPEN → ACK → DONE, o OPEN → DONE directo.
const (
	AlertStatusOpen = "OPEN"
	AlertStatusAck  = "ACK"
	AlertStatusDone = "DONE"
)

// Alert es una alerta operativa creada por los detectores (evaluador de reorden
// u otros). Solo muta por las transiciones ack/resolve; nunca se borra.
type Alert struct {
	ID         string
	Type       string
	Severity   string
	LocationID *string
	ItemID     *string
	Message    string
	Context    map[string]any
	Status     string
	AckBy      *string
	AckAt      *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

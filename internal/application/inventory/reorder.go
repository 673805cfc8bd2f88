package inventory

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// EventSink encola un evento para entrega por webhook.
// Lo implementa *webhooks.Dispatcher.
type EventSink interface {
	Enqueue(ctx context.Context, eventType string, payload map[string]any) error
}

// AlertSink crea una alerta operativa. Lo implementa *alerts.UseCase.
type AlertSink interface {
	Emit(ctx context.Context, a alertInput) error
}

// alertInput datos mínimos para crear una alerta desde el evaluador.
type alertInput struct {
	Type       string
	Severity   string
	Message    string
	Context    map[string]any
	ItemID     *string
	LocationID *string
}

// AlertEmitter adapta una función de emisión de alertas al puerto AlertSink.
type AlertEmitter func(ctx context.Context, typ, severity, message string, context map[string]any, itemID, locationID *string) error

// Emit implementa AlertSink.
func (f AlertEmitter) Emit(ctx context.Context, a alertInput) error {
	return f(ctx, a.Type, a.Severity, a.Message, a.Context, a.ItemID, a.LocationID)
}

// ReorderEvaluator reacciona a cada movimiento del libro: recalcula el stock
// disponible y, contra las reglas activas del (item, location), emite eventos
// y alertas de reorden.
type ReorderEvaluator struct {
	movRepo  repository.StockMovementRepository
	ruleRepo repository.ReorderRuleRepository
	events   EventSink
	alerts   AlertSink
	log      zerolog.Logger
}

// NewReorderEvaluator construye el evaluador.
func NewReorderEvaluator(
	movRepo repository.StockMovementRepository,
	ruleRepo repository.ReorderRuleRepository,
	events EventSink,
	alerts AlertSink,
	log zerolog.Logger,
) *ReorderEvaluator {
	return &ReorderEvaluator{
		movRepo:  movRepo,
		ruleRepo: ruleRepo,
		events:   events,
		alerts:   alerts,
		log:      log.With().Str("component", "reorder_evaluator").Logger(),
	}
}

// Available devuelve el stock disponible: SUM(qty_delta) del (item, location).
func (uc *ReorderEvaluator) Available(ctx context.Context, itemID, locationID string) (decimal.Decimal, error) {
	return uc.movRepo.SumQtyDelta(ctx, itemID, locationID)
}

// Evaluate recalcula el disponible y aplica cada regla activa del par.
// Puramente reactivo: no retorna nada. Cada emisión (evento o alerta) se
// protege por separado; el fallo de una no bloquea las demás, solo se registra.
//
// Por regla puede emitir de 0 a 3 eventos:
//   - available <= min_level  → inventory.low_stock + alerta LOW_STOCK/WARNING
//   - available < 0           → inventory.negative_stock + alerta NEGATIVE_STOCK/CRITICAL
//     (ambas condiciones pueden dispararse a la vez, no son excluyentes)
//   - max(0, max_level-available) > 0 → purchase.suggested, sin alerta
func (uc *ReorderEvaluator) Evaluate(ctx context.Context, itemID, locationID string) {
	available, err := uc.movRepo.SumQtyDelta(ctx, itemID, locationID)
	if err != nil {
		uc.log.Error().Err(err).Str("item_id", itemID).Str("location_id", locationID).
			Msg("no se pudo calcular el disponible")
		return
	}

	rules, err := uc.ruleRepo.ListActiveByItemLocation(ctx, itemID, locationID)
	if err != nil {
		uc.log.Error().Err(err).Str("item_id", itemID).Str("location_id", locationID).
			Msg("no se pudieron leer las reglas de reorden")
		return
	}

	for _, rule := range rules {
		if available.LessThanOrEqual(rule.MinLevel) {
			uc.emitEvent(ctx, entity.EventLowStock, map[string]any{
				"item_id":     itemID,
				"location_id": locationID,
				"available":   available.String(),
				"min_level":   rule.MinLevel.String(),
			})
			uc.emitAlert(ctx, alertInput{
				Type:     entity.AlertTypeLowStock,
				Severity: entity.AlertSeverityWarning,
				Message:  "Low stock detected",
				Context: map[string]any{
					"available":   available.String(),
					"min_level":   rule.MinLevel.String(),
					"item_id":     itemID,
					"location_id": locationID,
				},
				ItemID:     &itemID,
				LocationID: &locationID,
			})
		}

		if available.IsNegative() {
			uc.emitEvent(ctx, entity.EventNegativeStock, map[string]any{
				"item_id":     itemID,
				"location_id": locationID,
				"available":   available.String(),
			})
			uc.emitAlert(ctx, alertInput{
				Type:     entity.AlertTypeNegativeStock,
				Severity: entity.AlertSeverityCritical,
				Message:  "Negative stock detected",
				Context: map[string]any{
					"available":   available.String(),
					"item_id":     itemID,
					"location_id": locationID,
				},
				ItemID:     &itemID,
				LocationID: &locationID,
			})
		}

		suggested := rule.MaxLevel.Sub(available)
		if suggested.IsPositive() {
			qty := suggested
			if rule.ReorderQty != nil && rule.ReorderQty.GreaterThan(qty) {
				qty = *rule.ReorderQty
			}
			payload := map[string]any{
				"item_id":       itemID,
				"location_id":   locationID,
				"suggested_qty": qty.String(),
			}
			if rule.PreferredSupplierID != nil {
				payload["preferred_supplier_id"] = *rule.PreferredSupplierID
			} else {
				payload["preferred_supplier_id"] = nil
			}
			uc.emitEvent(ctx, entity.EventPurchaseSuggested, payload)
		}
	}
}

func (uc *ReorderEvaluator) emitEvent(ctx context.Context, eventType string, payload map[string]any) {
	if err := uc.events.Enqueue(ctx, eventType, payload); err != nil {
		uc.log.Error().Err(err).Str("event_type", eventType).Msg("no se pudo encolar el evento")
	}
}

func (uc *ReorderEvaluator) emitAlert(ctx context.Context, a alertInput) {
	if err := uc.alerts.Emit(ctx, a); err != nil {
		uc.log.Error().Err(err).Str("alert_type", a.Type).Msg("no se pudo crear la alerta")
	}
}

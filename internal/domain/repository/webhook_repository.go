package repository

import (
	"context"
	"time"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// WebhookEndpointRepository define el puerto de persistencia para endpoints de webhook.
type WebhookEndpointRepository interface {
	Create(ctx context.Context, ep *entity.WebhookEndpoint) error
	GetByID(ctx context.Context, id string) (*entity.WebhookEndpoint, error)
	List(ctx context.Context) ([]*entity.WebhookEndpoint, error)

	// ListActiveByEvent devuelve los endpoints activos suscritos al tipo de evento.
	ListActiveByEvent(ctx context.Context, eventType string) ([]*entity.WebhookEndpoint, error)

	Update(ctx context.Context, ep *entity.WebhookEndpoint) error
	// Delete borra el endpoint; sus entregas caen en cascada (FK ON DELETE CASCADE).
	Delete(ctx context.Context, id string) error
}

// DueDelivery es una entrega pendiente junto con su endpoint activo (join).
type DueDelivery struct {
	Delivery *entity.WebhookDelivery
	Endpoint *entity.WebhookEndpoint
}

// WebhookDeliveryRepository define el puerto de persistencia para entregas.
type WebhookDeliveryRepository interface {
	Create(ctx context.Context, d *entity.WebhookDelivery) error

	// ListDue devuelve hasta limit entregas PENDING de endpoints activos cuyo
	// next_retry_at es nulo o <= now. Sin orden garantizado más allá de "vencidas".
	ListDue(ctx context.Context, limit int, now time.Time) ([]DueDelivery, error)

	MarkSuccess(ctx context.Context, id string) error

	// MarkRetry registra un intento fallido: attempts, next_retry_at y last_error;
	// el status permanece PENDING (reintento indefinido).
	MarkRetry(ctx context.Context, id string, attempts int, nextRetryAt time.Time, lastError string) error
}

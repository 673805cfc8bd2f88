package webhooks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// Backoff exponencial con tope: min(60, 2^attempts) segundos.
const maxBackoffSeconds = 60

// Dispatcher implementa el outbox de webhooks: encola entregas por endpoint
// suscrito y las despacha con firma HMAC y reintento indefinido.
type Dispatcher struct {
	endpointRepo repository.WebhookEndpointRepository
	deliveryRepo repository.WebhookDeliveryRepository
	client       *http.Client
	now          func() time.Time
	log          zerolog.Logger
}

// NewDispatcher construye el dispatcher. timeout acota cada POST saliente
// (referencia: 10s); un timeout cuenta como fallo de entrega y se reintenta.
func NewDispatcher(
	endpointRepo repository.WebhookEndpointRepository,
	deliveryRepo repository.WebhookDeliveryRepository,
	timeout time.Duration,
	log zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		endpointRepo: endpointRepo,
		deliveryRepo: deliveryRepo,
		client:       &http.Client{Timeout: timeout},
		now:          func() time.Time { return time.Now().UTC() },
		log:          log.With().Str("component", "webhook_dispatcher").Logger(),
	}
}

// Signature calcula el HMAC-SHA256 hex del cuerpo con el secreto del endpoint.
// Expuesta para que los receptores puedan verificar la cabecera X-Signature.
func Signature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Enqueue crea una entrega PENDING por cada endpoint activo suscrito al tipo
// de evento. Fan-out N endpoints → N filas independientes, sin deduplicación.
func (d *Dispatcher) Enqueue(ctx context.Context, eventType string, payload map[string]any) error {
	endpoints, err := d.endpointRepo.ListActiveByEvent(ctx, eventType)
	if err != nil {
		return fmt.Errorf("listar endpoints suscritos: %w", err)
	}
	for _, ep := range endpoints {
		delivery := &entity.WebhookDelivery{
			ID:         uuid.New().String(),
			EndpointID: ep.ID,
			EventType:  eventType,
			Payload:    payload,
			Status:     entity.WebhookDeliveryPending,
			Attempts:   0,
			CreatedAt:  d.now(),
		}
		if err := d.deliveryRepo.Create(ctx, delivery); err != nil {
			return fmt.Errorf("encolar entrega para endpoint %s: %w", ep.ID, err)
		}
	}
	return nil
}

// DeliverPending toma hasta limit entregas vencidas (PENDING, endpoint activo,
// next_retry_at nulo o <= now) y las envía una a una. El fallo de un endpoint
// nunca bloquea al resto del lote: se agenda su reintento y se continúa.
//
// Política deliberada de at-least-once: no hay tope de intentos; una entrega
// fallida queda PENDING con backoff min(60, 2^attempts) segundos para siempre.
func (d *Dispatcher) DeliverPending(ctx context.Context, limit int) error {
	now := d.now()
	due, err := d.deliveryRepo.ListDue(ctx, limit, now)
	if err != nil {
		return fmt.Errorf("listar entregas vencidas: %w", err)
	}

	for _, item := range due {
		delivery, endpoint := item.Delivery, item.Endpoint
		if err := d.send(ctx, delivery, endpoint); err != nil {
			attempts := delivery.Attempts + 1
			delay := backoff(attempts)
			retryAt := now.Add(delay)
			if markErr := d.deliveryRepo.MarkRetry(ctx, delivery.ID, attempts, retryAt, err.Error()); markErr != nil {
				d.log.Error().Err(markErr).Str("delivery_id", delivery.ID).Msg("no se pudo agendar el reintento")
			}
			d.log.Warn().Err(err).
				Str("delivery_id", delivery.ID).
				Str("endpoint", endpoint.URL).
				Int("attempts", attempts).
				Dur("retry_in", delay).
				Msg("entrega de webhook fallida")
			continue
		}
		if err := d.deliveryRepo.MarkSuccess(ctx, delivery.ID); err != nil {
			d.log.Error().Err(err).Str("delivery_id", delivery.ID).Msg("no se pudo marcar la entrega como exitosa")
			continue
		}
		d.log.Debug().
			Str("delivery_id", delivery.ID).
			Str("event_type", delivery.EventType).
			Str("endpoint", endpoint.URL).
			Msg("webhook entregado")
	}
	return nil
}

// send serializa el payload, firma el cuerpo y hace el POST.
// Cualquier error de red o status >= 300 se reporta como fallo.
func (d *Dispatcher) send(ctx context.Context, delivery *entity.WebhookDelivery, endpoint *entity.WebhookEndpoint) error {
	body, err := json.Marshal(delivery.Payload)
	if err != nil {
		return fmt.Errorf("serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("construir request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", delivery.EventType)
	req.Header.Set("X-Signature", Signature(endpoint.Secret, body))

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func backoff(attempts int) time.Duration {
	secs := 1 << attempts // 2^attempts
	if attempts >= 6 || secs > maxBackoffSeconds {
		secs = maxBackoffSeconds
	}
	return time.Duration(secs) * time.Second
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

var (
	_ repository.WebhookEndpointRepository = (*WebhookEndpointRepo)(nil)
	_ repository.WebhookDeliveryRepository = (*WebhookDeliveryRepo)(nil)
)

// WebhookEndpointRepo implementación de endpoints de webhook sobre PostgreSQL.
type WebhookEndpointRepo struct {
	q Querier
}

func NewWebhookEndpointRepository(q Querier) *WebhookEndpointRepo {
	return &WebhookEndpointRepo{q: q}
}

const endpointColumns = `id, name, url, secret, events, active, created_at, updated_at`

func (r *WebhookEndpointRepo) Create(ctx context.Context, ep *entity.WebhookEndpoint) error {
	query := `
		INSERT INTO webhook_endpoints (` + endpointColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		ep.ID, ep.Name, ep.URL, ep.Secret, ep.Events, ep.Active, ep.CreatedAt, ep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook endpoint: %w", err)
	}
	return nil
}

func (r *WebhookEndpointRepo) GetByID(ctx context.Context, id string) (*entity.WebhookEndpoint, error) {
	query := `SELECT ` + endpointColumns + ` FROM webhook_endpoints WHERE id = $1`
	ep, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get webhook endpoint: %w", err)
	}
	return ep, nil
}

func (r *WebhookEndpointRepo) List(ctx context.Context) ([]*entity.WebhookEndpoint, error) {
	query := `SELECT ` + endpointColumns + ` FROM webhook_endpoints ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *WebhookEndpointRepo) ListActiveByEvent(ctx context.Context, eventType string) ([]*entity.WebhookEndpoint, error) {
	// events es JSONB; el operador ? comprueba pertenencia de la clave.
	query := `
		SELECT ` + endpointColumns + `
		FROM webhook_endpoints
		WHERE active AND events ? $1`
	return r.queryMany(ctx, query, eventType)
}

func (r *WebhookEndpointRepo) Update(ctx context.Context, ep *entity.WebhookEndpoint) error {
	query := `
		UPDATE webhook_endpoints
		SET name = $2, url = $3, secret = $4, events = $5, active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, ep.ID, ep.Name, ep.URL, ep.Secret, ep.Events, ep.Active, ep.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update webhook endpoint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WebhookEndpointRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM webhook_endpoints WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete webhook endpoint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WebhookEndpointRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.WebhookEndpoint, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list webhook endpoints: %w", err)
	}
	defer rows.Close()

	var list []*entity.WebhookEndpoint
	for rows.Next() {
		ep, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webhook endpoint: %w", err)
		}
		list = append(list, ep)
	}
	return list, rows.Err()
}

func (r *WebhookEndpointRepo) scanOne(row pgx.Row) (*entity.WebhookEndpoint, error) {
	var ep entity.WebhookEndpoint
	if err := row.Scan(&ep.ID, &ep.Name, &ep.URL, &ep.Secret, &ep.Events, &ep.Active,
		&ep.CreatedAt, &ep.UpdatedAt); err != nil {
		return nil, err
	}
	return &ep, nil
}

// ─────────────────────────────────────────────────────────────────────────────

// WebhookDeliveryRepo implementación de entregas de webhook sobre PostgreSQL.
type WebhookDeliveryRepo struct {
	q Querier
}

func NewWebhookDeliveryRepository(q Querier) *WebhookDeliveryRepo {
	return &WebhookDeliveryRepo{q: q}
}

func (r *WebhookDeliveryRepo) Create(ctx context.Context, d *entity.WebhookDelivery) error {
	query := `
		INSERT INTO webhook_deliveries
			(id, endpoint_id, event_type, payload, status, attempts, next_retry_at, last_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.EndpointID, d.EventType, d.Payload, d.Status, d.Attempts,
		d.NextRetryAt, d.LastError, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook delivery: %w", err)
	}
	return nil
}

// ListDue devuelve entregas PENDING vencidas junto a su endpoint activo.
// El join filtra entregas huérfanas de endpoints desactivados después de encolar.
func (r *WebhookDeliveryRepo) ListDue(ctx context.Context, limit int, now time.Time) ([]repository.DueDelivery, error) {
	query := `
		SELECT d.id, d.endpoint_id, d.event_type, d.payload, d.status, d.attempts,
		       d.next_retry_at, d.last_error, d.created_at,
		       e.id, e.name, e.url, e.secret, e.events, e.active, e.created_at, e.updated_at
		FROM webhook_deliveries d
		JOIN webhook_endpoints e ON e.id = d.endpoint_id AND e.active
		WHERE d.status = $1 AND (d.next_retry_at IS NULL OR d.next_retry_at <= $2)
		ORDER BY d.created_at ASC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, entity.WebhookDeliveryPending, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due deliveries: %w", err)
	}
	defer rows.Close()

	var list []repository.DueDelivery
	for rows.Next() {
		var d entity.WebhookDelivery
		var ep entity.WebhookEndpoint
		if err := rows.Scan(&d.ID, &d.EndpointID, &d.EventType, &d.Payload, &d.Status, &d.Attempts,
			&d.NextRetryAt, &d.LastError, &d.CreatedAt,
			&ep.ID, &ep.Name, &ep.URL, &ep.Secret, &ep.Events, &ep.Active, &ep.CreatedAt, &ep.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan due delivery: %w", err)
		}
		list = append(list, repository.DueDelivery{Delivery: &d, Endpoint: &ep})
	}
	return list, rows.Err()
}

func (r *WebhookDeliveryRepo) MarkSuccess(ctx context.Context, id string) error {
	query := `
		UPDATE webhook_deliveries
		SET status = $2, last_error = NULL
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, entity.WebhookDeliverySuccess); err != nil {
		return fmt.Errorf("mark delivery success: %w", err)
	}
	return nil
}

func (r *WebhookDeliveryRepo) MarkRetry(ctx context.Context, id string, attempts int, nextRetryAt time.Time, lastError string) error {
	query := `
		UPDATE webhook_deliveries
		SET attempts = $2, next_retry_at = $3, last_error = $4
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, attempts, nextRetryAt, lastError); err != nil {
		return fmt.Errorf("mark delivery retry: %w", err)
	}
	return nil
}

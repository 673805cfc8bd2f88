package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeEndpointRepo struct {
	endpoints []*entity.WebhookEndpoint
}

var _ repository.WebhookEndpointRepository = (*fakeEndpointRepo)(nil)

func (f *fakeEndpointRepo) Create(_ context.Context, ep *entity.WebhookEndpoint) error {
	f.endpoints = append(f.endpoints, ep)
	return nil
}
func (f *fakeEndpointRepo) GetByID(_ context.Context, id string) (*entity.WebhookEndpoint, error) {
	for _, ep := range f.endpoints {
		if ep.ID == id {
			return ep, nil
		}
	}
	return nil, nil
}
func (f *fakeEndpointRepo) List(_ context.Context) ([]*entity.WebhookEndpoint, error) {
	return f.endpoints, nil
}
func (f *fakeEndpointRepo) Update(_ context.Context, _ *entity.WebhookEndpoint) error { return nil }
func (f *fakeEndpointRepo) Delete(_ context.Context, _ string) error                  { return nil }

func (f *fakeEndpointRepo) ListActiveByEvent(_ context.Context, eventType string) ([]*entity.WebhookEndpoint, error) {
	var out []*entity.WebhookEndpoint
	for _, ep := range f.endpoints {
		if ep.Active && ep.Subscribed(eventType) {
			out = append(out, ep)
		}
	}
	return out, nil
}

// retryMark registra una llamada a MarkRetry.
type retryMark struct {
	Attempts    int
	NextRetryAt time.Time
	LastError   string
}

type fakeDeliveryRepo struct {
	mu        sync.Mutex
	byID      map[string]*entity.WebhookDelivery
	endpoints *fakeEndpointRepo
	successes []string
	retries   map[string][]retryMark
	listCalls int
}

var _ repository.WebhookDeliveryRepository = (*fakeDeliveryRepo)(nil)

func newFakeDeliveryRepo(endpoints *fakeEndpointRepo) *fakeDeliveryRepo {
	return &fakeDeliveryRepo{
		byID:      map[string]*entity.WebhookDelivery{},
		endpoints: endpoints,
		retries:   map[string][]retryMark{},
	}
}

func (f *fakeDeliveryRepo) Create(_ context.Context, d *entity.WebhookDelivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[d.ID] = d
	return nil
}

func (f *fakeDeliveryRepo) ListDue(ctx context.Context, limit int, now time.Time) ([]repository.DueDelivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []repository.DueDelivery
	for _, d := range f.byID {
		if d.Status != entity.WebhookDeliveryPending {
			continue
		}
		if d.NextRetryAt != nil && d.NextRetryAt.After(now) {
			continue
		}
		ep, _ := f.endpoints.GetByID(ctx, d.EndpointID)
		if ep == nil || !ep.Active {
			continue
		}
		out = append(out, repository.DueDelivery{Delivery: d, Endpoint: ep})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeDeliveryRepo) MarkSuccess(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[id].Status = entity.WebhookDeliverySuccess
	f.successes = append(f.successes, id)
	return nil
}

func (f *fakeDeliveryRepo) MarkRetry(_ context.Context, id string, attempts int, nextRetryAt time.Time, lastError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.byID[id]
	d.Attempts = attempts
	d.NextRetryAt = &nextRetryAt
	d.LastError = &lastError
	f.retries[id] = append(f.retries[id], retryMark{Attempts: attempts, NextRetryAt: nextRetryAt, LastError: lastError})
	return nil
}

func endpoint(id, url, secret string, active bool, events ...string) *entity.WebhookEndpoint {
	return &entity.WebhookEndpoint{ID: id, Name: id, URL: url, Secret: secret, Events: events, Active: active}
}

func newTestDispatcher(epRepo *fakeEndpointRepo, dRepo *fakeDeliveryRepo, now time.Time) *Dispatcher {
	d := NewDispatcher(epRepo, dRepo, 2*time.Second, zerolog.Nop())
	d.now = func() time.Time { return now }
	return d
}

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Enqueue
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: fan-out solo a endpoints activos y suscritos al tipo de evento.
func TestEnqueue_FanOutSoloSuscritosActivos(t *testing.T) {
	epRepo := &fakeEndpointRepo{endpoints: []*entity.WebhookEndpoint{
		endpoint("ep-1", "http://a.test", "s1", true, entity.EventLowStock),
		endpoint("ep-2", "http://b.test", "s2", true, entity.EventPurchaseSuggested),
		endpoint("ep-3", "http://c.test", "s3", false, entity.EventLowStock),
	}}
	dRepo := newFakeDeliveryRepo(epRepo)
	d := newTestDispatcher(epRepo, dRepo, fixedNow)

	err := d.Enqueue(context.Background(), entity.EventLowStock, map[string]any{"item_id": "item-1"})
	require.NoError(t, err)

	require.Len(t, dRepo.byID, 1, "solo el endpoint activo y suscrito recibe entrega")
	for _, del := range dRepo.byID {
		assert.Equal(t, "ep-1", del.EndpointID)
		assert.Equal(t, entity.EventLowStock, del.EventType)
		assert.Equal(t, entity.WebhookDeliveryPending, del.Status)
		assert.Zero(t, del.Attempts)
		assert.Nil(t, del.NextRetryAt)
		assert.Equal(t, fixedNow, del.CreatedAt)
	}
}

// Caso 1b: dos endpoints suscritos → dos filas independientes.
func TestEnqueue_DosEndpointsDosEntregas(t *testing.T) {
	epRepo := &fakeEndpointRepo{endpoints: []*entity.WebhookEndpoint{
		endpoint("ep-1", "http://a.test", "s1", true, entity.EventLowStock),
		endpoint("ep-2", "http://b.test", "s2", true, entity.EventLowStock, entity.EventNegativeStock),
	}}
	dRepo := newFakeDeliveryRepo(epRepo)
	d := newTestDispatcher(epRepo, dRepo, fixedNow)

	require.NoError(t, d.Enqueue(context.Background(), entity.EventLowStock, map[string]any{}))
	assert.Len(t, dRepo.byID, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests DeliverPending
// ──────────────────────────────────────────────────────────────────────────────

// Caso 2: entrega exitosa — POST firmado con las cabeceras del contrato y
// transición a SUCCESS.
func TestDeliverPending_ExitoFirmaYMarcaSuccess(t *testing.T) {
	var gotBody []byte
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	epRepo := &fakeEndpointRepo{endpoints: []*entity.WebhookEndpoint{
		endpoint("ep-1", srv.URL, "super-secret", true, entity.EventLowStock),
	}}
	dRepo := newFakeDeliveryRepo(epRepo)
	d := newTestDispatcher(epRepo, dRepo, fixedNow)

	require.NoError(t, d.Enqueue(context.Background(), entity.EventLowStock, map[string]any{"available": "2"}))
	require.NoError(t, d.DeliverPending(context.Background(), 10))

	require.Len(t, dRepo.successes, 1)
	assert.Empty(t, dRepo.retries)

	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, entity.EventLowStock, gotHeaders.Get("X-Event-Type"))

	// El receptor verifica la firma recalculando el HMAC del cuerpo recibido.
	mac := hmac.New(sha256.New, []byte("super-secret"))
	mac.Write(gotBody)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotHeaders.Get("X-Signature"))
	assert.JSONEq(t, `{"available":"2"}`, string(gotBody))
}

// Caso 3: status >= 300 cuenta como fallo — attempts sube, se agenda el
// backoff y el status sigue PENDING (reintento indefinido, nunca FAILED).
func TestDeliverPending_FalloAgendaReintento(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	epRepo := &fakeEndpointRepo{endpoints: []*entity.WebhookEndpoint{
		endpoint("ep-1", srv.URL, "s1", true, entity.EventLowStock),
	}}
	dRepo := newFakeDeliveryRepo(epRepo)
	d := newTestDispatcher(epRepo, dRepo, fixedNow)

	require.NoError(t, d.Enqueue(context.Background(), entity.EventLowStock, map[string]any{}))
	require.NoError(t, d.DeliverPending(context.Background(), 10))

	require.Len(t, dRepo.retries, 1)
	for id, marks := range dRepo.retries {
		require.Len(t, marks, 1)
		assert.Equal(t, 1, marks[0].Attempts)
		assert.Equal(t, fixedNow.Add(2*time.Second), marks[0].NextRetryAt, "primer reintento: 2^1 segundos")
		assert.Contains(t, marks[0].LastError, "status 500")
		assert.Equal(t, entity.WebhookDeliveryPending, dRepo.byID[id].Status)
	}
	assert.Empty(t, dRepo.successes)
}

// Caso 3b: una entrega con next_retry_at en el futuro no está vencida.
func TestDeliverPending_RespetaNextRetryAt(t *testing.T) {
	epRepo := &fakeEndpointRepo{endpoints: []*entity.WebhookEndpoint{
		endpoint("ep-1", "http://unreachable.test", "s1", true, entity.EventLowStock),
	}}
	dRepo := newFakeDeliveryRepo(epRepo)
	d := newTestDispatcher(epRepo, dRepo, fixedNow)

	future := fixedNow.Add(30 * time.Second)
	require.NoError(t, dRepo.Create(context.Background(), &entity.WebhookDelivery{
		ID: "del-1", EndpointID: "ep-1", EventType: entity.EventLowStock,
		Payload: map[string]any{}, Status: entity.WebhookDeliveryPending,
		Attempts: 2, NextRetryAt: &future, CreatedAt: fixedNow,
	}))

	require.NoError(t, d.DeliverPending(context.Background(), 10))
	assert.Empty(t, dRepo.successes)
	assert.Empty(t, dRepo.retries, "la entrega aún no vencida no debe intentarse")
}

// Caso 3c: desactivar el endpoint después de encolar congela sus entregas:
// el loop las salta por completo — ni POST, ni SUCCESS, ni reintento — y
// quedan PENDING indefinidamente.
func TestDeliverPending_EndpointDesactivadoCongelaEntregas(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ep := endpoint("ep-1", srv.URL, "s1", true, entity.EventLowStock)
	epRepo := &fakeEndpointRepo{endpoints: []*entity.WebhookEndpoint{ep}}
	dRepo := newFakeDeliveryRepo(epRepo)
	d := newTestDispatcher(epRepo, dRepo, fixedNow)

	require.NoError(t, d.Enqueue(context.Background(), entity.EventLowStock, map[string]any{}))
	require.Len(t, dRepo.byID, 1)

	// El admin desactiva el endpoint con la entrega aún en cola.
	ep.Active = false

	require.NoError(t, d.DeliverPending(context.Background(), 10))

	assert.Zero(t, hits, "no debe salir ningún POST hacia un endpoint inactivo")
	assert.Empty(t, dRepo.successes)
	assert.Empty(t, dRepo.retries)
	for _, del := range dRepo.byID {
		assert.Equal(t, entity.WebhookDeliveryPending, del.Status)
		assert.Zero(t, del.Attempts)
		assert.Nil(t, del.NextRetryAt)
	}

	// Reactivarlo libera la entrega tal cual quedó.
	ep.Active = true
	require.NoError(t, d.DeliverPending(context.Background(), 10))
	assert.Equal(t, 1, hits)
	assert.Len(t, dRepo.successes, 1)
}

// Caso 4: el fallo de un endpoint no bloquea al resto del lote.
func TestDeliverPending_FalloNoBloqueaLote(t *testing.T) {
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer okSrv.Close()
	badSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer badSrv.Close()

	epRepo := &fakeEndpointRepo{endpoints: []*entity.WebhookEndpoint{
		endpoint("ep-bad", badSrv.URL, "s1", true, entity.EventLowStock),
		endpoint("ep-ok", okSrv.URL, "s2", true, entity.EventLowStock),
	}}
	dRepo := newFakeDeliveryRepo(epRepo)
	d := newTestDispatcher(epRepo, dRepo, fixedNow)

	require.NoError(t, d.Enqueue(context.Background(), entity.EventLowStock, map[string]any{}))
	require.NoError(t, d.DeliverPending(context.Background(), 10))

	assert.Len(t, dRepo.successes, 1, "la entrega al endpoint sano debe completarse")
	assert.Len(t, dRepo.retries, 1, "la entrega al endpoint caído se reagenda")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests backoff
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: backoff exponencial 2^attempts con tope en 60 segundos.
func TestBackoff_ExponencialConTope(t *testing.T) {
	cases := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{3, 8 * time.Second},
		{5, 32 * time.Second},
		{6, 60 * time.Second},
		{10, 60 * time.Second},
		{40, 60 * time.Second},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, backoff(tc.attempts), "attempts=%d", tc.attempts)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Worker
// ──────────────────────────────────────────────────────────────────────────────

// Caso 6: el worker procesa lotes a cadencia fija y se detiene limpio con Stop.
func TestWorker_StartStop(t *testing.T) {
	epRepo := &fakeEndpointRepo{}
	dRepo := newFakeDeliveryRepo(epRepo)
	d := newTestDispatcher(epRepo, dRepo, fixedNow)
	w := NewWorker(d, 5*time.Millisecond, 10, zerolog.Nop())

	w.Start(context.Background())
	time.Sleep(40 * time.Millisecond)
	w.Stop()

	dRepo.mu.Lock()
	calls := dRepo.listCalls
	dRepo.mu.Unlock()
	assert.Greater(t, calls, 0, "el worker debe haber consultado entregas vencidas")
}

// Caso 6b: los defaults del worker aplican cuando no se configuran.
func TestWorker_Defaults(t *testing.T) {
	epRepo := &fakeEndpointRepo{}
	dRepo := newFakeDeliveryRepo(epRepo)
	d := newTestDispatcher(epRepo, dRepo, fixedNow)

	w := NewWorker(d, 0, 0, zerolog.Nop())
	assert.Equal(t, 15*time.Second, w.interval)
	assert.Equal(t, 20, w.batchLimit)
}

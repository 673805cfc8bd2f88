package entity

import "time"

// Eventos producidos por el núcleo de inventario.
const (
	EventLowStock          = "inventory.low_stock"
	EventNegativeStock     = "inventory.negative_stock"
	EventPurchaseSuggested = "purchase.suggested"
)

// Estados de una entrega de webhook.
const (
	WebhookDeliveryPending = "PENDING"
	WebhookDeliverySuccess = "SUCCESS"
	WebhookDeliveryFailed  = "FAILED"
)

// WebhookEndpoint es un receptor externo administrado por el admin.
// Events es el conjunto de tipos de evento suscritos.
type WebhookEndpoint struct {
	ID        string
	Name      string
	URL       string
	Secret    string
	Events    []string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subscribed indica si el endpoint está suscrito al tipo de evento.
func (e *WebhookEndpoint) Subscribed(eventType string) bool {
	for _, ev := range e.Events {
		if ev == eventType {
			return true
		}
	}
	return false
}

// WebhookDelivery es una notificación encolada hacia un endpoint.
// La crea el enqueue; solo el loop de entrega la muta. Pertenece a exactamente
// un endpoint (borrar el endpoint borra sus entregas en cascada).
type WebhookDelivery struct {
	ID          string
	EndpointID  string
	EventType   string
	Payload     map[string]any
	Status      string
	Attempts    int
	NextRetryAt *time.Time
	LastError   *string
	CreatedAt   time.Time
}

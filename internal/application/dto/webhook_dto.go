package dto

import (
	"time"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// WebhookEndpointRequest entrada para crear o actualizar un endpoint.
type WebhookEndpointRequest struct {
	Name   string   `json:"name"`
	URL    string   `json:"url"`
	Secret string   `json:"secret"`
	Events []string `json:"events"`
	Active *bool    `json:"active,omitempty"`
}

// WebhookEndpointResponse un endpoint registrado. El secreto nunca se expone.
type WebhookEndpointResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWebhookEndpointResponse convierte la entidad al DTO (omite el secreto).
func ToWebhookEndpointResponse(e *entity.WebhookEndpoint) WebhookEndpointResponse {
	return WebhookEndpointResponse{
		ID:        e.ID,
		Name:      e.Name,
		URL:       e.URL,
		Events:    e.Events,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

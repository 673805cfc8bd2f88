package dto

import (
	"time"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// AlertResponse una alerta operativa.
type AlertResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Severity  string         `json:"severity"`
	ItemID    *string        `json:"item_id,omitempty"`
	LocationID *string       `json:"location_id,omitempty"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	Status    string         `json:"status"`
	AckBy     *string        `json:"ack_by,omitempty"`
	AckAt     *time.Time     `json:"ack_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ToAlertResponse convierte la entidad al DTO de respuesta.
func ToAlertResponse(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		Type:       a.Type,
		Severity:   a.Severity,
		ItemID:     a.ItemID,
		LocationID: a.LocationID,
		Message:    a.Message,
		Context:    a.Context,
		Status:     a.Status,
		AckBy:      a.AckBy,
		AckAt:      a.AckAt,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// UseCase administra el ciclo de vida de las alertas: OPEN → ACK → DONE,
// o OPEN → DONE directo (resolver sin ack previo).
type UseCase struct {
	repo repository.AlertRepository
}

// NewUseCase construye el administrador de alertas.
func NewUseCase(repo repository.AlertRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Emit crea una alerta en estado OPEN. Implementa la firma inventory.AlertEmitter.
func (uc *UseCase) Emit(ctx context.Context, typ, severity, message string, contextData map[string]any, itemID, locationID *string) error {
	alert := &entity.Alert{
		ID:         uuid.New().String(),
		Type:       typ,
		Severity:   severity,
		ItemID:     itemID,
		LocationID: locationID,
		Message:    message,
		Context:    contextData,
		Status:     entity.AlertStatusOpen,
		CreatedAt:  time.Now().UTC(),
	}
	if alert.Context == nil {
		alert.Context = map[string]any{}
	}
	return uc.repo.Create(ctx, alert)
}

// Ack marca la alerta como reconocida, estampando quién y cuándo.
// Re-ackear una alerta ya ACK simplemente re-estampa (last-writer-wins).
func (uc *UseCase) Ack(ctx context.Context, alertID, userID string) (*entity.Alert, error) {
	return uc.transition(ctx, alertID, userID, entity.AlertStatusAck)
}

// Resolve marca la alerta como resuelta (DONE), con o sin ack previo.
func (uc *UseCase) Resolve(ctx context.Context, alertID, userID string) (*entity.Alert, error) {
	return uc.transition(ctx, alertID, userID, entity.AlertStatusDone)
}

func (uc *UseCase) transition(ctx context.Context, alertID, userID, status string) (*entity.Alert, error) {
	alert, err := uc.repo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	alert.Status = status
	alert.AckAt = &now
	if userID != "" {
		alert.AckBy = &userID
	} else {
		alert.AckBy = nil
	}
	if err := uc.repo.UpdateStatus(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// List devuelve alertas con filtros opcionales y el total sin paginar.
func (uc *UseCase) List(ctx context.Context, f repository.AlertFilter) ([]*entity.Alert, int, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.repo.List(ctx, f)
}

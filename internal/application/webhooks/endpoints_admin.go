package webhooks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// EndpointAdminUseCase administración de endpoints de webhook (manager/admin).
type EndpointAdminUseCase struct {
	endpointRepo repository.WebhookEndpointRepository
}

// NewEndpointAdminUseCase construye el caso de uso.
func NewEndpointAdminUseCase(endpointRepo repository.WebhookEndpointRepository) *EndpointAdminUseCase {
	return &EndpointAdminUseCase{endpointRepo: endpointRepo}
}

// EndpointInput datos de un endpoint (alta o reemplazo completo).
type EndpointInput struct {
	Name   string
	URL    string
	Secret string
	Events []string
	Active bool
}

func (in EndpointInput) validate() error {
	if in.Name == "" || in.URL == "" || in.Secret == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create da de alta un endpoint; el nombre es único.
func (uc *EndpointAdminUseCase) Create(ctx context.Context, in EndpointInput) (*entity.WebhookEndpoint, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	ep := &entity.WebhookEndpoint{
		ID:        uuid.New().String(),
		Name:      in.Name,
		URL:       in.URL,
		Secret:    in.Secret,
		Events:    in.Events,
		Active:    in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ep.Events == nil {
		ep.Events = []string{}
	}
	if err := uc.endpointRepo.Create(ctx, ep); err != nil {
		return nil, err
	}
	return ep, nil
}

// List lista todos los endpoints.
func (uc *EndpointAdminUseCase) List(ctx context.Context) ([]*entity.WebhookEndpoint, error) {
	return uc.endpointRepo.List(ctx)
}

// Update reemplaza los campos del endpoint. Desactivarlo hace que el loop de
// entrega ignore sus entregas pendientes (quedan PENDING indefinidamente).
func (uc *EndpointAdminUseCase) Update(ctx context.Context, id string, in EndpointInput) (*entity.WebhookEndpoint, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	ep, err := uc.endpointRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ep == nil {
		return nil, domain.ErrNotFound
	}
	ep.Name = in.Name
	ep.URL = in.URL
	ep.Secret = in.Secret
	ep.Events = in.Events
	ep.Active = in.Active
	ep.UpdatedAt = time.Now().UTC()
	if ep.Events == nil {
		ep.Events = []string{}
	}
	if err := uc.endpointRepo.Update(ctx, ep); err != nil {
		return nil, err
	}
	return ep, nil
}

// Delete borra el endpoint; sus entregas caen en cascada.
func (uc *EndpointAdminUseCase) Delete(ctx context.Context, id string) error {
	ep, err := uc.endpointRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ep == nil {
		return domain.ErrNotFound
	}
	return uc.endpointRepo.Delete(ctx, id)
}

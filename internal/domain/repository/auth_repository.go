package repository

import (
	"context"
	"time"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// StaffUserRepository define el puerto de persistencia para usuarios internos.
type StaffUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.StaffUser, error)
	GetByID(ctx context.Context, id string) (*entity.StaffUser, error)
}

// APIKeyRepository define el puerto de persistencia para claves de integración.
type APIKeyRepository interface {
	Create(ctx context.Context, key *entity.APIKey) error
	GetActiveByHash(ctx context.Context, keyHash string) (*entity.APIKey, error)
	GetByID(ctx context.Context, id string) (*entity.APIKey, error)
	Deactivate(ctx context.Context, id string) error
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}

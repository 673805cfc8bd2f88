package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
	pkgjwt "github.com/SaeedBadree/TBSL-ERP/pkg/jwt"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación de usuarios internos y gestión de API keys de integración.
type UseCase struct {
	userRepo   repository.StaffUserRepository
	apiKeyRepo repository.APIKeyRepository
	jwtCfg     JWTConfig
	apiKeySalt string
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(
	userRepo repository.StaffUserRepository,
	apiKeyRepo repository.APIKeyRepository,
	jwtCfg JWTConfig,
	apiKeySalt string,
) *UseCase {
	return &UseCase{userRepo: userRepo, apiKeyRepo: apiKeyRepo, jwtCfg: jwtCfg, apiKeySalt: apiKeySalt}
}

// Login verifica credenciales con bcrypt y emite un JWT con el rol del usuario.
func (uc *UseCase) Login(ctx context.Context, email, password string) (token string, user *entity.StaffUser, err error) {
	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !u.IsActive {
		return "", nil, domain.ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrBadCredentials
	}
	token, err = pkgjwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, fmt.Errorf("emitir token: %w", err)
	}
	return token, u, nil
}

// GetUser carga un usuario activo por id (para /me).
func (uc *UseCase) GetUser(ctx context.Context, id string) (*entity.StaffUser, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// HashPassword genera el hash bcrypt de una contraseña (seed/registro).
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// hashAPIKey deriva el hash persistido: sha256("<salt>:<raw>") hex.
func (uc *UseCase) hashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(uc.apiKeySalt + ":" + raw))
	return hex.EncodeToString(sum[:])
}

// CreateAPIKey genera una clave de integración. La clave en claro se retorna
// una única vez; solo su hash queda persistido.
func (uc *UseCase) CreateAPIKey(ctx context.Context, name string, scopes []string) (raw string, key *entity.APIKey, err error) {
	if name == "" {
		return "", nil, domain.ErrInvalidInput
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("generar api key: %w", err)
	}
	raw = base64.RawURLEncoding.EncodeToString(buf)

	key = &entity.APIKey{
		ID:        uuid.New().String(),
		Name:      name,
		KeyHash:   uc.hashAPIKey(raw),
		Scopes:    scopes,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if key.Scopes == nil {
		key.Scopes = []string{}
	}
	if err := uc.apiKeyRepo.Create(ctx, key); err != nil {
		return "", nil, err
	}
	return raw, key, nil
}

// RevokeAPIKey desactiva la clave; no se borra para conservar auditoría.
func (uc *UseCase) RevokeAPIKey(ctx context.Context, id string) error {
	key, err := uc.apiKeyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if key == nil {
		return domain.ErrNotFound
	}
	return uc.apiKeyRepo.Deactivate(ctx, id)
}

// ValidateAPIKey resuelve la clave activa por hash, verifica los scopes
// requeridos y estampa last_used_at.
func (uc *UseCase) ValidateAPIKey(ctx context.Context, raw string, scopesRequired []string) (*entity.APIKey, error) {
	key, err := uc.apiKeyRepo.GetActiveByHash(ctx, uc.hashAPIKey(raw))
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, domain.ErrInvalidAPIKey
	}
	for _, s := range scopesRequired {
		if !key.HasScope(s) {
			return nil, domain.ErrMissingScope
		}
	}
	now := time.Now().UTC()
	if err := uc.apiKeyRepo.TouchLastUsed(ctx, key.ID, now); err != nil {
		return nil, err
	}
	key.LastUsedAt = &now
	return key, nil
}

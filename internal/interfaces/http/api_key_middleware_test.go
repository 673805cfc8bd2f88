package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaeedBadree/TBSL-ERP/internal/application/auth"
	apphttp "github.com/SaeedBadree/TBSL-ERP/internal/interfaces/http"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubUserRepo struct{}

var _ repository.StaffUserRepository = (*stubUserRepo)(nil)

func (stubUserRepo) GetByEmail(_ context.Context, _ string) (*entity.StaffUser, error) {
	return nil, nil
}
func (stubUserRepo) GetByID(_ context.Context, _ string) (*entity.StaffUser, error) {
	return nil, nil
}

type apiKeyRepoFake struct {
	byID map[string]*entity.APIKey
}

var _ repository.APIKeyRepository = (*apiKeyRepoFake)(nil)

func (f *apiKeyRepoFake) Create(_ context.Context, key *entity.APIKey) error {
	f.byID[key.ID] = key
	return nil
}
func (f *apiKeyRepoFake) GetActiveByHash(_ context.Context, keyHash string) (*entity.APIKey, error) {
	for _, k := range f.byID {
		if k.Active && k.KeyHash == keyHash {
			return k, nil
		}
	}
	return nil, nil
}
func (f *apiKeyRepoFake) GetByID(_ context.Context, id string) (*entity.APIKey, error) {
	return f.byID[id], nil
}
func (f *apiKeyRepoFake) Deactivate(_ context.Context, id string) error {
	f.byID[id].Active = false
	return nil
}
func (f *apiKeyRepoFake) TouchLastUsed(_ context.Context, id string, at time.Time) error {
	f.byID[id].LastUsedAt = &at
	return nil
}

// buildAPIKeyApp arma una ruta de integración protegida por X-API-Key y
// devuelve también una clave en claro con el scope orders:write.
func buildAPIKeyApp(t *testing.T) (*fiber.App, *auth.UseCase, string) {
	t.Helper()
	repo := &apiKeyRepoFake{byID: map[string]*entity.APIKey{}}
	uc := auth.NewUseCase(stubUserRepo{}, repo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, "test-salt")

	raw, _, err := uc.CreateAPIKey(context.Background(), "pos-principal", []string{"orders:write"})
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/integrations/orders",
		apphttp.APIKeyMiddleware(uc, "orders:write"),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
		},
	)
	return app, uc, raw
}

func doAPIKeyRequest(t *testing.T, app *fiber.App, key string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/integrations/orders", nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests APIKeyMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: clave válida con el scope requerido → pasa.
func TestAPIKey_ClaveValidaConScope(t *testing.T) {
	app, _, raw := buildAPIKeyApp(t)
	resp := doAPIKeyRequest(t, app, raw)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

// Caso 2: sin header X-API-Key → HTTP 401 MISSING_API_KEY.
func TestAPIKey_SinHeader_Retorna401(t *testing.T) {
	app, _, _ := buildAPIKeyApp(t)
	resp := doAPIKeyRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: clave desconocida → HTTP 401 INVALID_API_KEY.
func TestAPIKey_ClaveDesconocida_Retorna401(t *testing.T) {
	app, _, _ := buildAPIKeyApp(t)
	resp := doAPIKeyRequest(t, app, "clave-que-no-existe")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 4: clave válida pero sin el scope requerido → HTTP 403 MISSING_SCOPE.
func TestAPIKey_SinScope_Retorna403(t *testing.T) {
	app, uc, _ := buildAPIKeyApp(t)
	raw, _, err := uc.CreateAPIKey(context.Background(), "solo-lectura", []string{"orders:read"})
	require.NoError(t, err)

	resp := doAPIKeyRequest(t, app, raw)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 5: clave revocada → HTTP 401.
func TestAPIKey_ClaveRevocada_Retorna401(t *testing.T) {
	app, uc, raw := buildAPIKeyApp(t)

	raw2, key2, err := uc.CreateAPIKey(context.Background(), "a-revocar", []string{"orders:write"})
	require.NoError(t, err)
	require.NoError(t, uc.RevokeAPIKey(context.Background(), key2.ID))

	resp := doAPIKeyRequest(t, app, raw2)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// La clave original sigue funcionando.
	resp2 := doAPIKeyRequest(t, app, raw)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusCreated, resp2.StatusCode)
}

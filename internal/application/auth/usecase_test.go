package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaeedBadree/TBSL-ERP/internal/application/auth"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
	pkgjwt "github.com/SaeedBadree/TBSL-ERP/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type userRepoFake struct {
	byEmail map[string]*entity.StaffUser
}

var _ repository.StaffUserRepository = (*userRepoFake)(nil)

func (f *userRepoFake) GetByEmail(_ context.Context, email string) (*entity.StaffUser, error) {
	return f.byEmail[email], nil
}
func (f *userRepoFake) GetByID(_ context.Context, id string) (*entity.StaffUser, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type keyRepoStub struct{}

var _ repository.APIKeyRepository = (*keyRepoStub)(nil)

func (keyRepoStub) Create(_ context.Context, _ *entity.APIKey) error { return nil }
func (keyRepoStub) GetActiveByHash(_ context.Context, _ string) (*entity.APIKey, error) {
	return nil, nil
}
func (keyRepoStub) GetByID(_ context.Context, _ string) (*entity.APIKey, error) { return nil, nil }
func (keyRepoStub) Deactivate(_ context.Context, _ string) error                { return nil }
func (keyRepoStub) TouchLastUsed(_ context.Context, _ string, _ time.Time) error {
	return nil
}

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testPassword = "correcto-caballo-bateria"
)

func newAuthUC(t *testing.T) (*auth.UseCase, *entity.StaffUser) {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	user := &entity.StaffUser{
		ID:           "user-1",
		Email:        "gerente@tienda.test",
		FullName:     "Gerente de Tienda",
		Role:         entity.RoleManager,
		PasswordHash: hash,
		IsActive:     true,
	}
	repo := &userRepoFake{byEmail: map[string]*entity.StaffUser{user.Email: user}}
	cfg := auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "tbsl-erp-test"}
	return auth.NewUseCase(repo, keyRepoStub{}, cfg, "test-salt"), user
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: credenciales correctas → token con el rol del usuario.
func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc, user := newAuthUC(t)

	token, got, err := uc.Login(context.Background(), user.Email, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, got.ID)

	userID, role, err := pkgjwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

// Caso 2: contraseña incorrecta → ErrBadCredentials, sin filtrar detalles.
func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, user := newAuthUC(t)

	_, _, err := uc.Login(context.Background(), user.Email, "otra-contraseña")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

// Caso 3: email desconocido → el mismo ErrBadCredentials que una contraseña mala.
func TestLogin_EmailDesconocido(t *testing.T) {
	uc, _ := newAuthUC(t)

	_, _, err := uc.Login(context.Background(), "nadie@tienda.test", testPassword)
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

// Caso 4: usuario desactivado → ErrBadCredentials aunque la contraseña sea válida.
func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, user := newAuthUC(t)
	user.IsActive = false

	_, _, err := uc.Login(context.Background(), user.Email, testPassword)
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

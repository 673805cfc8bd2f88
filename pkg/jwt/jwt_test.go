package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/SaeedBadree/TBSL-ERP/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUser   = "00000000-0000-0000-0000-000000000001"
	testIssuer = "tbsl-erp-test"
)

// Caso 1: generate/parse round-trip conserva userID y role.
func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUser, "MANAGER", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUser, userID)
	assert.Equal(t, "MANAGER", role)
}

// Caso 2: token ya expirado → error al parsear.
func TestJWT_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUser, "ADMIN", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token expirado debe rechazarse")
}

// Caso 3: firma con otro secreto → error al parsear.
func TestJWT_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUser, "ADMIN", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err, "una firma con otro secreto debe rechazarse")
}

// Caso 4: secret vacío se rechaza en ambas direcciones.
func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUser, "ADMIN", testIssuer, 60)
	assert.Error(t, err)

	_, _, err = pkgjwt.Parse("", "cualquier.token.aqui")
	assert.Error(t, err)
}

package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/tu-usuario/crm-pro/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testRoleID = "00000000-0000-0000-0000-000000000002"
	testIssuer = "crm-pro-test"
	testTTL    = 60
)

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "ana@example.com", testRoleID, "vendedor", testIssuer, testTTL)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, testRoleID, claims.RoleID)
	assert.Equal(t, "vendedor", claims.RoleName)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestJWT_TokenExpirado_RetornaErrExpired(t *testing.T) {
	// TTL -1 minuto: ya vencido al emitirse.
	tok, err := pkgjwt.Generate(testSecret, testUserID, "ana@example.com", testRoleID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired,
		"un token vencido debe clasificarse como ErrExpired, no como inválido genérico")
}

func TestJWT_TokenMalformado_RetornaErrMalformed(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "esto-no-es-un-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgjwt.ErrMalformed)
}

func TestJWT_SecretIncorrecto_RetornaErrInvalid(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "ana@example.com", testRoleID, "admin", testIssuer, testTTL)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid,
		"firma incorrecta debe clasificarse como ErrInvalid")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "ana@example.com", testRoleID, "admin", testIssuer, testTTL)
	assert.Error(t, err, "no debe emitirse un token sin secret configurado")
}

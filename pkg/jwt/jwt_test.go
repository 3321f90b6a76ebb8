package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Garantias-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "garantias-test"
)

var issuedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateAndParse_Username(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "tecnico1", testIssuer, pkgjwt.DefaultTTL, issuedAt)
	require.NoError(t, err)

	claims, err := pkgjwt.ParseAt(testSecret, tok, issuedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "tecnico1", claims.Username)
	assert.Equal(t, "tecnico1", claims.Subject)
	assert.NotEmpty(t, claims.ID, "cada token lleva un id para poder revocarlo")
	assert.True(t, issuedAt.Add(7*24*time.Hour).Equal(claims.ExpiresAt.Time))
}

func TestParse_DespuesDeSieteDias_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "tecnico1", testIssuer, pkgjwt.DefaultTTL, issuedAt)
	require.NoError(t, err)

	_, err = pkgjwt.ParseAt(testSecret, tok, issuedAt.Add(7*24*time.Hour+time.Minute))
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)

	_, err = pkgjwt.ParseAt(testSecret, tok, issuedAt.Add(6*24*time.Hour))
	assert.NoError(t, err, "antes de los 7 días sigue siendo válido")
}

func TestParse_SecretIncorrecto_Invalido(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "admin", testIssuer, pkgjwt.DefaultTTL, issuedAt)
	require.NoError(t, err)

	_, err = pkgjwt.ParseAt("otro-secret-completamente-distinto", tok, issuedAt)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestParse_Malformado_Invalido(t *testing.T) {
	_, err := pkgjwt.ParseAt(testSecret, "token.invalido.aqui", issuedAt)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)

	_, err = pkgjwt.ParseAt(testSecret, "basura", issuedAt)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "admin", testIssuer, pkgjwt.DefaultTTL, issuedAt)
	assert.Error(t, err)
}

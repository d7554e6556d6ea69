package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/invorya-admin/pkg/jwt"
)

func TestExpiresAt_LeeClaimSinSecreto(t *testing.T) {
	tok, err := pkgjwt.Sign("secreto-backend", pkgjwt.Claims{UserID: "u-1", Role: "empleado"}, time.Hour)
	require.NoError(t, err)

	exp, ok, err := pkgjwt.ExpiresAt(tok)
	require.NoError(t, err)
	require.True(t, ok, "el token firmado trae exp")
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestExpiresAt_SinClaimExp(t *testing.T) {
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{"sub": "u-1"}).SignedString([]byte("x"))
	require.NoError(t, err)

	_, ok, err := pkgjwt.ExpiresAt(tok)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiresAt_TokenMalFormado(t *testing.T) {
	_, _, err := pkgjwt.ExpiresAt("no-es-un-jwt")
	assert.Error(t, err)
}

func TestSign_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Sign("", pkgjwt.Claims{}, time.Minute)
	assert.Error(t, err)
}

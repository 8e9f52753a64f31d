package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	token, err := Generate("secreto", "u-1", "employee", "rewards-store", 5)
	require.NoError(t, err)

	userID, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "employee", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secreto", "u-1", "admin", "rewards-store", 5)
	require.NoError(t, err)
	_, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate("secreto", "u-1", "admin", "rewards-store", -1)
	require.NoError(t, err)
	_, _, err = Parse("secreto", token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_MetodoNoHMAC(t *testing.T) {
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute))},
		UserID:           "u-1",
		Role:             "admin",
	}
	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, _, err = Parse("secreto", unsigned)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u-1", "admin", "x", 5)
	assert.Error(t, err)
	_, _, err = Parse("", "token")
	assert.Error(t, err)
}

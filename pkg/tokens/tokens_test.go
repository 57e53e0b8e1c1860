package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMintAndParse(t *testing.T) {
	secret := []byte("test-secret")

	raw, err := Mint(secret, "admin@example.com", AdminRole, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(secret, raw)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", claims.Email)
	require.Equal(t, AdminRole, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := Mint([]byte("test-secret"), "admin@example.com", AdminRole, time.Hour)
	require.NoError(t, err)

	_, err = Parse([]byte("other-secret"), raw)
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")

	raw, err := Mint(secret, "admin@example.com", AdminRole, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(secret, raw)
	require.Error(t, err)
}

package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintToken_CarriesBackendClaims(t *testing.T) {
	exp := TestTime().Add(time.Hour)
	tok := MintToken(t, TokenClaims{UserID: "u-1", Role: "Participant", ExpiresAt: exp})

	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tok, mc, func(*jwt.Token) (interface{}, error) {
		return []byte(TestSigningSecret), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, "u-1", mc["id"])
	assert.Equal(t, "Participant", mc["role"])
	assert.InDelta(t, float64(exp.Unix()), mc["exp"], 0)
}

func TestMintToken_NoExpiry(t *testing.T) {
	tok := MintToken(t, TokenClaims{UserID: "u-2", Role: "Organisateur"})

	mc := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tok, mc)
	require.NoError(t, err)
	_, has := mc["exp"]
	assert.False(t, has)
}

func TestFixedTimeFunc(t *testing.T) {
	now := FixedTimeFunc(TestTime())
	assert.Equal(t, TestTime(), now())
	assert.Equal(t, now(), now())
}

package lib

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	secret := "admin-test-secret"

	token, err := GenerateAdminToken(secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseAdminToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Sub)
	assert.True(t, claims.Exp.After(time.Now()))
	assert.NotEqual(t, uuid.Nil, claims.Jti)
}

func TestAdminTokenWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("secret-a", time.Hour)
	require.NoError(t, err)

	_, err = ParseAdminToken(token, "secret-b")
	assert.Error(t, err)
}

func TestAdminTokenExpired(t *testing.T) {
	token, err := GenerateAdminToken("secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAdminToken(token, "secret")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/admin/feedback", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	token, err := ExtractBearerToken(r)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	r.Header.Set("Authorization", "Basic abc123")
	_, err = ExtractBearerToken(r)
	assert.Error(t, err)

	r.Header.Del("Authorization")
	_, err = ExtractBearerToken(r)
	assert.Error(t, err)
}

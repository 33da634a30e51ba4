package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.Error(t, err)
}

func TestSessionJWT_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("s3cret", time.Hour)
	require.NoError(t, err)

	cred := models.SessionCredential{Kind: models.CredentialStorefront, Token: "tok", ExpiresAt: time.Now().Add(24 * time.Hour)}
	signed, err := svc.GenerateSessionJWT("sess-1", "ana@example.com", cred)
	require.NoError(t, err)

	claims, err := svc.ValidateSessionJWT(signed)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "tok", claims.Credential.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestSessionJWT_CappedByCredentialExpiry(t *testing.T) {
	svc, err := NewJWTService("s3cret", 7*24*time.Hour)
	require.NoError(t, err)

	credExpiry := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	signed, err := svc.GenerateSessionJWT("sess-1", "", models.SessionCredential{Kind: models.CredentialLinked, CustomerID: "gid://shopify/Customer/1", ExpiresAt: credExpiry})
	require.NoError(t, err)

	claims, err := svc.ValidateSessionJWT(signed)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Equal(credExpiry))
}

func TestSessionJWT_Rejects(t *testing.T) {
	svc, _ := NewJWTService("s3cret", time.Hour)
	other, _ := NewJWTService("other", time.Hour)
	cred := models.SessionCredential{Kind: models.CredentialStorefront, Token: "tok"}

	signed, err := other.GenerateSessionJWT("sess-1", "", cred)
	require.NoError(t, err)
	_, err = svc.ValidateSessionJWT(signed)
	assert.Error(t, err, "wrong key")

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.GenerateSessionJWT("sess-1", "", cred)
	require.NoError(t, err)
	svc.now = time.Now
	_, err = svc.ValidateSessionJWT(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = svc.GenerateSessionJWT("", "", cred)
	assert.Error(t, err)
}

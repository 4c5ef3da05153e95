package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitdesk/visitdesk-api/internal/models"
	"github.com/visitdesk/visitdesk-api/pkg/config"
)

func signToken(t *testing.T, secret string, claims models.TokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{Enabled: true, TokenSecret: "secret"})

	signed := signToken(t, "secret", models.TokenClaims{
		UserID: "user-1",
		Email:  "desk@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "desk@example.com", claims.Email)
}

func TestAuthServiceRejectsWrongSecret(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{Enabled: true, TokenSecret: "secret"})

	signed := signToken(t, "other-secret", models.TokenClaims{UserID: "user-1"})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{Enabled: true, TokenSecret: "secret"})

	signed := signToken(t, "secret", models.TokenClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)
}

func TestAuthServiceChecksIssuer(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{Enabled: true, TokenSecret: "secret", Issuer: "idp.example.com"})

	signed := signToken(t, "secret", models.TokenClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)

	signed = signToken(t, "secret", models.TokenClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "idp.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err = svc.ValidateToken(signed)
	require.NoError(t, err)
}

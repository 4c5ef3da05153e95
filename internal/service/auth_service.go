package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/visitdesk/visitdesk-api/internal/models"
	"github.com/visitdesk/visitdesk-api/pkg/config"
	appErrors "github.com/visitdesk/visitdesk-api/pkg/errors"
)

// AuthService verifies bearer tokens issued by the external identity provider.
type AuthService struct {
	config config.AuthConfig
}

// NewAuthService constructs the verifier.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{config: cfg}
}

// Enabled reports whether token verification is switched on.
func (s *AuthService) Enabled() bool {
	return s != nil && s.config.Enabled
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	opts := []jwt.ParserOption{}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	for _, aud := range s.config.Audience {
		opts = append(opts, jwt.WithAudience(aud))
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

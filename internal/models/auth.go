package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload of access tokens minted by the external identity
// provider. This service verifies tokens but never issues them.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

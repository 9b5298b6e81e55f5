package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the informational part of a JWT session token
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenClaims decodes the claims of token without verifying its signature.
// The result is for display only; the backend stays the authority on validity.
func TokenClaims(token string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, err
	}

	var claims Claims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the session lifetime for both principal kinds.
const TokenTTL = 7 * 24 * time.Hour

// ErrMissingSecret means the signing secret was never configured. Callers
// must treat this as a configuration fault, not an authentication failure.
var ErrMissingSecret = errors.New("jwt secret is not configured")

// Claims binds the principal id to its kind. The kind is part of the
// signed payload so a token issued for a user can never resolve through
// the partner middleware, and vice versa.
type Claims struct {
	ID   uint   `json:"id"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateToken signs a 7-day HS256 token for the given principal.
func GenerateToken(id uint, kind, secret string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := Claims{
		ID:   id,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

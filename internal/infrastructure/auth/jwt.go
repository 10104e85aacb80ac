// Package auth verifies bearer tokens issued by the hosted auth
// provider. Tokens are HS256 signed with a shared secret; this service
// only verifies, it never issues.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	sharedconfig "liken/internal/shared/config"
)

// Claims are the token fields the service cares about.
type Claims struct {
	AgencyID string `json:"agency_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
}

func NewJWTService(cfg sharedconfig.JWTConfig) *JWTService {
	return &JWTService{secret: []byte(cfg.Secret)}
}

// Verify parses and validates a token, returning its claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

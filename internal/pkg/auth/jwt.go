// internal/pkg/auth/jwt.go
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client can read out of a backend-issued credential.
// The signature is never verified client side; the backend does that.
type Claims struct {
	UserID   string `json:"_id,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// InspectToken decodes the claims of a JWT credential without verifying it
func InspectToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// TokenExpired reports whether a credential carries an exp claim at or before now.
// Opaque (non-JWT) credentials never expire client side.
func TokenExpired(tokenString string, now time.Time) bool {
	if strings.Count(tokenString, ".") != 2 {
		return false
	}
	claims, err := InspectToken(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.Time.After(now)
}

// BearerHeader formats a credential for the Authorization header
func BearerHeader(token string) string {
	return "Bearer " + token
}

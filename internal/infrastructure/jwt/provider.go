package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields. Subject carries the account id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ErrMissingClaims reports a structurally valid token without the subject or
// role claim. Kept distinct from signature/expiry failures so callers can
// tell a malformed payload from a stale token.
var ErrMissingClaims = errors.New("token missing subject or role claim")

// Provider signs and verifies HS256 JWTs with a process-wide symmetric secret.
type Provider struct {
	secret []byte
	expiry time.Duration
}

func NewProvider(secret string, expiry time.Duration) *Provider {
	return &Provider{secret: []byte(secret), expiry: expiry}
}

// Sign issues a token for the given subject and role, expiring at the
// configured offset from now.
func (p *Provider) Sign(subject, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks signature and expiry and requires subject and role claims.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrMissingClaims
	}
	return claims, nil
}

// Package jwtmw issues and verifies the HS256 bearer tokens that protect the write endpoints.
package jwtmw

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"astrology_backend/internal/platform/config"
)

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given API client.
	GenerateToken(subject string, scopes []string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewGenerator creates a JWT generator from the jwt config section.
// A zero TTL defaults to 24 hours.
func NewGenerator(cfg config.JWTConfig) (*generator, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &generator{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: ttl,
	}, nil
}

// GenerateToken creates a signed JWT token with standard claims plus a space separated scope.
func (g *generator) GenerateToken(subject string, scopes []string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("subject is required")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(g.expiration).Unix(),
		"iat": now.Unix(),
	}
	if g.issuer != "" {
		claims["iss"] = g.issuer
	}
	if len(scopes) > 0 {
		claims["scope"] = strings.Join(scopes, " ")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

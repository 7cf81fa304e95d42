package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultDevTokenTTL is the lifetime of tokens minted for local testing.
const DefaultDevTokenTTL = time.Hour

// PerfilClaim is the profile object some identity providers embed instead
// of a flat role claim.
type PerfilClaim struct {
	ID    int    `json:"id,omitempty"`
	Nome  string `json:"nome"`
	Nivel int    `json:"nivel_acesso,omitempty"`
}

// Claims are the bearer-token claims the access service reads.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the free-text role name; aliases are resolved downstream.
	Role string `json:"role,omitempty"`

	// Perfil is consulted when Role is empty.
	Perfil *PerfilClaim `json:"perfil,omitempty"`

	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// RoleName returns the role claim, falling back to the profile name.
func (c *Claims) RoleName() string {
	if role := strings.TrimSpace(c.Role); role != "" {
		return role
	}
	if c.Perfil != nil {
		return strings.TrimSpace(c.Perfil.Nome)
	}
	return ""
}

// NewClaims builds minimally-correct claims.
func NewClaims(subject, role string, ttl time.Duration, issuer string, audience []string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role: role,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

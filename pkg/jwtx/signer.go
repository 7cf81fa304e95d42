package jwtx

import (
	"crypto"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gruas/acesso/pkg/cryptox"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

// KeySigner signs with a private key whose type selects the algorithm:
// Ed25519 for EdDSA, RSA for RS256, P-256 for ES256.
type KeySigner struct {
	kid    string
	key    crypto.Signer
	method jwt.SigningMethod
	jwk    JWK
}

// NewSigner loads a PEM private key. The service itself only verifies;
// signing serves the CLI and tests.
func NewSigner(kid string, pemKey []byte) (*KeySigner, error) {
	key, alg, err := cryptox.ParsePrivateKey(pemKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: %w", err)
	}
	method := jwt.GetSigningMethod(alg)
	if method == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlgMismatch, alg)
	}
	jwk, err := NewJWK(kid, key.Public())
	if err != nil {
		return nil, err
	}
	return &KeySigner{kid: kid, key: key, method: method, jwk: jwk}, nil
}

func (s *KeySigner) Alg() string { return s.method.Alg() }
func (s *KeySigner) KID() string { return s.kid }

// Sign takes your claims and turns them into a signed JWT string.
func (s *KeySigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK returns the JWK to publish so others can verify our tokens.
func (s *KeySigner) PublicJWK() JWK { return s.jwk }

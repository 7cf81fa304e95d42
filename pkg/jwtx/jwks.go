package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"math/big"
)

// JWK represents a public key in JSON Web Key format (RFC 7517).
type JWK struct {
	Kty string `json:"kty"`           // "RSA", "OKP" or "EC"
	Use string `json:"use,omitempty"` // "sig"
	Alg string `json:"alg,omitempty"` // "RS256", "EdDSA" or "ES256"
	Kid string `json:"kid,omitempty"`

	// RSA
	N string `json:"n,omitempty"`
	E string `json:"e,omitempty"`

	// OKP and EC
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
}

// JWKS is a JSON Web Key Set (RFC 7517).
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// NewJWK builds a signing JWK for an RSA, Ed25519 or P-256 public key.
func NewJWK(kid string, pub crypto.PublicKey) (JWK, error) {
	switch k := pub.(type) {
	case *rsa.PublicKey:
		return JWK{
			Kty: "RSA", Use: "sig", Alg: "RS256", Kid: kid,
			N: base64.RawURLEncoding.EncodeToString(k.N.Bytes()),
			E: base64.RawURLEncoding.EncodeToString(big.NewInt(int64(k.E)).Bytes()),
		}, nil
	case ed25519.PublicKey:
		return JWK{
			Kty: "OKP", Use: "sig", Alg: "EdDSA", Kid: kid, Crv: "Ed25519",
			X: base64.RawURLEncoding.EncodeToString(k),
		}, nil
	case *ecdsa.PublicKey:
		// P-256 coordinates are fixed at 32 bytes.
		x := make([]byte, 32)
		y := make([]byte, 32)
		k.X.FillBytes(x)
		k.Y.FillBytes(y)
		return JWK{
			Kty: "EC", Use: "sig", Alg: "ES256", Kid: kid, Crv: "P-256",
			X: base64.RawURLEncoding.EncodeToString(x),
			Y: base64.RawURLEncoding.EncodeToString(y),
		}, nil
	default:
		return JWK{}, fmt.Errorf("jwtx: unsupported public key %T", pub)
	}
}

// PublicKey decodes the JWK into a crypto public key.
func (j JWK) PublicKey() (crypto.PublicKey, error) {
	return parseJWKToKey(j)
}

// PEM converts the JWK to a PKIX PEM block for tools like jwt.io.
func (j JWK) PEM() (string, error) {
	pub, err := parseJWKToKey(j)
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}

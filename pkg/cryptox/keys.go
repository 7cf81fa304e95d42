package cryptox

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// Supported signing algorithms.
const (
	AlgEdDSA = "EdDSA"
	AlgRS256 = "RS256"
	AlgES256 = "ES256"
)

var ErrUnsupportedAlg = errors.New("cryptox: unsupported algorithm")

// GenerateKey creates a private key for alg and returns it PEM encoded
// (PKCS8). RSA keys are 2048 bits.
func GenerateKey(alg string) ([]byte, error) {
	var (
		key crypto.Signer
		err error
	)
	switch alg {
	case AlgEdDSA:
		_, key, err = ed25519.GenerateKey(rand.Reader)
	case AlgES256:
		key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	case AlgRS256:
		key, err = rsa.GenerateKey(rand.Reader, 2048)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}
	if err != nil {
		return nil, fmt.Errorf("cryptox: generate %s key: %w", alg, err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: marshal PKCS8 key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// ParsePrivateKey decodes a PEM private key (PKCS8, or PKCS1 for RSA) and
// reports the algorithm it signs with.
func ParsePrivateKey(pemBytes []byte) (crypto.Signer, string, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, "", errors.New("cryptox: no PEM block found")
	}

	var parsed any
	var err error
	switch block.Type {
	case "RSA PRIVATE KEY":
		parsed, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		parsed, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		parsed, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	}
	if err != nil {
		return nil, "", fmt.Errorf("cryptox: parse private key: %w", err)
	}

	switch k := parsed.(type) {
	case ed25519.PrivateKey:
		return k, AlgEdDSA, nil
	case *rsa.PrivateKey:
		if k.N.BitLen() < 2048 {
			return nil, "", errors.New("cryptox: RSA key size must be at least 2048 bits")
		}
		return k, AlgRS256, nil
	case *ecdsa.PrivateKey:
		if k.Curve != elliptic.P256() {
			return nil, "", fmt.Errorf("%w: ECDSA curve %s", ErrUnsupportedAlg, k.Curve.Params().Name)
		}
		return k, AlgES256, nil
	default:
		return nil, "", fmt.Errorf("%w: key type %T", ErrUnsupportedAlg, parsed)
	}
}

package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewJWK(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	edPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	cases := []struct {
		name string
		pub  any
		kty  string
		alg  string
	}{
		{"rsa", &rsaKey.PublicKey, "RSA", "RS256"},
		{"ed25519", edPub, "OKP", "EdDSA"},
		{"p256", &ecKey.PublicKey, "EC", "ES256"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			jwk, err := NewJWK("kid-"+tc.name, tc.pub)
			require.NoError(t, err)
			require.Equal(t, tc.kty, jwk.Kty)
			require.Equal(t, tc.alg, jwk.Alg)
			require.Equal(t, "sig", jwk.Use)

			// The JWK must decode back to the same public key.
			got, err := jwk.PublicKey()
			require.NoError(t, err)
			require.True(t, got.(interface{ Equal(crypto.PublicKey) bool }).Equal(tc.pub))

			pemStr, err := jwk.PEM()
			require.NoError(t, err)
			block, _ := pem.Decode([]byte(pemStr))
			require.NotNil(t, block)
			require.Equal(t, "PUBLIC KEY", block.Type)
			parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
			require.NoError(t, err)
			require.True(t, parsed.(interface{ Equal(crypto.PublicKey) bool }).Equal(tc.pub))
		})
	}
}

func TestNewJWK_Unsupported(t *testing.T) {
	_, err := NewJWK("x", "not a key")
	require.Error(t, err)
}

func TestJWK_PEM_InvalidKeyType(t *testing.T) {
	_, err := JWK{Kty: "oct", Kid: "k"}.PEM()
	require.Error(t, err)

	_, err = JWK{Kty: "EC", Crv: "P-384", X: "AA", Y: "AA"}.PEM()
	require.Error(t, err)
}

func TestKeySet(t *testing.T) {
	_, priv1, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	_, priv2, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	j1, err := NewJWK("a", priv1.Public())
	require.NoError(t, err)
	j2, err := NewJWK("b", priv2.Public())
	require.NoError(t, err)

	ks := NewKeySet()
	require.False(t, ks.IsReady())
	require.NoError(t, ks.AddJWK(j1))
	require.NoError(t, ks.AddJWK(j1))
	require.Equal(t, 1, ks.Len())
	require.Len(t, ks.PublicJWKS().Keys, 1)

	t.Run("reset replaces everything", func(t *testing.T) {
		require.NoError(t, ks.ResetFromJWKS(JWKS{Keys: []JWK{j2}}))
		_, err := ks.Get("a")
		require.ErrorIs(t, err, ErrNoKey)
		_, err = ks.Get("b")
		require.NoError(t, err)
	})

	t.Run("bad key keeps old set", func(t *testing.T) {
		err := ks.ResetFromJWKS(JWKS{Keys: []JWK{j1, {Kty: "oct", Kid: "c"}}})
		require.Error(t, err)
		_, err = ks.Get("b")
		require.NoError(t, err)
	})

	t.Run("encryption keys skipped", func(t *testing.T) {
		enc := j1
		enc.Use = "enc"
		require.NoError(t, ks.ResetFromJWKS(JWKS{Keys: []JWK{j2, enc}}))
		require.Equal(t, 1, ks.Len())
	})
}

package jwtx_test

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gruas/acesso/pkg/cryptox"
	"github.com/gruas/acesso/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T, alg, kid string) *jwtx.KeySigner {
	t.Helper()
	pem, err := cryptox.GenerateKey(alg)
	require.NoError(t, err)
	s, err := jwtx.NewSigner(kid, pem)
	require.NoError(t, err)
	require.Equal(t, alg, s.Alg())
	return s
}

func TestVerifier_AllAlgorithms(t *testing.T) {
	for _, alg := range []string{cryptox.AlgEdDSA, cryptox.AlgRS256, cryptox.AlgES256} {
		t.Run(alg, func(t *testing.T) {
			s := newSigner(t, alg, "k-"+alg)
			keys := jwtx.NewKeySet()
			require.NoError(t, keys.AddSigner(s))

			v := jwtx.NewVerifier(keys, jwtx.VerifyOptions{Issuer: "iss", Audience: []string{"acesso"}})

			tok, err := s.Sign(jwtx.NewClaims("user-1", "Gestores", time.Minute, "iss", []string{"acesso"}, time.Now()))
			require.NoError(t, err)

			claims, err := v.Verify(tok)
			require.NoError(t, err)
			require.Equal(t, "user-1", claims.Subject)
			require.Equal(t, "Gestores", claims.RoleName())
		})
	}
}

func TestVerifier_Rejections(t *testing.T) {
	ed := newSigner(t, cryptox.AlgEdDSA, "ed")
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(ed))

	now := time.Now()
	valid := jwtx.NewClaims("u", "Admin", time.Minute, "iss", []string{"acesso"}, now)
	v := jwtx.NewVerifier(keys, jwtx.VerifyOptions{Issuer: "iss", Audience: []string{"acesso"}})

	sign := func(s jwtx.Signer, c jwtx.Claims) string {
		tok, err := s.Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("expired", func(t *testing.T) {
		c := jwtx.NewClaims("u", "Admin", time.Minute, "iss", []string{"acesso"}, now.Add(-time.Hour))
		_, err := v.Verify(sign(ed, c))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("expired within leeway", func(t *testing.T) {
		lv := jwtx.NewVerifier(keys, jwtx.VerifyOptions{Leeway: 2 * time.Minute})
		c := jwtx.NewClaims("u", "Admin", time.Minute, "iss", nil, now.Add(-2*time.Minute))
		_, err := lv.Verify(sign(ed, c))
		require.NoError(t, err)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := jwtx.NewClaims("u", "Admin", time.Hour, "iss", []string{"acesso"}, now.Add(10*time.Minute))
		_, err := v.Verify(sign(ed, c))
		require.ErrorIs(t, err, jwtx.ErrNotYetValid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := valid
		c.Issuer = "other"
		_, err := v.Verify(sign(ed, c))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		c := valid
		c.Audience = jwt.ClaimStrings{"billing"}
		_, err := v.Verify(sign(ed, c))
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("missing subject", func(t *testing.T) {
		c := valid
		c.Subject = ""
		_, err := v.Verify(sign(ed, c))
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("missing exp", func(t *testing.T) {
		c := valid
		c.ExpiresAt = nil
		_, err := v.Verify(sign(ed, c))
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("tampered signature", func(t *testing.T) {
		tok := sign(ed, valid)
		parts := strings.Split(tok, ".")
		other := sign(ed, jwtx.NewClaims("someone-else", "Admin", time.Minute, "iss", []string{"acesso"}, now))
		parts[2] = strings.Split(other, ".")[2]
		_, err := v.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("missing kid", func(t *testing.T) {
		pem, err := cryptox.GenerateKey(cryptox.AlgEdDSA)
		require.NoError(t, err)
		key, _, err := cryptox.ParsePrivateKey(pem)
		require.NoError(t, err)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, valid).SignedString(key)
		require.NoError(t, err)
		_, err = v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("alg does not match key", func(t *testing.T) {
		// An RS256 token whose kid points at the Ed25519 key.
		rs := newSigner(t, cryptox.AlgRS256, "ed")
		_, err := v.Verify(sign(rs, valid))
		require.ErrorIs(t, err, jwtx.ErrAlgMismatch)
	})

	t.Run("hmac rejected", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, valid)
		tok.Header["kid"] = "ed"
		s, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = v.Verify(s)
		require.Error(t, err)
	})
}

func TestVerifier_UnknownKIDHook(t *testing.T) {
	keys := jwtx.NewKeySet()
	var calls atomic.Int32
	var seen atomic.Value
	v := jwtx.NewVerifier(keys, jwtx.VerifyOptions{OnUnknownKID: func(kid string) {
		calls.Add(1)
		seen.Store(kid)
	}})

	s := newSigner(t, cryptox.AlgES256, "rotated")
	tok, err := s.Sign(jwtx.NewClaims("u", "Admin", time.Minute, "", nil, time.Now()))
	require.NoError(t, err)

	_, err = v.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, "rotated", seen.Load())

	require.NoError(t, keys.AddSigner(s))
	_, err = v.Verify(tok)
	require.NoError(t, err)
}

func TestNewSigner_BadPEM(t *testing.T) {
	_, err := jwtx.NewSigner("k", []byte("nope"))
	require.Error(t, err)
}

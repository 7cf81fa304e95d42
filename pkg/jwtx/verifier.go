package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows small clock skew when validating exp/nbf/iat.
	Leeway time.Duration

	// OnUnknownKID is called with a kid missing from the key set, usually
	// to nudge a JWKS refresh after the issuer rotated keys.
	OnUnknownKID func(kid string)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// KeyVerifier verifies EdDSA, RS256 and ES256 tokens against a KeySet.
// The kid header selects the key and the key type must agree with alg.
type KeyVerifier struct {
	keys   *KeySet
	opts   VerifyOptions
	parser *jwt.Parser
}

var _ Verifier = (*KeyVerifier)(nil)

func NewVerifier(keys *KeySet, opts VerifyOptions) *KeyVerifier {
	return &KeyVerifier{
		keys: keys,
		opts: opts,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"EdDSA", "RS256", "ES256"}),
			jwt.WithLeeway(opts.Leeway),
			jwt.WithExpirationRequired(),
		),
	}
}

func (v *KeyVerifier) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := v.parser.ParseWithClaims(token, &claims, v.keyFunc)
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidClaim)
	}
	return claims, nil
}

func (v *KeyVerifier) keyFunc(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("%w: missing kid", ErrMalformed)
	}
	key, err := v.keys.Get(kid)
	if err != nil {
		if v.opts.OnUnknownKID != nil {
			v.opts.OnUnknownKID(kid)
		}
		return nil, ErrUnknownKID
	}

	var ok bool
	switch t.Method.Alg() {
	case "EdDSA":
		_, ok = key.(ed25519.PublicKey)
	case "RS256":
		_, ok = key.(*rsa.PublicKey)
	case "ES256":
		_, ok = key.(*ecdsa.PublicKey)
	}
	if !ok {
		return nil, ErrAlgMismatch
	}
	return key, nil
}

// mapParseError folds golang-jwt errors into this package's sentinels.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownKID):
		return ErrUnknownKID
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	case errors.Is(err, ErrMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}

package jwtx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// maxJWKSBytes caps how much of a remote JWKS response is read.
const maxJWKSBytes = 1 << 20

var ErrNoSource = errors.New("jwtx: no JWKS source configured")

// Source loads a JWKS from a URL or a local file. URL wins when both are set.
type Source struct {
	URL    string
	File   string
	Client *http.Client
}

func (s Source) Configured() bool { return s.URL != "" || s.File != "" }

// Load fetches and decodes the key set.
func (s Source) Load(ctx context.Context) (JWKS, error) {
	switch {
	case s.URL != "":
		return s.fetch(ctx)
	case s.File != "":
		b, err := os.ReadFile(s.File)
		if err != nil {
			return JWKS{}, fmt.Errorf("jwtx: read jwks file: %w", err)
		}
		return decodeJWKS(b)
	default:
		return JWKS{}, ErrNoSource
	}
}

func (s Source) fetch(ctx context.Context) (JWKS, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: build jwks request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JWKS{}, fmt.Errorf("jwtx: fetch jwks: unexpected status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxJWKSBytes))
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: read jwks body: %w", err)
	}
	return decodeJWKS(b)
}

func decodeJWKS(b []byte) (JWKS, error) {
	var set JWKS
	if err := json.Unmarshal(b, &set); err != nil {
		return JWKS{}, fmt.Errorf("jwtx: decode jwks: %w", err)
	}
	if len(set.Keys) == 0 {
		return JWKS{}, errors.New("jwtx: jwks has no keys")
	}
	return set, nil
}

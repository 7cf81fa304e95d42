package acessosdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the access control service. Unauthenticated calls
// live here; a Session carries a bearer token for the rest.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with a 10 second timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// TokenSource yields the bearer token for each request, letting callers
// plug in their own refresh logic.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken returns a TokenSource that always yields token.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) { return token, nil }
}

// NewSession creates an authenticated session.
func (c *SDKClient) NewSession(tokens TokenSource) *Session {
	return &Session{client: c, tokens: tokens}
}

// Session performs authenticated calls with tokens from its TokenSource.
type Session struct {
	client *SDKClient
	tokens TokenSource
}

func (s *Session) token(ctx context.Context) (string, error) {
	if s.tokens == nil {
		return "", fmt.Errorf("no token source configured")
	}
	tok, err := s.tokens(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to obtain token: %w", err)
	}
	if tok == "" {
		return "", fmt.Errorf("token source returned an empty token")
	}
	return tok, nil
}

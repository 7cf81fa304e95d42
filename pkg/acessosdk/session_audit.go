package acessosdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListDecisions pages through audited denies, newest first.
// Requires: perfis:gerenciar at admin level
func (s *Session) ListDecisions(ctx context.Context, opts ListDecisionsOptions) (*ListDecisionsResponse, error) {
	q := url.Values{}
	if opts.Subject != "" {
		q.Set("subject", opts.Subject)
	}
	if opts.Before != "" {
		q.Set("before", opts.Before)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	path := "/v1/audit/decisions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out ListDecisionsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecisionSummary counts audited decisions per kind and reason.
// Requires: perfis:gerenciar at admin level
func (s *Session) DecisionSummary(ctx context.Context) (*DecisionSummaryResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/audit/summary", nil)
	if err != nil {
		return nil, err
	}

	var out DecisionSummaryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

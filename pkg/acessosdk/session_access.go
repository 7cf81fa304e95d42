package acessosdk

import (
	"context"
	"net/http"
	"net/url"
)

// MyPermissions returns the caller's grants, narrowed to surface when set.
func (s *Session) MyPermissions(ctx context.Context, surface string) (*PermissionsResponse, error) {
	path := "/v1/me/permissions"
	if surface != "" {
		path += "?surface=" + url.QueryEscape(surface)
	}
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out PermissionsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyMenu returns the caller's navigation for surface. A non-empty active
// path fills MenuResponse.ActiveTrail.
func (s *Session) MyMenu(ctx context.Context, surface, active string) (*MenuResponse, error) {
	q := url.Values{}
	if surface != "" {
		q.Set("surface", surface)
	}
	if active != "" {
		q.Set("active", active)
	}
	path := "/v1/me/menu"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out MenuResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Guard asks whether the caller may open req.Route. All three decision
// kinds come back as a GuardResponse.
func (s *Session) Guard(ctx context.Context, req GuardRequest) (*GuardResponse, error) {
	q := url.Values{}
	q.Set("route", req.Route)
	if req.Surface != "" {
		q.Set("surface", req.Surface)
	}
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/guard?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var out GuardResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

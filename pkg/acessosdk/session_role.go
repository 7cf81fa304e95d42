package acessosdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListRoles retrieves the catalog roles, highest rank first.
// Requires: perfis:visualizar
func (s *Session) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/roles", nil)
	if err != nil {
		return nil, err
	}

	var rolesResp ListRolesResponse
	if err := decodeJSON(resp, &rolesResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &rolesResp, nil
}

// RolePermissions resolves any role or alias by name.
// Requires: perfis:visualizar
func (s *Session) RolePermissions(ctx context.Context, role string) (*PermissionsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/roles/"+url.PathEscape(role)+"/permissions", nil)
	if err != nil {
		return nil, err
	}

	var out PermissionsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

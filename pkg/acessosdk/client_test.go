package acessosdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gruas/acesso/pkg/acessosdk"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer good" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid_token","error_description":"bad token"}`))
				return
			}
			h(w, r)
		}
	}
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, acessosdk.HealthResponse{Status: "ok", Version: "test"})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	})
	mux.HandleFunc("GET /v1/me/permissions", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, acessosdk.PermissionsResponse{
			Role:    "Operários",
			Surface: r.URL.Query().Get("surface"),
			Permissions: []acessosdk.Grant{
				{Permission: "ponto:visualizar", Level: "read"},
				{Permission: "ponto:registrar", Level: "write"},
			},
		})
	}))
	mux.HandleFunc("GET /v1/me/menu", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, acessosdk.MenuResponse{
			Surface:     r.URL.Query().Get("surface"),
			Visible:     true,
			Menu:        &acessosdk.MenuItem{ID: "root", Label: "Painel"},
			ActiveTrail: []string{"root", r.URL.Query().Get("active")},
		})
	}))
	mux.HandleFunc("GET /v1/guard", authed(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Query().Get("route")
		writeJSON(w, acessosdk.GuardResponse{Kind: acessosdk.DecisionDeny, Route: route, Reason: "missing_permission"})
	}))
	mux.HandleFunc("GET /v1/roles/{role}/permissions", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, acessosdk.PermissionsResponse{Role: r.PathValue("role")})
	}))
	mux.HandleFunc("GET /v1/audit/decisions", authed(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeJSON(w, acessosdk.ListDecisionsResponse{
			Decisions:  []acessosdk.DecisionRecord{{ID: "x", Route: q.Get("subject") + "|" + q.Get("limit")}},
			NextBefore: "x",
		})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSDKClient_Health(t *testing.T) {
	ctx := context.Background()
	c := acessosdk.NewSDKClient(newTestServer(t).URL + "/")

	live, err := c.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	_, err = c.GetReadiness(ctx)
	var apiErr *acessosdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	require.Equal(t, acessosdk.ErrorCodeServerError, apiErr.Code)
}

func TestSession_Access(t *testing.T) {
	ctx := context.Background()
	c := acessosdk.NewSDKClient(newTestServer(t).URL)
	s := c.NewSession(acessosdk.StaticToken("good"))

	perms, err := s.MyPermissions(ctx, "pwa")
	require.NoError(t, err)
	require.Equal(t, "pwa", perms.Surface)
	require.True(t, perms.Has("ponto:registrar", "write"))
	require.True(t, perms.Has("ponto:registrar", ""))
	require.False(t, perms.Has("ponto:visualizar", "write"))
	require.False(t, perms.Has("financeiro:visualizar", "read"))

	menu, err := s.MyMenu(ctx, "dashboard", "/dashboard/gruas")
	require.NoError(t, err)
	require.Equal(t, "dashboard", menu.Surface)
	require.Equal(t, []string{"root", "/dashboard/gruas"}, menu.ActiveTrail)

	d, err := s.Guard(ctx, acessosdk.GuardRequest{Route: "/dashboard/rh?aba=ferias"})
	require.NoError(t, err)
	require.Equal(t, acessosdk.DecisionDeny, d.Kind)
	require.Equal(t, "/dashboard/rh?aba=ferias", d.Route)

	rp, err := s.RolePermissions(ctx, "Operários")
	require.NoError(t, err)
	require.Equal(t, "Operários", rp.Role)

	list, err := s.ListDecisions(ctx, acessosdk.ListDecisionsOptions{Subject: "alice", Limit: 5})
	require.NoError(t, err)
	require.Equal(t, "alice|5", list.Decisions[0].Route)
}

func TestSession_Errors(t *testing.T) {
	ctx := context.Background()
	c := acessosdk.NewSDKClient(newTestServer(t).URL)

	_, err := c.NewSession(acessosdk.StaticToken("bad")).MyPermissions(ctx, "")
	require.True(t, acessosdk.IsCode(err, acessosdk.ErrorCodeInvalidToken))
	require.False(t, acessosdk.IsUnknownRole(err))

	_, err = c.NewSession(acessosdk.StaticToken("")).MyPermissions(ctx, "")
	require.Error(t, err)

	_, err = c.NewSession(nil).ListRoles(ctx)
	require.Error(t, err)

	failing := func(context.Context) (string, error) { return "", errors.New("boom") }
	_, err = c.NewSession(failing).ListRoles(ctx)
	require.ErrorContains(t, err, "boom")
}

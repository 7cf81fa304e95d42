//go:build e2e

package acesso_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gruas/acesso/pkg/acessosdk"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := setupAcessoContainer(t)

	live, err := env.client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := env.client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Keys)
}

func TestPermissionsAndMenu(t *testing.T) {
	env := setupAcessoContainer(t)
	s := env.session(t, "op-1", "Operario")

	perms, err := s.MyPermissions(t.Context(), "")
	require.NoError(t, err)
	require.Equal(t, "Operários", perms.Role)
	require.Equal(t, "/pwa/ponto", perms.HomePage)
	require.True(t, perms.Has("ponto:registrar", "write"))

	menu, err := s.MyMenu(t.Context(), "pwa", "/pwa/ponto")
	require.NoError(t, err)
	require.True(t, menu.Visible)
	require.NotEmpty(t, menu.ActiveTrail)
}

func TestGuardAndAudit(t *testing.T) {
	env := setupAcessoContainer(t)
	worker := env.session(t, "op-1", "Operários")
	admin := env.session(t, "root", "Admin")

	d, err := worker.Guard(t.Context(), acessosdk.GuardRequest{Route: "/perfis?perfil=42"})
	require.NoError(t, err)
	require.Equal(t, acessosdk.DecisionRedirect, d.Kind)
	require.Equal(t, "/perfis-permissoes?perfil=42", d.CanonicalRoute)

	d, err = worker.Guard(t.Context(), acessosdk.GuardRequest{Route: "/dashboard/financeiro"})
	require.NoError(t, err)
	require.Equal(t, acessosdk.DecisionDeny, d.Kind)

	require.Eventually(t, func() bool {
		page, err := admin.ListDecisions(t.Context(), acessosdk.ListDecisionsOptions{Subject: "op-1"})
		return err == nil && len(page.Decisions) == 1
	}, 5*time.Second, 100*time.Millisecond)

	_, err = worker.ListDecisions(t.Context(), acessosdk.ListDecisionsOptions{})
	require.True(t, acessosdk.IsCode(err, acessosdk.ErrorCodeInsufficientScope))
}

func TestUnknownRole(t *testing.T) {
	env := setupAcessoContainer(t)

	_, err := env.session(t, "x", "Estagiário").MyPermissions(t.Context(), "")
	require.True(t, acessosdk.IsUnknownRole(err))

	_, err = env.session(t, "root", "Admin").RolePermissions(t.Context(), "Estagiário")
	var apiErr *acessosdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

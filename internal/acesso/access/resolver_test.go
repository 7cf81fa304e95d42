package access_test

import (
	"errors"
	"testing"

	"github.com/gruas/acesso/internal/acesso/access"
	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/stretchr/testify/require"
)

func testResolver(t *testing.T) *access.Resolver {
	t.Helper()
	r, err := access.NewResolver(access.ResolverConfig{
		Roles: []domain.RoleInfo{
			{Name: "Admin", Rank: 10, HomePage: "/pwa"},
			{Name: "Gestores", Rank: 9, HomePage: "/pwa"},
			{Name: "Operários", Rank: 4, HomePage: "/pwa/ponto"},
			{Name: "Financeiro", Rank: 8, HomePage: "/pwa"},
		},
		Aliases: map[string]domain.Role{
			"Administrador": "Admin",
			"Operador":      "Operários",
			"operarios":     "Operários",
		},
		Grants: domain.RolePermissionMap{
			"Admin": {{Permission: "*", Level: domain.LevelAdmin}},
			"Gestores": {
				{Permission: "gruas:*", Level: domain.LevelWrite},
				{Permission: "gruas:visualizar", Level: domain.LevelRead},
				{Permission: "gruas:excluir", Level: domain.LevelAdmin},
				{Permission: "obras:visualizar", Level: domain.LevelRead},
			},
			"Operários": {
				{Permission: "ponto:registrar", Level: domain.LevelWrite},
				{Permission: "ponto:visualizar", Level: domain.LevelRead},
				{Permission: "ponto:visualizar", Level: domain.LevelRead},
				{Permission: "documentos:visualizar", Level: domain.LevelRead},
			},
			"Financeiro": {
				{Permission: "financeiro:visualizar", Level: domain.LevelRead},
			},
		},
		Universe: []domain.Permission{"gruas:visualizar", "gruas:editar", "gruas:excluir", "rh:visualizar"},
		SurfaceGrants: map[domain.Surface]map[domain.Role][]domain.Permission{
			domain.SurfacePWA: {
				"Admin":     {"*"},
				"Operários": {"ponto:*"},
			},
		},
	})
	require.NoError(t, err)
	return r
}

func TestResolveExpandsWildcards(t *testing.T) {
	r := testResolver(t)

	admin, err := r.Resolve("Admin")
	require.NoError(t, err)
	for _, p := range []domain.Permission{"gruas:editar", "rh:visualizar", "ponto:registrar", "financeiro:visualizar"} {
		require.Equal(t, domain.LevelAdmin, admin.Level(p), p)
	}
	for p := range admin {
		require.False(t, p.IsWildcard(), "wildcard leaked into resolved set: %s", p)
	}
}

func TestResolveHighestLevelWins(t *testing.T) {
	r := testResolver(t)

	g, err := r.Resolve("Gestores")
	require.NoError(t, err)
	require.Equal(t, domain.LevelWrite, g.Level("gruas:visualizar"))
	require.Equal(t, domain.LevelAdmin, g.Level("gruas:excluir"))
	require.Equal(t, domain.LevelWrite, g.Level("gruas:editar"))
	require.Equal(t, domain.LevelNone, g.Level("rh:visualizar"))
}

func TestResolveIsDeterministicAndIsolated(t *testing.T) {
	r := testResolver(t)

	for _, info := range r.Roles() {
		a, err := r.Resolve(info.Name)
		require.NoError(t, err)
		require.NotEmpty(t, a, info.Name)
		b, err := r.Resolve(info.Name)
		require.NoError(t, err)
		require.Equal(t, a.Grants(), b.Grants())

		a.Put("hack:everything", domain.LevelAdmin)
		c, err := r.Resolve(info.Name)
		require.NoError(t, err)
		require.False(t, c.Has("hack:everything", domain.LevelRead))
	}
}

func TestResolveUnknownRole(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve("ghost")
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrUnknownRole))

	var ure *domain.UnknownRoleError
	require.True(t, errors.As(err, &ure))
	require.Equal(t, "ghost", ure.Role)
}

func TestNormalize(t *testing.T) {
	r := testResolver(t)

	for in, want := range map[string]domain.Role{
		"Administrador": "Admin",
		"Operador":      "Operários",
		"operarios":     "Operários",
		"Financeiro":    "Financeiro",
		"financeiro":    "Financeiro",
		" Gestores ":    "Gestores",
	} {
		got, err := r.Normalize(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := r.Normalize("Estagiário")
	require.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestResolveSurface(t *testing.T) {
	r := testResolver(t)

	t.Run("allow-list intersects grants", func(t *testing.T) {
		g, err := r.ResolveSurface("Operários", domain.SurfacePWA)
		require.NoError(t, err)
		require.True(t, g.Has("ponto:registrar", domain.LevelWrite))
		require.False(t, g.Has("documentos:visualizar", domain.LevelRead))
	})

	t.Run("role missing from allow-list gets nothing", func(t *testing.T) {
		g, err := r.ResolveSurface("Financeiro", domain.SurfacePWA)
		require.NoError(t, err)
		require.Empty(t, g)
	})

	t.Run("unrestricted surface returns full grants", func(t *testing.T) {
		g, err := r.ResolveSurface("Financeiro", domain.SurfaceDashboard)
		require.NoError(t, err)
		require.True(t, g.Has("financeiro:visualizar", domain.LevelRead))
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := r.ResolveSurface("ghost", domain.SurfacePWA)
		require.ErrorIs(t, err, domain.ErrUnknownRole)
	})
}

func TestRolesAndRanks(t *testing.T) {
	r := testResolver(t)

	roles := r.Roles()
	require.Len(t, roles, 4)
	require.Equal(t, domain.Role("Admin"), roles[0].Name)
	require.Equal(t, domain.Role("Operários"), roles[3].Name)

	require.True(t, r.HasMinRank("Gestores", 9))
	require.False(t, r.HasMinRank("Financeiro", 9))
	require.False(t, r.HasMinRank("ghost", 0))

	home, err := r.HomePage("Operários")
	require.NoError(t, err)
	require.Equal(t, "/pwa/ponto", home)
}

func TestNewResolverRejectsBadConfig(t *testing.T) {
	t.Run("alias to unknown role", func(t *testing.T) {
		_, err := access.NewResolver(access.ResolverConfig{
			Roles:   []domain.RoleInfo{{Name: "Admin", Rank: 10}},
			Aliases: map[string]domain.Role{"root": "Root"},
		})
		require.ErrorIs(t, err, domain.ErrInvalidCatalog)
		require.ErrorIs(t, err, domain.ErrUnknownRole)
	})

	t.Run("malformed permission", func(t *testing.T) {
		_, err := access.NewResolver(access.ResolverConfig{
			Roles:  []domain.RoleInfo{{Name: "Admin", Rank: 10}},
			Grants: domain.RolePermissionMap{"Admin": {{Permission: "gruas", Level: domain.LevelRead}}},
		})
		require.ErrorIs(t, err, domain.ErrInvalidCatalog)
	})

	t.Run("duplicate role", func(t *testing.T) {
		_, err := access.NewResolver(access.ResolverConfig{
			Roles: []domain.RoleInfo{{Name: "Admin", Rank: 10}, {Name: "Admin", Rank: 9}},
		})
		require.ErrorIs(t, err, domain.ErrInvalidCatalog)
	})
}

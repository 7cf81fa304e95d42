package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/stretchr/testify/require"
)

func TestAccessLevelOrderingAndText(t *testing.T) {
	require.Less(t, domain.LevelNone, domain.LevelRead)
	require.Less(t, domain.LevelRead, domain.LevelWrite)
	require.Less(t, domain.LevelWrite, domain.LevelAdmin)

	lvl, err := domain.ParseAccessLevel(" Write ")
	require.NoError(t, err)
	require.Equal(t, domain.LevelWrite, lvl)

	_, err = domain.ParseAccessLevel("owner")
	require.Error(t, err)

	b, err := json.Marshal(domain.Grant{Permission: "gruas:visualizar", Level: domain.LevelAdmin})
	require.NoError(t, err)
	require.JSONEq(t, `{"permission":"gruas:visualizar","level":"admin"}`, string(b))

	var g domain.Grant
	require.NoError(t, json.Unmarshal([]byte(`{"permission":"obras:editar","level":"read"}`), &g))
	require.Equal(t, domain.LevelRead, g.Level)
}

func TestPermissionCovers(t *testing.T) {
	t.Run("global wildcard", func(t *testing.T) {
		require.True(t, domain.Wildcard.Covers("gruas:visualizar"))
	})

	t.Run("module wildcard", func(t *testing.T) {
		p := domain.Permission("gruas:*")
		require.True(t, p.Covers("gruas:editar"))
		require.False(t, p.Covers("obras:editar"))
		require.True(t, p.IsWildcard())
	})

	t.Run("exact", func(t *testing.T) {
		p := domain.Permission("gruas:editar")
		require.True(t, p.Covers("gruas:editar"))
		require.False(t, p.Covers("gruas:visualizar"))
		require.False(t, p.IsWildcard())
		require.Equal(t, "gruas", p.Module())
		require.Equal(t, "editar", p.Action())
	})
}

func TestPermissionValid(t *testing.T) {
	for _, p := range []domain.Permission{"*", "gruas:*", "ponto_eletronico:registrar"} {
		require.True(t, p.Valid(), p)
	}
	for _, p := range []domain.Permission{"", "gruas", ":editar", "gruas:", "*:editar", "a b:c", "a:b:c"} {
		require.False(t, p.Valid(), p)
	}
}

func TestGrantSetKeepsHighestLevel(t *testing.T) {
	g := domain.GrantSet{}
	g.Put("gruas:editar", domain.LevelAdmin)
	g.Put("gruas:editar", domain.LevelRead)
	g.Put("obras:visualizar", domain.LevelRead)
	g.Put("obras:visualizar", domain.LevelWrite)
	g.Put("rh:visualizar", domain.LevelNone)

	require.Equal(t, domain.LevelAdmin, g.Level("gruas:editar"))
	require.Equal(t, domain.LevelWrite, g.Level("obras:visualizar"))
	require.False(t, g.Has("rh:visualizar", domain.LevelNone))
	require.True(t, g.Has("obras:visualizar", domain.LevelRead))
	require.False(t, g.Has("obras:visualizar", domain.LevelAdmin))

	grants := g.Grants()
	require.Len(t, grants, 2)
	require.Equal(t, domain.Permission("gruas:editar"), grants[0].Permission)
	require.Equal(t, domain.Permission("obras:visualizar"), grants[1].Permission)
}

func TestRequirementSatisfiedBy(t *testing.T) {
	g := domain.GrantSet{"ponto:visualizar": domain.LevelRead}

	require.True(t, domain.Requirement{}.SatisfiedBy(nil))

	anyOf := domain.Requirement{Permissions: []domain.Permission{"ponto:visualizar", "ponto_eletronico:visualizar"}}
	require.True(t, anyOf.SatisfiedBy(g))

	allOf := anyOf
	allOf.All = true
	require.False(t, allOf.SatisfiedBy(g))

	admin := domain.Requirement{Permissions: []domain.Permission{"ponto:visualizar"}, Level: domain.LevelAdmin}
	require.False(t, admin.SatisfiedBy(g))
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	var err error = &domain.UnknownRoleError{Role: "ghost"}
	require.True(t, errors.Is(err, domain.ErrUnknownRole))
	require.Contains(t, err.Error(), "ghost")

	err = &domain.UnknownRouteError{Route: "/nada"}
	require.True(t, errors.Is(err, domain.ErrUnknownRoute))
	require.False(t, errors.Is(err, domain.ErrUnknownRole))
}

func TestMenuEntryCloneIsDeep(t *testing.T) {
	orig := domain.MenuEntry{
		ID: "gruas",
		Children: []domain.MenuEntry{{
			ID:       "gruas-listagem",
			Requires: domain.Requirement{Permissions: []domain.Permission{"gruas:visualizar"}},
		}},
	}
	cp := orig.Clone()
	cp.Children[0].ID = "outra"
	cp.Children[0].Requires.Permissions[0] = "obras:visualizar"

	require.Equal(t, "gruas-listagem", orig.Children[0].ID)
	require.Equal(t, domain.Permission("gruas:visualizar"), orig.Children[0].Requires.Permissions[0])
	require.Nil(t, domain.MenuEntry{ID: "folha"}.Clone().Children)
}

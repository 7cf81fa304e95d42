package access_test

import (
	"testing"

	"github.com/gruas/acesso/internal/acesso/access"
	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/stretchr/testify/require"
)

func need(level domain.AccessLevel, perms ...domain.Permission) domain.Requirement {
	return domain.Requirement{Permissions: perms, Level: level}
}

func sampleMenu() domain.MenuEntry {
	return domain.MenuEntry{
		ID: "root",
		Children: []domain.MenuEntry{
			{ID: "dashboard", Label: "Dashboard", Route: "/dashboard", Exact: true},
			{ID: "cranes", Label: "Cranes", Route: "/dashboard/gruas", Requires: need(domain.LevelRead, "view-cranes")},
			{ID: "finance", Label: "Finance", Route: "/dashboard/financeiro", Requires: need(domain.LevelAdmin, "view-finance")},
		},
	}
}

func ids(entries []domain.MenuEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterMenuOperatorExample(t *testing.T) {
	granted := domain.GrantSet{"view-cranes": domain.LevelRead}

	got, ok := access.FilterMenu(sampleMenu(), granted)
	require.True(t, ok)
	require.Equal(t, []string{"dashboard", "cranes"}, ids(got.Children))
}

func TestFilterMenuLevelMatters(t *testing.T) {
	granted := domain.GrantSet{"view-cranes": domain.LevelRead, "view-finance": domain.LevelWrite}

	got, ok := access.FilterMenu(sampleMenu(), granted)
	require.True(t, ok)
	require.Equal(t, []string{"dashboard", "cranes"}, ids(got.Children))

	granted["view-finance"] = domain.LevelAdmin
	got, ok = access.FilterMenu(sampleMenu(), granted)
	require.True(t, ok)
	require.Equal(t, []string{"dashboard", "cranes", "finance"}, ids(got.Children))
}

func TestFilterMenuPrunesSubtrees(t *testing.T) {
	root := domain.MenuEntry{
		ID: "root",
		Children: []domain.MenuEntry{
			{
				ID: "cranes", Route: "/dashboard/gruas", Requires: need(domain.LevelRead, "gruas:visualizar"),
				Children: []domain.MenuEntry{
					{ID: "list", Route: "/dashboard/gruas", Requires: need(domain.LevelRead, "gruas:visualizar")},
					{ID: "book", Route: "/dashboard/livros-gruas", Requires: need(domain.LevelRead, "livros_gruas:visualizar")},
				},
			},
			{
				ID: "group",
				Children: []domain.MenuEntry{
					{ID: "hr", Route: "/dashboard/rh", Requires: need(domain.LevelRead, "rh:visualizar")},
				},
			},
			{
				ID: "hidden-parent", Route: "/dashboard/estoque", Requires: need(domain.LevelRead, "estoque:visualizar"),
				Children: []domain.MenuEntry{
					{ID: "public-child", Route: "/dashboard/estoque/ajuda"},
				},
			},
		},
	}

	t.Run("child pruned, parent kept", func(t *testing.T) {
		got, ok := access.FilterMenu(root, domain.GrantSet{"gruas:visualizar": domain.LevelRead})
		require.True(t, ok)
		require.Equal(t, []string{"cranes"}, ids(got.Children))
		require.Equal(t, []string{"list"}, ids(got.Children[0].Children))
	})

	t.Run("routeless group with no visible children dropped", func(t *testing.T) {
		got, ok := access.FilterMenu(root, domain.GrantSet{"gruas:visualizar": domain.LevelRead})
		require.True(t, ok)
		require.NotContains(t, ids(got.Children), "group")
	})

	t.Run("pruned parent hides public child", func(t *testing.T) {
		got, ok := access.FilterMenu(root, domain.GrantSet{})
		require.False(t, ok)
		require.Empty(t, got.Children)
	})

	t.Run("static tree untouched", func(t *testing.T) {
		got, ok := access.FilterMenu(root, domain.GrantSet{"gruas:visualizar": domain.LevelRead})
		require.True(t, ok)
		got.Children[0].Label = "mutated"
		got.Children[0].Requires.Permissions[0] = "mutated"
		require.Len(t, root.Children[0].Children, 2)
		require.Empty(t, root.Children[0].Label)
		require.Equal(t, domain.Permission("gruas:visualizar"), root.Children[0].Requires.Permissions[0])
	})
}

func TestFilterMenuIsOrderedSubset(t *testing.T) {
	root := sampleMenu()
	grantSets := []domain.GrantSet{
		{},
		{"view-cranes": domain.LevelRead},
		{"view-finance": domain.LevelAdmin},
		{"view-cranes": domain.LevelAdmin, "view-finance": domain.LevelAdmin},
	}
	var all []string
	root.Walk(func(e domain.MenuEntry, _ []string) bool {
		all = append(all, e.ID)
		return true
	})

	for _, g := range grantSets {
		got, ok := access.FilterMenu(root, g)
		require.True(t, ok)
		var kept []string
		got.Walk(func(e domain.MenuEntry, _ []string) bool {
			kept = append(kept, e.ID)
			return true
		})
		// kept must be a subsequence of all
		i := 0
		for _, id := range all {
			if i < len(kept) && kept[i] == id {
				i++
			}
		}
		require.Equal(t, len(kept), i, "filtered ids %v not an ordered subset of %v", kept, all)
	}
}

func TestFlattenAndFirstRoute(t *testing.T) {
	root := domain.MenuEntry{
		ID: "root",
		Children: []domain.MenuEntry{
			{ID: "a", Route: "/dashboard/gruas", Children: []domain.MenuEntry{
				{ID: "a1", Route: "/dashboard/gruas"},
				{ID: "a2", Route: "/dashboard/livros-gruas"},
			}},
			{ID: "b", Route: "/dashboard/obras"},
		},
	}
	require.Equal(t, []string{"/dashboard/gruas", "/dashboard/livros-gruas", "/dashboard/obras"}, access.Flatten(root))
	require.Equal(t, "/dashboard/gruas", access.FirstRoute(root))
	require.Empty(t, access.FirstRoute(domain.MenuEntry{ID: "empty"}))
}

func TestActiveTrail(t *testing.T) {
	root := domain.MenuEntry{
		ID: "root",
		Children: []domain.MenuEntry{
			{ID: "dashboard", Route: "/dashboard", Exact: true},
			{ID: "gruas", Route: "/dashboard/gruas", Children: []domain.MenuEntry{
				{ID: "listagem", Route: "/dashboard/gruas"},
				{ID: "livro", Route: "/dashboard/livros-gruas"},
			}},
		},
	}

	require.Equal(t, []string{"root", "dashboard"}, access.ActiveTrail(root, "/dashboard"))
	require.Equal(t, []string{"root", "gruas", "listagem"}, access.ActiveTrail(root, "/dashboard/gruas/12?tab=docs"))
	require.Equal(t, []string{"root", "gruas", "livro"}, access.ActiveTrail(root, "/dashboard/livros-gruas"))
	require.Nil(t, access.ActiveTrail(root, "/dashboard/obras"))
	require.Nil(t, access.ActiveTrail(root, "/dashboard/gruas-antigas"))
	require.Nil(t, access.ActiveTrail(root, "not-a-path"))
}

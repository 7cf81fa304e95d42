package domain

import (
	"slices"
	"strings"
)

// Permission is a "module:action" capability, e.g. "gruas:visualizar".
// Role grants may also use the wildcards "*" and "module:*".
type Permission string

const Wildcard Permission = "*"

func (p Permission) String() string { return string(p) }

// Module returns the resource category before the colon.
func (p Permission) Module() string {
	module, _, _ := strings.Cut(string(p), ":")
	return module
}

// Action returns the part after the colon, or "" when there is none.
func (p Permission) Action() string {
	_, action, _ := strings.Cut(string(p), ":")
	return action
}

func (p Permission) IsWildcard() bool {
	return p == Wildcard || p.Action() == "*"
}

// Valid reports whether p is "*", "module:*" or "module:action" with
// non-empty parts and no whitespace.
func (p Permission) Valid() bool {
	if p == Wildcard {
		return true
	}
	module, action, ok := strings.Cut(string(p), ":")
	if !ok || module == "" || action == "" {
		return false
	}
	if strings.ContainsAny(string(p), " \t\r\n") || strings.Contains(action, ":") {
		return false
	}
	return module != "*"
}

// Covers reports whether p, possibly a wildcard, includes q.
func (p Permission) Covers(q Permission) bool {
	switch {
	case p == Wildcard:
		return true
	case p.Action() == "*":
		return p.Module() == q.Module()
	default:
		return p == q
	}
}

type Grant struct {
	Permission Permission  `json:"permission"`
	Level      AccessLevel `json:"level"`
}

// GrantSet maps each permission to the highest level granted for it.
type GrantSet map[Permission]AccessLevel

// Put records a grant, keeping the higher level when p is already present.
// Grants at LevelNone carry nothing and are ignored.
func (g GrantSet) Put(p Permission, level AccessLevel) {
	if level <= LevelNone {
		return
	}
	if cur, ok := g[p]; ok && cur >= level {
		return
	}
	g[p] = level
}

// Level returns the granted level for p, LevelNone when absent.
func (g GrantSet) Level(p Permission) AccessLevel {
	return g[p]
}

// Has reports whether p is granted at atLeast or above.
func (g GrantSet) Has(p Permission, atLeast AccessLevel) bool {
	level, ok := g[p]
	return ok && level >= atLeast
}

// Grants returns the set sorted by permission.
func (g GrantSet) Grants() []Grant {
	out := make([]Grant, 0, len(g))
	for p, level := range g {
		out = append(out, Grant{Permission: p, Level: level})
	}
	slices.SortFunc(out, func(a, b Grant) int {
		return strings.Compare(string(a.Permission), string(b.Permission))
	})
	return out
}

func (g GrantSet) Clone() GrantSet {
	out := make(GrantSet, len(g))
	for p, level := range g {
		out[p] = level
	}
	return out
}

// RolePermissionMap is the grant list per role as written in a catalog,
// wildcards and duplicates included.
type RolePermissionMap map[Role][]Grant

package domain

import "slices"

// Surface names one of the navigation trees a catalog carries.
type Surface string

const (
	SurfaceDashboard Surface = "dashboard"
	SurfacePWA       Surface = "pwa"
)

// Requirement is what a menu entry or route asks of the caller. No
// permissions means public. All selects all-of, otherwise any-of.
type Requirement struct {
	Permissions []Permission `json:"permissions,omitempty"`
	Level       AccessLevel  `json:"level"`
	All         bool         `json:"all,omitempty"`
}

func (r Requirement) Public() bool { return len(r.Permissions) == 0 }

// SatisfiedBy evaluates the requirement against a resolved grant set.
func (r Requirement) SatisfiedBy(g GrantSet) bool {
	if r.Public() {
		return true
	}
	want := max(r.Level, LevelRead)
	if r.All {
		for _, p := range r.Permissions {
			if !g.Has(p, want) {
				return false
			}
		}
		return true
	}
	for _, p := range r.Permissions {
		if g.Has(p, want) {
			return true
		}
	}
	return false
}

func (r Requirement) clone() Requirement {
	r.Permissions = slices.Clone(r.Permissions)
	return r
}

type MenuEntry struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Route       string      `json:"route,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	Description string      `json:"description,omitempty"`
	Exact       bool        `json:"exact,omitempty"` // active only on the identical path
	Requires    Requirement `json:"requires"`
	Children    []MenuEntry `json:"children,omitempty"`
}

// Shallow copies the entry without its children.
func (m MenuEntry) Shallow() MenuEntry {
	m.Requires = m.Requires.clone()
	m.Children = nil
	return m
}

// Clone deep-copies the entry and its descendants.
func (m MenuEntry) Clone() MenuEntry {
	out := m.Shallow()
	if m.Children != nil {
		out.Children = make([]MenuEntry, len(m.Children))
		for i, c := range m.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Walk visits m and its descendants depth first, parents before children.
// The path holds the ids from the root down to the visited entry.
func (m MenuEntry) Walk(fn func(e MenuEntry, path []string) bool) {
	m.walk(nil, fn)
}

func (m MenuEntry) walk(path []string, fn func(MenuEntry, []string) bool) bool {
	path = append(slices.Clip(path), m.ID)
	if !fn(m, path) {
		return false
	}
	for _, c := range m.Children {
		if !c.walk(path, fn) {
			return false
		}
	}
	return true
}

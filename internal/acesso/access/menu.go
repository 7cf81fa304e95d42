package access

import (
	"slices"

	"github.com/gruas/acesso/internal/acesso/domain"
)

// FilterMenu returns the part of root visible to granted. An entry whose
// requirement fails is dropped with its whole subtree. An entry whose
// children were all dropped survives only if it has a route of its own.
// The result shares no memory with root. ok is false when root itself is
// dropped.
func FilterMenu(root domain.MenuEntry, granted domain.GrantSet) (domain.MenuEntry, bool) {
	if !root.Requires.SatisfiedBy(granted) {
		return domain.MenuEntry{}, false
	}
	out := root.Shallow()
	for _, child := range root.Children {
		if kept, ok := FilterMenu(child, granted); ok {
			out.Children = append(out.Children, kept)
		}
	}
	if len(root.Children) > 0 && len(out.Children) == 0 && root.Route == "" {
		return domain.MenuEntry{}, false
	}
	return out, true
}

// Flatten lists the routes of a tree depth first, each once.
func Flatten(root domain.MenuEntry) []string {
	var routes []string
	root.Walk(func(e domain.MenuEntry, _ []string) bool {
		if e.Route != "" && !slices.Contains(routes, e.Route) {
			routes = append(routes, e.Route)
		}
		return true
	})
	return routes
}

// FirstRoute is the first navigable route of a filtered tree, or "".
func FirstRoute(root domain.MenuEntry) string {
	if routes := Flatten(root); len(routes) > 0 {
		return routes[0]
	}
	return ""
}

// ActiveTrail returns the ids from the root down to the entry whose route
// best matches the requested path: the longest matching route, the deeper
// entry on ties. Exact entries match only the identical path. It returns
// nil when nothing matches.
func ActiveTrail(root domain.MenuEntry, requested string) []string {
	rp, ok := canonicalize(requested)
	if !ok {
		return nil
	}
	p := rp.Path
	var best []string
	bestLen := -1
	root.Walk(func(e domain.MenuEntry, trail []string) bool {
		if e.Route == "" {
			return true
		}
		matched := p == e.Route
		if !e.Exact && !matched {
			matched = hasPrefix(p, e.Route)
		}
		if !matched {
			return true
		}
		if l := len(e.Route); l > bestLen || (l == bestLen && len(trail) > len(best)) {
			best, bestLen = slices.Clone(trail), l
		}
		return true
	})
	return best
}

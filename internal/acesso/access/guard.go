package access

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gruas/acesso/internal/acesso/domain"
)

// LegacyMap redirects deprecated path prefixes. No target overlaps any
// source, so a redirect target is never redirected again.
type LegacyMap struct {
	entries []domain.LegacyRedirect // longest From first
}

func NewLegacyMap(redirects []domain.LegacyRedirect) (LegacyMap, error) {
	entries := slices.Clone(redirects)
	for i, r := range entries {
		if !validPattern(r.From) || r.From == "/" {
			return LegacyMap{}, fmt.Errorf("%w: legacy source %q", domain.ErrInvalidRoute, r.From)
		}
		if !validPattern(r.To) {
			return LegacyMap{}, fmt.Errorf("%w: legacy target %q", domain.ErrInvalidRoute, r.To)
		}
		for _, other := range entries[:i] {
			if other.From == r.From {
				return LegacyMap{}, fmt.Errorf("%w: legacy source %q", domain.ErrDuplicateRoute, r.From)
			}
		}
	}
	for _, r := range entries {
		for _, other := range entries {
			if hasPrefix(r.To, other.From) || hasPrefix(other.From, r.To) {
				return LegacyMap{}, fmt.Errorf("%w: %q -> %q overlaps %q", domain.ErrRedirectLoop, r.From, r.To, other.From)
			}
		}
	}
	slices.SortStableFunc(entries, func(a, b domain.LegacyRedirect) int {
		return cmp.Compare(len(b.From), len(a.From))
	})
	return LegacyMap{entries: entries}, nil
}

// Lookup finds the redirect covering p and the remainder of p past its
// source prefix.
func (m LegacyMap) Lookup(p string) (r domain.LegacyRedirect, rest string, ok bool) {
	for _, e := range m.entries {
		if hasPrefix(p, e.From) {
			return e, strings.TrimPrefix(p, e.From), true
		}
	}
	return domain.LegacyRedirect{}, "", false
}

func (m LegacyMap) Redirects() []domain.LegacyRedirect { return slices.Clone(m.entries) }

// RouteTable holds the route rules, longest pattern first and exact rules
// ahead of prefix rules of the same pattern.
type RouteTable struct {
	rules []domain.RouteRule
}

func NewRouteTable(rules []domain.RouteRule) (RouteTable, error) {
	sorted := slices.Clone(rules)
	type key struct {
		pattern string
		exact   bool
	}
	seen := make(map[key]struct{}, len(sorted))
	for _, r := range sorted {
		if !validPattern(r.Pattern) {
			return RouteTable{}, fmt.Errorf("%w: pattern %q", domain.ErrInvalidRoute, r.Pattern)
		}
		k := key{r.Pattern, r.Exact}
		if _, dup := seen[k]; dup {
			return RouteTable{}, fmt.Errorf("%w: %q", domain.ErrDuplicateRoute, r.Pattern)
		}
		seen[k] = struct{}{}
	}
	slices.SortStableFunc(sorted, func(a, b domain.RouteRule) int {
		if c := cmp.Compare(len(b.Pattern), len(a.Pattern)); c != 0 {
			return c
		}
		switch {
		case a.Exact && !b.Exact:
			return -1
		case b.Exact && !a.Exact:
			return 1
		}
		return 0
	})
	return RouteTable{rules: sorted}, nil
}

// Match returns the rule covering a canonical path.
func (t RouteTable) Match(p string) (domain.RouteRule, bool) {
	for _, r := range t.rules {
		if r.Exact {
			if p == r.Pattern {
				return r, true
			}
			continue
		}
		if hasPrefix(p, r.Pattern) {
			return r, true
		}
	}
	return domain.RouteRule{}, false
}

func (t RouteTable) Rules() []domain.RouteRule { return slices.Clone(t.rules) }

// LookupRule returns the rule protecting requested, *domain.UnknownRouteError
// when none does.
func LookupRule(routes RouteTable, requested string) (domain.RouteRule, error) {
	rp, ok := canonicalize(requested)
	if !ok {
		return domain.RouteRule{}, fmt.Errorf("%w: %q", domain.ErrInvalidRoute, requested)
	}
	rule, ok := routes.Match(rp.Path)
	if !ok {
		return domain.RouteRule{}, &domain.UnknownRouteError{Route: rp.Path}
	}
	return rule, nil
}

// Guard decides whether a route may be opened with the given grants. Legacy
// prefixes redirect before any permission is checked; unknown routes are
// denied. Rank limits are not applied; see Guardian.Check.
func Guard(requested string, granted domain.GrantSet, legacy LegacyMap, routes RouteTable) domain.Decision {
	return guard(requested, granted, -1, legacy, routes)
}

// guard skips rank checks when rank is negative.
func guard(requested string, granted domain.GrantSet, rank int, legacy LegacyMap, routes RouteTable) domain.Decision {
	rp, ok := canonicalize(requested)
	if !ok {
		return domain.Deny(requested, "", domain.ReasonInvalidRoute)
	}

	// Matching uses the decoded path; the target keeps the request's own
	// escapes so path data never leaks into the query.
	if r, rest, ok := legacy.Lookup(rp.Path); ok {
		target := r.To + rawRest(rp.RawPath, r.From, rest)
		if rp.Query != "" {
			target += "?" + rp.Query
		}
		return domain.Redirect(requested, target, r.From)
	}

	rule, ok := routes.Match(rp.Path)
	if !ok {
		return domain.Deny(requested, "", domain.ReasonUnknownRoute)
	}
	if !rule.Requires.SatisfiedBy(granted) {
		return domain.Deny(requested, rule.Pattern, domain.ReasonMissingPermission)
	}
	if rank >= 0 && rule.MinRank > 0 && rank < rule.MinRank {
		return domain.Deny(requested, rule.Pattern, domain.ReasonInsufficientRank)
	}
	return domain.Allow(requested, rule.Pattern)
}

// Guardian guards routes for a role, applying rank limits on top of Guard.
type Guardian struct {
	resolver *Resolver
	legacy   LegacyMap
	routes   RouteTable
}

func NewGuardian(resolver *Resolver, legacy LegacyMap, routes RouteTable) *Guardian {
	return &Guardian{resolver: resolver, legacy: legacy, routes: routes}
}

func (g *Guardian) Check(role domain.Role, requested string) (domain.Decision, error) {
	granted, err := g.resolver.Resolve(role)
	if err != nil {
		return domain.Decision{}, err
	}
	rank, err := g.resolver.Rank(role)
	if err != nil {
		return domain.Decision{}, err
	}
	return guard(requested, granted, rank, g.legacy, g.routes), nil
}

// CheckSurface guards with the grants a role holds on one surface.
func (g *Guardian) CheckSurface(role domain.Role, surface domain.Surface, requested string) (domain.Decision, error) {
	granted, err := g.resolver.ResolveSurface(role, surface)
	if err != nil {
		return domain.Decision{}, err
	}
	rank, err := g.resolver.Rank(role)
	if err != nil {
		return domain.Decision{}, err
	}
	return guard(requested, granted, rank, g.legacy, g.routes), nil
}

func (g *Guardian) Legacy() LegacyMap  { return g.legacy }
func (g *Guardian) Routes() RouteTable { return g.routes }

package access

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gruas/acesso/internal/acesso/domain"
)

type ResolverConfig struct {
	Roles   []domain.RoleInfo
	Aliases map[string]domain.Role
	Grants  domain.RolePermissionMap

	// Universe lists the concrete permissions wildcards expand against.
	// Non-wildcard grants are added to it automatically.
	Universe []domain.Permission

	// SurfaceGrants restricts a surface to an allow-list per role. A surface
	// with no entry here exposes the full role grants.
	SurfaceGrants map[domain.Surface]map[domain.Role][]domain.Permission
}

// Resolver turns role names into grant sets. It is built once and safe for
// concurrent use.
type Resolver struct {
	roles    map[domain.Role]domain.RoleInfo
	aliases  map[string]domain.Role
	grants   map[domain.Role]domain.GrantSet
	surfaces map[domain.Surface]map[domain.Role]domain.GrantSet
	universe []domain.Permission
}

func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	r := &Resolver{
		roles:    make(map[domain.Role]domain.RoleInfo, len(cfg.Roles)),
		aliases:  make(map[string]domain.Role, len(cfg.Aliases)),
		grants:   make(map[domain.Role]domain.GrantSet, len(cfg.Roles)),
		surfaces: make(map[domain.Surface]map[domain.Role]domain.GrantSet, len(cfg.SurfaceGrants)),
	}

	for _, info := range cfg.Roles {
		if info.Name == "" {
			return nil, fmt.Errorf("%w: role with empty name", domain.ErrInvalidCatalog)
		}
		if _, dup := r.roles[info.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate role %q", domain.ErrInvalidCatalog, info.Name)
		}
		r.roles[info.Name] = info
	}

	for alias, target := range cfg.Aliases {
		if _, ok := r.roles[target]; !ok {
			return nil, fmt.Errorf("%w: alias %q targets %w", domain.ErrInvalidCatalog, alias, &domain.UnknownRoleError{Role: string(target)})
		}
		r.aliases[alias] = target
	}

	r.universe = universeOf(cfg.Universe, cfg.Grants)

	for role, grants := range cfg.Grants {
		if _, ok := r.roles[role]; !ok {
			return nil, fmt.Errorf("%w: grants for %w", domain.ErrInvalidCatalog, &domain.UnknownRoleError{Role: string(role)})
		}
		set := domain.GrantSet{}
		for _, g := range grants {
			if !g.Permission.Valid() {
				return nil, fmt.Errorf("%w: role %q grants malformed permission %q", domain.ErrInvalidCatalog, role, g.Permission)
			}
			if !g.Permission.IsWildcard() {
				set.Put(g.Permission, g.Level)
				continue
			}
			for _, p := range r.universe {
				if g.Permission.Covers(p) {
					set.Put(p, g.Level)
				}
			}
		}
		r.grants[role] = set
	}
	for role := range r.roles {
		if _, ok := r.grants[role]; !ok {
			r.grants[role] = domain.GrantSet{}
		}
	}

	for surface, perRole := range cfg.SurfaceGrants {
		compiled := make(map[domain.Role]domain.GrantSet, len(perRole))
		for role, allow := range perRole {
			full, ok := r.grants[role]
			if !ok {
				return nil, fmt.Errorf("%w: %s allow-list for %w", domain.ErrInvalidCatalog, surface, &domain.UnknownRoleError{Role: string(role)})
			}
			compiled[role] = intersect(full, allow)
		}
		r.surfaces[surface] = compiled
	}

	return r, nil
}

func universeOf(declared []domain.Permission, grants domain.RolePermissionMap) []domain.Permission {
	seen := make(map[domain.Permission]struct{}, len(declared))
	var out []domain.Permission
	add := func(p domain.Permission) {
		if p.IsWildcard() || !p.Valid() {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range declared {
		add(p)
	}
	for _, gs := range grants {
		for _, g := range gs {
			add(g.Permission)
		}
	}
	slices.Sort(out)
	return out
}

func intersect(full domain.GrantSet, allow []domain.Permission) domain.GrantSet {
	out := domain.GrantSet{}
	for p, level := range full {
		for _, a := range allow {
			if a.Covers(p) {
				out.Put(p, level)
				break
			}
		}
	}
	return out
}

// Normalize maps a role name as found in tokens or legacy data onto a
// canonical role: aliases first, then exact and case-insensitive matches.
func (r *Resolver) Normalize(name string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if role, ok := r.aliases[name]; ok {
		return role, nil
	}
	if _, ok := r.roles[domain.Role(name)]; ok {
		return domain.Role(name), nil
	}
	for role := range r.roles {
		if strings.EqualFold(string(role), name) {
			return role, nil
		}
	}
	return "", &domain.UnknownRoleError{Role: name}
}

// Resolve returns the complete grant set of a role. The returned set is a
// copy the caller may modify.
func (r *Resolver) Resolve(role domain.Role) (domain.GrantSet, error) {
	set, ok := r.grants[role]
	if !ok {
		return nil, &domain.UnknownRoleError{Role: string(role)}
	}
	return set.Clone(), nil
}

// ResolveSurface returns the grants a role holds on one surface. A role
// missing from a restricted surface gets an empty set.
func (r *Resolver) ResolveSurface(role domain.Role, surface domain.Surface) (domain.GrantSet, error) {
	full, ok := r.grants[role]
	if !ok {
		return nil, &domain.UnknownRoleError{Role: string(role)}
	}
	perRole, restricted := r.surfaces[surface]
	if !restricted {
		return full.Clone(), nil
	}
	if set, ok := perRole[role]; ok {
		return set.Clone(), nil
	}
	return domain.GrantSet{}, nil
}

func (r *Resolver) Info(role domain.Role) (domain.RoleInfo, error) {
	info, ok := r.roles[role]
	if !ok {
		return domain.RoleInfo{}, &domain.UnknownRoleError{Role: string(role)}
	}
	return info, nil
}

func (r *Resolver) Rank(role domain.Role) (int, error) {
	info, err := r.Info(role)
	return info.Rank, err
}

func (r *Resolver) HasMinRank(role domain.Role, rank int) bool {
	info, ok := r.roles[role]
	return ok && info.Rank >= rank
}

func (r *Resolver) HomePage(role domain.Role) (string, error) {
	info, err := r.Info(role)
	return info.HomePage, err
}

// Universe lists every concrete permission the resolver knows, sorted.
func (r *Resolver) Universe() []domain.Permission {
	return slices.Clone(r.universe)
}

// Roles lists the catalog roles, highest rank first.
func (r *Resolver) Roles() []domain.RoleInfo {
	out := make([]domain.RoleInfo, 0, len(r.roles))
	for _, info := range r.roles {
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b domain.RoleInfo) int {
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		return strings.Compare(string(a.Name), string(b.Name))
	})
	return out
}

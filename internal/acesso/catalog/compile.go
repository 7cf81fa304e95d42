package catalog

import (
	"fmt"
	"slices"

	"github.com/gruas/acesso/internal/acesso/access"
	"github.com/gruas/acesso/internal/acesso/domain"
)

// Model is a compiled catalog. It is immutable and safe to share.
type Model struct {
	Resolver *access.Resolver
	Guardian *access.Guardian
	Legacy   access.LegacyMap
	Routes   access.RouteTable
	Universe []domain.Permission

	menus map[domain.Surface]domain.MenuEntry
}

// Menu returns a copy of the static tree of a surface.
func (m *Model) Menu(surface domain.Surface) (domain.MenuEntry, error) {
	root, ok := m.menus[surface]
	if !ok {
		return domain.MenuEntry{}, fmt.Errorf("%w: %q", domain.ErrUnknownSurface, surface)
	}
	return root.Clone(), nil
}

func (m *Model) Surfaces() []domain.Surface {
	out := make([]domain.Surface, 0, len(m.menus))
	for s := range m.menus {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// LoadModel reads, validates and compiles a catalog file. An empty path
// selects the embedded default.
func LoadModel(path string) (*Model, error) {
	if path == "" {
		return Compile(Default())
	}
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}

// Compile validates doc and builds the evaluation model. Any structural
// problem is reported wrapped in domain.ErrInvalidCatalog.
func Compile(doc *Document) (*Model, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	roles := make([]domain.RoleInfo, 0, len(doc.Roles))
	grants := make(domain.RolePermissionMap, len(doc.Roles))
	for _, r := range doc.Roles {
		if r.Grants.empty() {
			return nil, fmt.Errorf("%w: role %q grants nothing", domain.ErrInvalidCatalog, r.Name)
		}
		name := domain.Role(r.Name)
		roles = append(roles, domain.RoleInfo{
			Name:        name,
			Rank:        r.Rank,
			Description: r.Description,
			HomePage:    r.HomePage,
		})
		grants[name] = compileGrants(r.Grants)
	}

	aliases := make(map[string]domain.Role, len(doc.Aliases))
	for alias, target := range doc.Aliases {
		aliases[alias] = domain.Role(target)
	}

	menus := make(map[domain.Surface]domain.MenuEntry, len(doc.Surfaces))
	surfaceGrants := make(map[domain.Surface]map[domain.Role][]domain.Permission)
	var universe []domain.Permission
	for _, p := range doc.Permissions {
		universe = append(universe, domain.Permission(p))
	}

	// Sorted so errors are reported deterministically.
	surfaceNames := make([]string, 0, len(doc.Surfaces))
	for name := range doc.Surfaces {
		surfaceNames = append(surfaceNames, name)
	}
	slices.Sort(surfaceNames)

	for _, name := range surfaceNames {
		s := doc.Surfaces[name]
		surface := domain.Surface(name)
		root, err := compileMenu(s.Menu, map[string]struct{}{})
		if err != nil {
			return nil, fmt.Errorf("%w: surface %s: %w", domain.ErrInvalidCatalog, name, err)
		}
		menus[surface] = root
		root.Walk(func(e domain.MenuEntry, _ []string) bool {
			universe = append(universe, e.Requires.Permissions...)
			return true
		})
		if s.Allow != nil {
			perRole := make(map[domain.Role][]domain.Permission, len(s.Allow))
			for role, perms := range s.Allow {
				list := make([]domain.Permission, 0, len(perms))
				for _, p := range perms {
					list = append(list, domain.Permission(p))
				}
				perRole[domain.Role(role)] = list
			}
			surfaceGrants[surface] = perRole
		}
	}

	rules := make([]domain.RouteRule, 0, len(doc.Routes))
	for _, r := range doc.Routes {
		req, err := compileRequirement(r.Requires)
		if err != nil {
			return nil, fmt.Errorf("%w: route %s: %w", domain.ErrInvalidCatalog, r.Pattern, err)
		}
		universe = append(universe, req.Permissions...)
		rules = append(rules, domain.RouteRule{
			Pattern:  r.Pattern,
			Exact:    r.Exact,
			Requires: req,
			MinRank:  r.MinRank,
		})
	}

	resolver, err := access.NewResolver(access.ResolverConfig{
		Roles:         roles,
		Aliases:       aliases,
		Grants:        grants,
		Universe:      universe,
		SurfaceGrants: surfaceGrants,
	})
	if err != nil {
		return nil, err
	}

	routes, err := access.NewRouteTable(rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}

	redirects := make([]domain.LegacyRedirect, 0, len(doc.Legacy))
	for _, l := range doc.Legacy {
		redirects = append(redirects, domain.LegacyRedirect{From: l.From, To: l.To})
	}
	legacy, err := access.NewLegacyMap(redirects)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}

	return &Model{
		Resolver: resolver,
		Guardian: access.NewGuardian(resolver, legacy, routes),
		Legacy:   legacy,
		Routes:   routes,
		Universe: resolver.Universe(),
		menus:    menus,
	}, nil
}

func compileGrants(g GrantsDoc) []domain.Grant {
	out := make([]domain.Grant, 0, len(g.Read)+len(g.Write)+len(g.Admin))
	add := func(perms []string, level domain.AccessLevel) {
		for _, p := range perms {
			out = append(out, domain.Grant{Permission: domain.Permission(p), Level: level})
		}
	}
	add(g.Read, domain.LevelRead)
	add(g.Write, domain.LevelWrite)
	add(g.Admin, domain.LevelAdmin)
	return out
}

func compileRequirement(r RequirementDoc) (domain.Requirement, error) {
	req := domain.Requirement{All: r.All}
	for _, p := range r.Permissions {
		req.Permissions = append(req.Permissions, domain.Permission(p))
	}
	if len(req.Permissions) == 0 {
		return req, nil
	}
	req.Level = domain.LevelRead
	if r.Level != "" {
		level, err := domain.ParseAccessLevel(r.Level)
		if err != nil {
			return domain.Requirement{}, err
		}
		req.Level = level
	}
	return req, nil
}

func compileMenu(m MenuDoc, seen map[string]struct{}) (domain.MenuEntry, error) {
	if _, dup := seen[m.ID]; dup {
		return domain.MenuEntry{}, fmt.Errorf("%w: %q", domain.ErrDuplicateMenuID, m.ID)
	}
	seen[m.ID] = struct{}{}

	req, err := compileRequirement(m.Requires)
	if err != nil {
		return domain.MenuEntry{}, fmt.Errorf("menu %s: %w", m.ID, err)
	}
	entry := domain.MenuEntry{
		ID:          m.ID,
		Label:       m.Label,
		Route:       m.Route,
		Icon:        m.Icon,
		Description: m.Description,
		Exact:       m.Exact,
		Requires:    req,
	}
	for _, c := range m.Children {
		child, err := compileMenu(c, seen)
		if err != nil {
			return domain.MenuEntry{}, err
		}
		entry.Children = append(entry.Children, child)
	}
	return entry, nil
}

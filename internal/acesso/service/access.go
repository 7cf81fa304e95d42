package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gruas/acesso/internal/acesso/access"
	"github.com/gruas/acesso/internal/acesso/catalog"
	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/gruas/acesso/internal/acesso/metrics"
)

// Principal is the verified caller: token subject plus the raw role claim.
type Principal struct {
	Subject string
	Role    string
}

// Permissions is a role's resolved grant set, optionally narrowed to a surface.
type Permissions struct {
	Role     domain.Role
	Rank     int
	HomePage string
	Surface  domain.Surface // empty for the unrestricted set
	Grants   []domain.Grant
}

// MenuView is a filtered navigation tree. Visible is false when nothing of
// the tree survived; Menu is then the zero entry.
type MenuView struct {
	Surface     domain.Surface
	Visible     bool
	Menu        domain.MenuEntry
	FirstRoute  string
	ActiveTrail []string
}

// AccessService answers permission, menu and guard questions against one
// compiled catalog.
type AccessService struct {
	Model    *catalog.Model
	Recorder *DecisionRecorder // optional; receives deny decisions
	Logger   *slog.Logger
}

func NewAccessService(model *catalog.Model, recorder *DecisionRecorder, logger *slog.Logger) *AccessService {
	return &AccessService{Model: model, Recorder: recorder, Logger: logger}
}

// normalize resolves a raw role name, counting unknown ones.
func (s *AccessService) normalize(name string) (domain.Role, error) {
	role, err := s.Model.Resolver.Normalize(name)
	if err != nil {
		metrics.UnknownRolesTotal.Inc()
		return "", err
	}
	return role, nil
}

func (s *AccessService) grants(role domain.Role, surface domain.Surface) (domain.GrantSet, error) {
	if surface == "" {
		return s.Model.Resolver.Resolve(role)
	}
	if _, err := s.Model.Menu(surface); err != nil {
		return nil, err
	}
	return s.Model.Resolver.ResolveSurface(role, surface)
}

// Permissions resolves roleName. An empty surface returns the full set.
func (s *AccessService) Permissions(ctx context.Context, roleName string, surface domain.Surface) (Permissions, error) {
	role, err := s.normalize(roleName)
	if err != nil {
		return Permissions{}, err
	}
	set, err := s.grants(role, surface)
	if err != nil {
		return Permissions{}, err
	}
	info, err := s.Model.Resolver.Info(role)
	if err != nil {
		return Permissions{}, err
	}
	return Permissions{
		Role:     role,
		Rank:     info.Rank,
		HomePage: info.HomePage,
		Surface:  surface,
		Grants:   set.Grants(),
	}, nil
}

// RolePermissions resolves a role by name for catalog inspection.
func (s *AccessService) RolePermissions(ctx context.Context, roleName string) (Permissions, error) {
	return s.Permissions(ctx, roleName, "")
}

// Menu filters the surface's tree for roleName. When active is a path, the
// ids of the entries leading to it are returned as ActiveTrail.
func (s *AccessService) Menu(ctx context.Context, roleName string, surface domain.Surface, active string) (MenuView, error) {
	if surface == "" {
		surface = domain.SurfaceDashboard
	}
	role, err := s.normalize(roleName)
	if err != nil {
		return MenuView{}, err
	}
	root, err := s.Model.Menu(surface)
	if err != nil {
		return MenuView{}, err
	}
	set, err := s.Model.Resolver.ResolveSurface(role, surface)
	if err != nil {
		return MenuView{}, err
	}

	view := MenuView{Surface: surface}
	filtered, ok := access.FilterMenu(root, set)
	if !ok {
		return view, nil
	}
	view.Visible = true
	view.Menu = filtered
	view.FirstRoute = access.FirstRoute(filtered)
	if active != "" {
		view.ActiveTrail = access.ActiveTrail(filtered, active)
	}
	return view, nil
}

// Guard decides whether p may open route. Deny decisions are counted and
// handed to the recorder.
func (s *AccessService) Guard(ctx context.Context, p Principal, route string, surface domain.Surface) (domain.Decision, error) {
	role, err := s.normalize(p.Role)
	if err != nil {
		return domain.Decision{}, err
	}

	var d domain.Decision
	if surface == "" {
		d, err = s.Model.Guardian.Check(role, route)
	} else {
		if _, err := s.Model.Menu(surface); err != nil {
			return domain.Decision{}, err
		}
		d, err = s.Model.Guardian.CheckSurface(role, surface, route)
	}
	if err != nil {
		return domain.Decision{}, err
	}

	metrics.DecisionsTotal.WithLabelValues(string(d.Kind), d.Reason).Inc()
	if d.Kind == domain.DecisionDeny {
		s.Logger.Debug("route denied", "role", role, "route", route, "reason", d.Reason)
		if s.Recorder != nil {
			s.Recorder.Record(p.Subject, role, d)
		}
	}
	return d, nil
}

// Roles lists the catalog roles, highest rank first.
func (s *AccessService) Roles(ctx context.Context) []domain.RoleInfo {
	return s.Model.Resolver.Roles()
}

// HomePage returns the PWA landing page of roleName.
func (s *AccessService) HomePage(roleName string) (string, error) {
	role, err := s.normalize(roleName)
	if err != nil {
		return "", err
	}
	return s.Model.Resolver.HomePage(role)
}

// HasPermission reports whether roleName holds permission at level or
// above. It satisfies httpx.PermissionChecker.
func (s *AccessService) HasPermission(roleName, permission, level string) (bool, error) {
	role, err := s.normalize(roleName)
	if err != nil {
		return false, err
	}
	lvl := domain.LevelRead
	if level != "" {
		if lvl, err = domain.ParseAccessLevel(level); err != nil {
			return false, err
		}
	}
	p := domain.Permission(permission)
	if !p.Valid() || p.IsWildcard() {
		return false, errors.New("service: permission must be concrete")
	}
	set, err := s.Model.Resolver.Resolve(role)
	if err != nil {
		return false, err
	}
	return set.Has(p, max(lvl, domain.LevelRead)), nil
}

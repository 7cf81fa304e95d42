package http

import (
	"errors"
	"net/http"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/gruas/acesso/internal/acesso/service"
	"github.com/gruas/acesso/pkg/acessosdk"
	"github.com/gruas/acesso/pkg/httpx"
	"github.com/gruas/acesso/pkg/slogx"
)

func toPermissionsResponse(p service.Permissions) acessosdk.PermissionsResponse {
	out := acessosdk.PermissionsResponse{
		Role:        string(p.Role),
		Rank:        p.Rank,
		HomePage:    p.HomePage,
		Surface:     string(p.Surface),
		Permissions: make([]acessosdk.Grant, len(p.Grants)),
	}
	for i, g := range p.Grants {
		out.Permissions[i] = acessosdk.Grant{Permission: string(g.Permission), Level: g.Level.String()}
	}
	return out
}

func toMenuItem(e domain.MenuEntry) acessosdk.MenuItem {
	item := acessosdk.MenuItem{
		ID:          e.ID,
		Label:       e.Label,
		Route:       e.Route,
		Icon:        e.Icon,
		Description: e.Description,
		Exact:       e.Exact,
	}
	if len(e.Children) > 0 {
		item.Children = make([]acessosdk.MenuItem, len(e.Children))
		for i, c := range e.Children {
			item.Children[i] = toMenuItem(c)
		}
	}
	return item
}

func toMenuResponse(v service.MenuView) acessosdk.MenuResponse {
	out := acessosdk.MenuResponse{
		Surface:     string(v.Surface),
		Visible:     v.Visible,
		FirstRoute:  v.FirstRoute,
		ActiveTrail: v.ActiveTrail,
	}
	if v.Visible {
		root := toMenuItem(v.Menu)
		out.Menu = &root
	}
	return out
}

func toGuardResponse(d domain.Decision) acessosdk.GuardResponse {
	return acessosdk.GuardResponse{
		Kind:           string(d.Kind),
		Route:          d.Route,
		CanonicalRoute: d.CanonicalRoute,
		MatchedPattern: d.MatchedPattern,
		Reason:         d.Reason,
	}
}

func toRoleInfo(r domain.RoleInfo) acessosdk.RoleInfo {
	return acessosdk.RoleInfo{
		Name:        string(r.Name),
		Rank:        r.Rank,
		Description: r.Description,
		HomePage:    r.HomePage,
	}
}

func toDecisionRecord(r domain.DecisionRecord) acessosdk.DecisionRecord {
	return acessosdk.DecisionRecord{
		ID:          r.ID,
		SubjectHash: r.SubjectHash,
		Role:        string(r.Role),
		Route:       r.Route,
		Kind:        string(r.Kind),
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt,
	}
}

// writeCallerError maps service errors for requests about the caller's own
// role. An unknown role in a verified token is a 403: the token is fine
// but grants nothing.
func writeCallerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownRole):
		slogx.FromContext(r.Context()).Warn("token role not in catalog", "role", httpx.RoleFromContext(r.Context()))
		httpx.WriteError(w, http.StatusForbidden, acessosdk.ErrorCodeUnknownRole, err.Error())
	case errors.Is(err, domain.ErrUnknownSurface):
		httpx.WriteError(w, http.StatusBadRequest, acessosdk.ErrorCodeUnknownSurface, err.Error())
	case errors.Is(err, domain.ErrInvalidRoute):
		httpx.WriteError(w, http.StatusBadRequest, acessosdk.ErrorCodeInvalidRequest, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, acessosdk.ErrorCodeServerError, "internal server error")
	}
}

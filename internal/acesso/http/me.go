package http

import (
	"net/http"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/gruas/acesso/internal/acesso/service"
	"github.com/gruas/acesso/pkg/httpx"
)

type PermissionsHandler struct {
	AccessService *service.AccessService
}

// ServeHTTP returns the caller's resolved permissions
//
//	@Summary		Caller permissions
//	@Description	Resolves the token's role (aliases included) into concrete permissions with levels.
//	@Description	With surface set, the set is narrowed to what the role may use on that surface.
//	@Tags			Access
//	@Produce		json
//	@Param			surface	query		string								false	"dashboard or pwa"
//	@Success		200		{object}	acessosdk.PermissionsResponse		"Resolved grants"
//	@Failure		400		{object}	acessosdk.ErrorResponse				"Unknown surface"
//	@Failure		401		{object}	acessosdk.ErrorResponse				"Missing or invalid token"
//	@Failure		403		{object}	acessosdk.ErrorResponse				"Role not in catalog"
//	@Security		BearerAuth
//	@Router			/v1/me/permissions [get].
func (h *PermissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	surface := domain.Surface(r.URL.Query().Get("surface"))

	p, err := h.AccessService.Permissions(ctx, httpx.RoleFromContext(ctx), surface)
	if err != nil {
		writeCallerError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPermissionsResponse(p))
}

type MenuHandler struct {
	AccessService *service.AccessService
}

// ServeHTTP returns the caller's navigation tree
//
//	@Summary		Caller menu
//	@Description	Filters the surface's menu down to the entries the caller may open. Groups whose
//	@Description	children are all hidden disappear. active, when given, yields the trail of entry ids to highlight.
//	@Tags			Access
//	@Produce		json
//	@Param			surface	query		string						false	"dashboard (default) or pwa"
//	@Param			active	query		string						false	"current path"
//	@Success		200		{object}	acessosdk.MenuResponse		"Filtered menu"
//	@Failure		400		{object}	acessosdk.ErrorResponse		"Unknown surface"
//	@Failure		401		{object}	acessosdk.ErrorResponse		"Missing or invalid token"
//	@Failure		403		{object}	acessosdk.ErrorResponse		"Role not in catalog"
//	@Security		BearerAuth
//	@Router			/v1/me/menu [get].
func (h *MenuHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	view, err := h.AccessService.Menu(ctx, httpx.RoleFromContext(ctx), domain.Surface(q.Get("surface")), q.Get("active"))
	if err != nil {
		writeCallerError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMenuResponse(view))
}

package http

import (
	"net/http"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/gruas/acesso/internal/acesso/service"
	"github.com/gruas/acesso/pkg/acessosdk"
	"github.com/gruas/acesso/pkg/httpx"
)

type GuardHandler struct {
	AccessService *service.AccessService
}

// ServeHTTP decides whether the caller may open a route
//
//	@Summary		Guard a route
//	@Description	Returns allow, deny or redirect for the requested route. Legacy routes redirect to their
//	@Description	canonical form with the query preserved. Unknown routes are denied. All three kinds answer 200.
//	@Tags			Access
//	@Produce		json
//	@Param			route	query		string						true	"path with optional query"
//	@Param			surface	query		string						false	"restrict to a surface's grants"
//	@Success		200		{object}	acessosdk.GuardResponse		"Decision"
//	@Failure		400		{object}	acessosdk.ErrorResponse		"Missing route or unknown surface"
//	@Failure		401		{object}	acessosdk.ErrorResponse		"Missing or invalid token"
//	@Failure		403		{object}	acessosdk.ErrorResponse		"Role not in catalog"
//	@Security		BearerAuth
//	@Router			/v1/guard [get].
func (h *GuardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	route := q.Get("route")
	if route == "" {
		httpx.WriteError(w, http.StatusBadRequest, acessosdk.ErrorCodeInvalidRequest, "route is required")
		return
	}

	p := service.Principal{
		Subject: httpx.SubjectFromContext(ctx),
		Role:    httpx.RoleFromContext(ctx),
	}
	d, err := h.AccessService.Guard(ctx, p, route, domain.Surface(q.Get("surface")))
	if err != nil {
		writeCallerError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGuardResponse(d))
}

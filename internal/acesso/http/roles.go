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

type RolesHandler struct {
	AccessService *service.AccessService
}

// ServeHTTP handles the list roles endpoint
//
//	@Summary		List all roles
//	@Description	Returns the catalog roles, highest rank first. Requires perfis:visualizar.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	acessosdk.ListRolesResponse	"List of roles"
//	@Failure		401	{object}	acessosdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	acessosdk.ErrorResponse		"Forbidden - missing required permission"
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	roles := h.AccessService.Roles(r.Context())

	response := acessosdk.ListRolesResponse{
		Roles: make([]acessosdk.RoleInfo, len(roles)),
	}
	for i, role := range roles {
		response.Roles[i] = toRoleInfo(role)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

type RolePermissionsHandler struct {
	AccessService *service.AccessService
}

// ServeHTTP resolves an arbitrary role by name
//
//	@Summary		Resolve a role
//	@Description	Resolves a role or alias into its permissions. Requires perfis:visualizar.
//	@Tags			Roles
//	@Produce		json
//	@Param			role	path		string							true	"role name or alias"
//	@Success		200		{object}	acessosdk.PermissionsResponse	"Resolved grants"
//	@Failure		401		{object}	acessosdk.ErrorResponse			"Unauthorized - missing or invalid token"
//	@Failure		403		{object}	acessosdk.ErrorResponse			"Forbidden - missing required permission"
//	@Failure		404		{object}	acessosdk.ErrorResponse			"Unknown role"
//	@Security		BearerAuth
//	@Router			/v1/roles/{role}/permissions [get].
func (h *RolePermissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.AccessService.RolePermissions(ctx, r.PathValue("role"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRole) {
			httpx.WriteError(w, http.StatusNotFound, acessosdk.ErrorCodeUnknownRole, err.Error())
			return
		}
		slogx.FromContext(ctx).Error("failed to resolve role", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, acessosdk.ErrorCodeServerError, "internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPermissionsResponse(p))
}

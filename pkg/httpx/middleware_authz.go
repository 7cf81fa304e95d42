package httpx

import (
	"net/http"

	"github.com/gruas/acesso/pkg/slogx"
)

// PermissionChecker answers whether a raw role name holds permission at
// level or above. An error means the role could not be resolved.
type PermissionChecker interface {
	HasPermission(role, permission, level string) (bool, error)
}

// RequirePermission lets the request through only when the caller's role
// grants permission at level or above. It must run after AuthnMiddleware.
func RequirePermission(checker PermissionChecker, permission, level string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			role := RoleFromContext(ctx)

			ok, err := checker.HasPermission(role, permission, level)
			if err != nil {
				slogx.FromContext(ctx).Warn("permission check failed", "role", role, "err", err)
			}
			if !ok {
				writeBearerScopeError(w, permission)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-compliant error response for bearer insufficient_scope.
func writeBearerScopeError(w http.ResponseWriter, permission string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+permission+`"`)
	WriteJSON(w, http.StatusForbidden, ErrorBody{
		Error:            "insufficient_scope",
		ErrorDescription: "missing permission " + permission,
	})
}

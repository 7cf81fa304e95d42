package httpx

import (
	"net/http"
	"strings"

	"github.com/gruas/acesso/pkg/jwtx"
	"github.com/gruas/acesso/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token and stores its claims in the
// request context. Tokens without a role claim are rejected here so later
// handlers can rely on RoleFromContext.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("jwt verify failed", "err", err)
				return
			}
			if claims.RoleName() == "" {
				writeBearerError(w, "token has no role claim")
				return
			}

			ctx = WithClaims(ctx, claims)
			ctx = slogx.WithContext(ctx, log.With("sub", claims.Subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, ErrorBody{Error: "invalid_token", ErrorDescription: desc})
}

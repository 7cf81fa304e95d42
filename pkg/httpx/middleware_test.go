package httpx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gruas/acesso/pkg/httpx"
	"github.com/gruas/acesso/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	claims jwtx.Claims
	err    error
}

func (f fakeVerifier) Verify(string) (jwtx.Claims, error) { return f.claims, f.err }

type fakeChecker map[string]bool

func (f fakeChecker) HasPermission(role, permission, level string) (bool, error) {
	ok, known := f[role+"|"+permission+"|"+level]
	if !known {
		return false, errors.New("unknown role " + role)
	}
	return ok, nil
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	claims := jwtx.Claims{Perfil: &jwtx.PerfilClaim{Nome: "Gestores"}}
	claims.Subject = "u-1"

	var seenRole, seenSub string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRole = httpx.RoleFromContext(r.Context())
		seenSub = httpx.SubjectFromContext(r.Context())
		_, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing header", func(t *testing.T) {
		h := httpx.AuthnMiddleware(fakeVerifier{claims: claims})(next)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), `Bearer error="invalid_token"`))
	})

	t.Run("verify error", func(t *testing.T) {
		h := httpx.AuthnMiddleware(fakeVerifier{err: jwtx.ErrExpired})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("no role claim", func(t *testing.T) {
		noRole := jwtx.Claims{}
		noRole.Subject = "u-2"
		h := httpx.AuthnMiddleware(fakeVerifier{claims: noRole})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		h := httpx.AuthnMiddleware(fakeVerifier{claims: claims})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "Gestores", seenRole)
		require.Equal(t, "u-1", seenSub)
	})
}

func TestRequirePermission(t *testing.T) {
	checker := fakeChecker{
		"Admin|perfis:visualizar|read":    true,
		"Clientes|perfis:visualizar|read": false,
	}
	h := httpx.RequirePermission(checker, "perfis:visualizar", "read")(okHandler())

	serve := func(role string) *httptest.ResponseRecorder {
		c := jwtx.Claims{Role: role}
		c.Subject = "u"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(httpx.WithClaims(req.Context(), c))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, serve("Admin").Code)

	rec := serve("Clientes")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), `scope="perfis:visualizar"`)
	require.Contains(t, rec.Body.String(), "insufficient_scope")

	require.Equal(t, http.StatusForbidden, serve("ghost").Code)
}

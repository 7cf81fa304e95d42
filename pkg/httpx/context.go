package httpx

import (
	"context"

	"github.com/gruas/acesso/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeySubject ctxKey = "subject"
	CtxKeyRole    ctxKey = "role"
	CtxKeyClaims  ctxKey = "claims"
)

// SubjectFromContext returns the verified token subject, or "".
func SubjectFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeySubject).(string)
	return v
}

// RoleFromContext returns the raw role claim as the token carried it.
// It is not normalized; aliases are resolved by the access layer.
func RoleFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyRole).(string)
	return v
}

func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// WithClaims stores verified claims the same way AuthnMiddleware does.
func WithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyRole, c.RoleName())
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gruas/acesso/internal/acesso/metrics"
	"github.com/gruas/acesso/internal/acesso/service"
	"github.com/gruas/acesso/internal/acesso/store"
	"github.com/gruas/acesso/pkg/httpx"
	"github.com/gruas/acesso/pkg/jwtx"
	"github.com/gruas/acesso/pkg/slogx"

	_ "github.com/gruas/acesso/api/acesso" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Permissions guarding the catalog and audit endpoints.
const (
	PermRolesRead   = "perfis:visualizar"
	PermAuditManage = "perfis:gerenciar"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	AccessService *service.AccessService
	AuditService  *service.AuditService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// metrics must run inside the logger so it sees the mux pattern
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metrics.HTTPMiddleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerMe()
	r.registerGuard()
	r.registerRoles()
	r.registerAudit()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gruas Access Control API
//	@version		0.1.0
//	@description	Role based access control for the Gruas dashboard and PWA.
//	@description
//	@description				Resolves a caller's permissions, filters navigation menus and guards routes.
//	@description				Tokens are issued elsewhere and verified against a JWKS (EdDSA, RS256 or ES256).
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerMe() {
	perms := &PermissionsHandler{AccessService: r.AccessService}
	menu := &MenuHandler{AccessService: r.AccessService}

	r.Mux.Handle("GET /v1/me/permissions",
		httpx.Chain(perms,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/me/menu",
		httpx.Chain(menu,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerGuard() {
	h := &GuardHandler{AccessService: r.AccessService}

	// The dashboard asks on every navigation, hence the larger budget.
	r.Mux.Handle("GET /v1/guard",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitBySubject(httpx.GuardLimit),
		),
	)
}

func (r *Router) registerRoles() {
	list := &RolesHandler{AccessService: r.AccessService}
	perms := &RolePermissionsHandler{AccessService: r.AccessService}

	r.Mux.Handle("GET /v1/roles",
		httpx.Chain(list,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequirePermission(r.AccessService, PermRolesRead, "read"),
			httpx.RateLimitBySubject(httpx.AdminLimit),
		),
	)
	r.Mux.Handle("GET /v1/roles/{role}/permissions",
		httpx.Chain(perms,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequirePermission(r.AccessService, PermRolesRead, "read"),
			httpx.RateLimitBySubject(httpx.AdminLimit),
		),
	)
}

func (r *Router) registerAudit() {
	if r.AuditService == nil {
		return
	}
	h := &AuditHandler{AuditService: r.AuditService}

	r.Mux.Handle("GET /v1/audit/decisions",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequirePermission(r.AccessService, PermAuditManage, "admin"),
			httpx.RateLimitBySubject(httpx.AdminLimit),
		),
	)
	r.Mux.Handle("GET /v1/audit/summary",
		httpx.Chain(http.HandlerFunc(h.HandleSummary),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequirePermission(r.AccessService, PermAuditManage, "admin"),
			httpx.RateLimitBySubject(httpx.AdminLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /metrics", metrics.Handler())
}

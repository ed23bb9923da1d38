package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vocabhq/vocab/internal/auth/service"
	"github.com/vocabhq/vocab/internal/auth/store"
	"github.com/vocabhq/vocab/pkg/httpx"
	"github.com/vocabhq/vocab/pkg/jwtx"
	"github.com/vocabhq/vocab/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	refresh store.RefreshTokens

	AuthService  *service.AuthService
	TokenService *service.TokenService
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	refresh store.RefreshTokens,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		refresh:      refresh,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.AuthnGateway(r.codec),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /api/v1/auth/register", &RegisterHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /api/v1/auth/login", &LoginHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /api/v1/auth/refresh", &RefreshHandler{TokenService: r.TokenService})
	r.Mux.Handle("GET /api/v1/auth/duplicate/{username}", &AvailabilityHandler{AuthService: r.AuthService})

	// Logout and profile need an authenticated principal.
	r.Mux.Handle("POST /api/v1/auth/logout",
		httpx.RequireAuth(&LogoutHandler{AuthService: r.AuthService}))
	r.Mux.Handle("GET /api/v1/auth/me",
		httpx.RequireAuth(&MeHandler{AuthService: r.AuthService}))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.refresh))
}

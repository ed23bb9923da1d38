package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vocabhq/vocab/pkg/authsdk"
	"github.com/vocabhq/vocab/pkg/httpx"
	"github.com/vocabhq/vocab/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers. Authentication is
// delegated to the token authority through the SDK client; nothing in this
// service can verify a token locally.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	auth         *authsdk.Client
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
}

func NewRouter(auth *authsdk.Client, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		auth:         auth,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.RemoteAuthnGateway(r.auth.GatewayFunc()),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.Mux.Handle("GET /api/v1/profile", httpx.RequireAuth(&ProfileHandler{}))

	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.auth))
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

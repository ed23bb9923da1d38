package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/vocabhq/vocab/pkg/slogx"
)

// WhoAmIFunc asks the token authority who the bearer of the given
// Authorization header is. Implementations translate every remote outcome
// into either a Principal or an *AuthError; see authsdk.Client.WhoAmI.
type WhoAmIFunc func(ctx context.Context, authorization string) (Principal, error)

// RemoteAuthnGateway is the trust boundary of a service that holds no
// signing secret. The Authorization header is forwarded verbatim to the
// authority and the remote answer becomes the local authentication decision.
// Inability to reach the authority denies access; it never grants it.
func RemoteAuthnGateway(whoami WhoAmIFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization := r.Header.Get("Authorization")
			if !strings.HasPrefix(authorization, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := whoami(r.Context(), authorization)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			ctx = slogx.WithUser(ctx, principal.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

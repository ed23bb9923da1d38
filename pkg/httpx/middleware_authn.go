package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vocabhq/vocab/pkg/jwtx"
	"github.com/vocabhq/vocab/pkg/slogx"
)

const bearerPrefix = "Bearer "

// BearerToken extracts the token from an Authorization header value.
// Returns "" when the header is absent or does not use the Bearer scheme;
// that is an unauthenticated request, not an error.
func BearerToken(authorization string) string {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(authorization[len(bearerPrefix):])
}

// AuthnGateway verifies bearer tokens locally and establishes the
// request-scoped principal. Requests without a bearer token pass through
// unauthenticated for downstream access control to judge. Requests that DO
// present a token and fail verification are answered immediately with the
// structured envelope: presenting a broken credential is never the same as
// presenting none.
func AuthnGateway(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := BearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := codec.Verify(raw)
			switch {
			case err == nil:
				// fall through
			case errors.Is(err, jwtx.ErrExpired):
				WriteError(w, r, ErrTokenExpired.Err())
				return
			case errors.Is(err, jwtx.ErrInvalidSignature),
				errors.Is(err, jwtx.ErrMalformed),
				errors.Is(err, jwtx.ErrUnsupported):
				WriteError(w, r, ErrInvalidToken.Err())
				return
			default:
				WriteError(w, r, err)
				return
			}

			// Access tokens must carry the authority claim; a refresh token
			// presented as an access token fails here.
			if !claims.HasAuthorities() {
				WriteError(w, r, ErrInvalidToken.WithDetails("authority information missing from token"))
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{
				Username:    claims.Subject,
				Authorities: claims.Authorities,
			})
			ctx = slogx.WithUser(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that reached a protected handler without an
// established principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			WriteError(w, r, ErrInvalidToken.WithDetails("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

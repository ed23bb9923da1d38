package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vocabhq/vocab/pkg/slogx"
)

// ErrorKind is a stable, machine-readable failure classification shared by
// both services. The Code string is the wire identifier; clients switch on
// it, never on Message.
type ErrorKind struct {
	Status  int
	Code    string
	Message string
}

var (
	ErrInvalidCredentials     = ErrorKind{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password"}
	ErrTokenExpired           = ErrorKind{http.StatusUnauthorized, "TOKEN_EXPIRED", "Token has expired"}
	ErrInvalidToken           = ErrorKind{http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token"}
	ErrRefreshTokenNotFound   = ErrorKind{http.StatusUnauthorized, "REFRESH_TOKEN_NOT_FOUND", "Refresh token not found"}
	ErrRefreshTokenInvalid    = ErrorKind{http.StatusUnauthorized, "REFRESH_TOKEN_INVALID", "Invalid or expired refresh token"}
	ErrUnauthorizedAccess     = ErrorKind{http.StatusForbidden, "UNAUTHORIZED_ACCESS", "You do not have permission to access this resource"}
	ErrAccountDisabled        = ErrorKind{http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled"}
	ErrUserNotFound           = ErrorKind{http.StatusNotFound, "USER_NOT_FOUND", "User not found"}
	ErrUsernameAlreadyExists  = ErrorKind{http.StatusConflict, "USERNAME_ALREADY_EXISTS", "Username already exists"}
	ErrInvalidRequestBody     = ErrorKind{http.StatusBadRequest, "INVALID_INPUT", "Invalid input provided"}
	ErrAuthServiceUnavailable = ErrorKind{http.StatusServiceUnavailable, "AUTH_SERVICE_UNAVAILABLE", "Authentication service is unavailable"}
	ErrAuthServiceError       = ErrorKind{http.StatusInternalServerError, "AUTH_SERVICE_ERROR", "Authentication service error"}
	ErrInternal               = ErrorKind{http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred"}
)

// wireKinds maps wire codes back to kinds, used when decoding envelopes the
// authority produced.
var wireKinds = map[string]ErrorKind{
	ErrInvalidCredentials.Code:     ErrInvalidCredentials,
	ErrTokenExpired.Code:           ErrTokenExpired,
	ErrInvalidToken.Code:           ErrInvalidToken,
	ErrRefreshTokenNotFound.Code:   ErrRefreshTokenNotFound,
	ErrRefreshTokenInvalid.Code:    ErrRefreshTokenInvalid,
	ErrUnauthorizedAccess.Code:     ErrUnauthorizedAccess,
	ErrAccountDisabled.Code:        ErrAccountDisabled,
	ErrUserNotFound.Code:           ErrUserNotFound,
	ErrUsernameAlreadyExists.Code:  ErrUsernameAlreadyExists,
	ErrInvalidRequestBody.Code:     ErrInvalidRequestBody,
	ErrAuthServiceUnavailable.Code: ErrAuthServiceUnavailable,
	ErrAuthServiceError.Code:       ErrAuthServiceError,
	ErrInternal.Code:               ErrInternal,
}

// KindForCode resolves a wire code to its ErrorKind. Unknown codes resolve to
// INTERNAL_SERVER_ERROR so foreign envelopes still fail closed.
func KindForCode(code string) ErrorKind {
	if k, ok := wireKinds[code]; ok {
		return k
	}
	return ErrInternal
}

// Err builds an AuthError of this kind.
func (k ErrorKind) Err() *AuthError {
	return &AuthError{Kind: k}
}

// WithDetails builds an AuthError of this kind carrying extra context that is
// safe to show to callers.
func (k ErrorKind) WithDetails(format string, args ...any) *AuthError {
	return &AuthError{Kind: k, Details: fmt.Sprintf(format, args...)}
}

// AuthError is the typed failure raised at the point of detection and
// converted to the wire envelope exactly once, at the HTTP boundary.
type AuthError struct {
	Kind    ErrorKind
	Details string
}

func (e *AuthError) Error() string {
	if e.Details == "" {
		return e.Kind.Code
	}
	return e.Kind.Code + ": " + e.Details
}

// ErrorEnvelope is the structured body every failure response carries.
type ErrorEnvelope struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Path      string `json:"path,omitempty"`
	Timestamp string `json:"timestamp"`
}

// WriteError converts err into the structured envelope and writes it. Any
// error that is not an *AuthError is treated as unexpected: the response
// carries the generic INTERNAL_SERVER_ERROR message and the real error stays
// in the logs. Authentication failures (4xx) log at warning, infrastructure
// failures (5xx) at error.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		log.Error("unhandled error", "err", err, "path", r.URL.Path)
		authErr = ErrInternal.Err()
	} else if authErr.Kind.Status >= http.StatusInternalServerError {
		log.Error("request failed", "code", authErr.Kind.Code, "details", authErr.Details, "path", r.URL.Path)
	} else {
		log.Warn("request rejected", "code", authErr.Kind.Code, "details", authErr.Details, "path", r.URL.Path)
	}

	envelope := ErrorEnvelope{
		Status:    authErr.Kind.Status,
		Code:      authErr.Kind.Code,
		Message:   authErr.Kind.Message,
		Details:   authErr.Details,
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(envelope.Status)
	_ = json.NewEncoder(w).Encode(envelope)
}

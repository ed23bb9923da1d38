package http

import (
	"errors"

	"github.com/vocabhq/vocab/internal/auth/service"
	"github.com/vocabhq/vocab/pkg/httpx"
)

// serviceError translates service-layer sentinels into the wire taxonomy.
// Anything unrecognised falls through unchanged and gets reported as an
// internal error by httpx.WriteError.
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return httpx.ErrInvalidCredentials.Err()
	case errors.Is(err, service.ErrAccountDisabled):
		return httpx.ErrAccountDisabled.Err()
	case errors.Is(err, service.ErrUsernameTaken):
		return httpx.ErrUsernameAlreadyExists.Err()
	case errors.Is(err, service.ErrUserNotFound):
		return httpx.ErrUserNotFound.Err()
	case errors.Is(err, service.ErrRefreshTokenNotFound):
		return httpx.ErrRefreshTokenNotFound.Err()
	case errors.Is(err, service.ErrRefreshTokenInvalid):
		return httpx.ErrRefreshTokenInvalid.Err()
	default:
		return err
	}
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/vocabhq/vocab/internal/auth/domain"
	"github.com/vocabhq/vocab/internal/auth/store"
	"github.com/vocabhq/vocab/pkg/jwtx"
	"github.com/vocabhq/vocab/pkg/slogx"
)

var (
	ErrInvalidCredentials   = errors.New("invalid_credentials")
	ErrAccountDisabled      = errors.New("account_disabled")
	ErrUsernameTaken        = errors.New("username_taken")
	ErrUserNotFound         = errors.New("user_not_found")
	ErrRefreshTokenNotFound = errors.New("refresh_token_not_found")
	ErrRefreshTokenInvalid  = errors.New("refresh_token_invalid")
)

// TokenService issues and rotates the signed token pairs. It owns the
// single-active-refresh-token invariant: every issue overwrites the stored
// token for the subject, and every refresh both checks the stored token and
// replaces it.
type TokenService struct {
	Codec      *jwtx.Codec
	Users      store.Users
	Refresh    store.RefreshTokens
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Issue signs a fresh access/refresh pair for the user and stores the
// refresh token as the subject's single live token, replacing whatever was
// there before.
func (s *TokenService) Issue(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	// Both expiries derive from the same instant so their lifetimes keep a
	// fixed offset from each other.
	now := time.Now()

	access, err := s.Codec.Sign(user.Username, []string{user.Role}, now.Add(s.AccessTTL))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Codec.Sign(user.Username, nil, now.Add(s.RefreshTTL))
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.Refresh.Put(ctx, user.Username, refresh, s.RefreshTTL); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		TokenType:    domain.GrantType,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Rotate exchanges a presented refresh token for a new pair.
//
// The presented token must pass strict verification, match the stored token
// byte for byte, and belong to a subject that still exists and is enabled.
// Authorities are re-read from the store at rotation time so role changes
// take effect on the next refresh rather than waiting out the token.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Codec.Verify(refreshToken)
	if err != nil {
		// Any crypto failure on a refresh token, expiry included, is
		// reported as an invalid token rather than leaking which check
		// failed. Refresh tokens never get the lenient-expired path.
		l.Info("refresh token failed verification", slog.String("reason", err.Error()))
		return domain.TokenPair{}, ErrRefreshTokenInvalid
	}

	stored, err := s.Refresh.Get(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrRefreshTokenNotFound
		}
		return domain.TokenPair{}, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		// A verified but superseded token: either a replay after rotation
		// or a second device's token after a newer login.
		l.Warn("superseded refresh token presented", slog.String("subject", claims.Subject))
		return domain.TokenPair{}, ErrRefreshTokenInvalid
	}

	user, err := s.Users.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUserNotFound
		}
		return domain.TokenPair{}, err
	}
	if !user.Enabled {
		return domain.TokenPair{}, ErrAccountDisabled
	}

	return s.Issue(ctx, user)
}

// Revoke removes the subject's stored refresh token. Revoking a subject with
// no live token is a no-op.
func (s *TokenService) Revoke(ctx context.Context, subject string) error {
	return s.Refresh.Delete(ctx, subject)
}

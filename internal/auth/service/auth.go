package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/vocabhq/vocab/internal/auth/domain"
	"github.com/vocabhq/vocab/internal/auth/store"
	"github.com/vocabhq/vocab/pkg/cryptox"
	"github.com/vocabhq/vocab/pkg/idx"
	"github.com/vocabhq/vocab/pkg/slogx"
)

// DefaultRole is assigned to every self-registered account.
const DefaultRole = "USER"

// AuthService covers the account lifecycle: registration, credential
// verification, logout and profile lookups. Token minting is delegated to
// the TokenService.
type AuthService struct {
	Users  store.Users
	Tokens *TokenService
}

// RegisterParams carries the fields collected at sign-up.
type RegisterParams struct {
	Username string
	Password string
	Name     string
	Email    string
}

// Register creates a new enabled account with the default role and returns
// its read model. The password is hashed before anything touches the store.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.UserInfo, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.UserInfo{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     strings.TrimSpace(p.Username),
		Name:         strings.TrimSpace(p.Name),
		Email:        strings.TrimSpace(p.Email),
		PasswordHash: hash,
		Role:         DefaultRole,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserInfo{}, ErrUsernameTaken
		}
		return domain.UserInfo{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("username", user.Username))
	return user.Info(), nil
}

// Login verifies the credentials and issues a token pair. An unknown
// username and a wrong password produce the same error so callers cannot
// probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("username", username))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	if !user.Enabled {
		return domain.TokenPair{}, ErrAccountDisabled
	}

	pair, err := s.Tokens.Issue(ctx, user)
	if err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("login succeeded", slog.String("username", username))
	return pair, nil
}

// Logout revokes the subject's refresh token. The access token stays valid
// until it expires; only the ability to rotate is withdrawn.
func (s *AuthService) Logout(ctx context.Context, subject string) error {
	if err := s.Tokens.Revoke(ctx, subject); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user logged out", slog.String("username", subject))
	return nil
}

// CurrentUser returns the read model for an authenticated subject.
func (s *AuthService) CurrentUser(ctx context.Context, subject string) (domain.UserInfo, error) {
	user, err := s.Users.GetUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserInfo{}, ErrUserNotFound
		}
		return domain.UserInfo{}, err
	}
	return user.Info(), nil
}

// UsernameExists answers the registration-time availability check.
func (s *AuthService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.Users.UsernameExists(ctx, username)
}

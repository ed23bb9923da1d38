package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vocabhq/vocab/internal/auth/domain"
	"github.com/vocabhq/vocab/internal/auth/store/drivers/sqlite"
	"github.com/vocabhq/vocab/pkg/cryptox"
	"github.com/vocabhq/vocab/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) (*AuthService, *TokenService) {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	key, err := cryptox.DeriveSigningKey("test-signing-passphrase")
	require.NoError(t, err)
	codec, err := jwtx.NewCodec(key)
	require.NoError(t, err)

	tokens := &TokenService{
		Codec:      codec,
		Users:      s.Users(),
		Refresh:    s.RefreshTokens(),
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}
	auth := &AuthService{Users: s.Users(), Tokens: tokens}
	return auth, tokens
}

func registerAndLogin(t *testing.T, auth *AuthService, username string) domain.TokenPair {
	t.Helper()

	_, err := auth.Register(t.Context(), RegisterParams{
		Username: username,
		Password: "correct horse battery",
		Name:     "Test User",
		Email:    username + "@example.com",
	})
	require.NoError(t, err)

	pair, err := auth.Login(t.Context(), username, "correct horse battery")
	require.NoError(t, err)
	return pair
}

func TestIssueSignsRoleIntoAccessToken(t *testing.T) {
	auth, tokens := newTestServices(t)
	pair := registerAndLogin(t, auth, "alice")

	require.Equal(t, "Bearer", pair.TokenType)

	claims, err := tokens.Codec.Verify(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, []string{"USER"}, claims.Authorities)

	// The refresh token carries no authorities, only the subject.
	claims, err = tokens.Codec.Verify(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Empty(t, claims.Authorities)
}

func TestRotateIssuesNewPairAndInvalidatesOld(t *testing.T) {
	auth, tokens := newTestServices(t)
	pair := registerAndLogin(t, auth, "alice")

	rotated, err := tokens.Rotate(t.Context(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// Replaying the pre-rotation token must fail even though it still
	// verifies cryptographically.
	_, err = tokens.Rotate(t.Context(), pair.RefreshToken)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)

	// The rotated token keeps working.
	_, err = tokens.Rotate(t.Context(), rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRotateAfterLogout(t *testing.T) {
	auth, tokens := newTestServices(t)
	pair := registerAndLogin(t, auth, "alice")

	require.NoError(t, auth.Logout(t.Context(), "alice"))

	_, err := tokens.Rotate(t.Context(), pair.RefreshToken)
	require.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestSecondLoginSupersedesFirst(t *testing.T) {
	auth, tokens := newTestServices(t)
	first := registerAndLogin(t, auth, "alice")

	second, err := auth.Login(t.Context(), "alice", "correct horse battery")
	require.NoError(t, err)

	_, err = tokens.Rotate(t.Context(), first.RefreshToken)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)

	_, err = tokens.Rotate(t.Context(), second.RefreshToken)
	require.NoError(t, err)
}

func TestRotateRejectsGarbage(t *testing.T) {
	auth, tokens := newTestServices(t)
	registerAndLogin(t, auth, "alice")

	_, err := tokens.Rotate(t.Context(), "not-a-token")
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestRotateRejectsAccessToken(t *testing.T) {
	// An access token is a valid signed token for the right subject, but it
	// never matches the stored refresh token, so rotation must refuse it.
	auth, tokens := newTestServices(t)
	pair := registerAndLogin(t, auth, "alice")

	_, err := tokens.Rotate(t.Context(), pair.AccessToken)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestRotateExpiredRefreshToken(t *testing.T) {
	auth, tokens := newTestServices(t)
	registerAndLogin(t, auth, "alice")

	expired, err := tokens.Codec.Sign("alice", nil, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = tokens.Rotate(t.Context(), expired)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestRotateDisabledAccount(t *testing.T) {
	// Disabling binds at the next rotation: the stored refresh token still
	// matches, but the re-read principal is no longer enabled.
	auth, tokens := newTestServices(t)
	pair := registerAndLogin(t, auth, "alice")

	require.NoError(t, tokens.Users.SetUserEnabled(t.Context(), "alice", false))

	_, err := tokens.Rotate(t.Context(), pair.RefreshToken)
	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestIssuedExpiriesFollowConfiguredLifetimes(t *testing.T) {
	auth, tokens := newTestServices(t)
	tokens.AccessTTL = 900000 * time.Millisecond
	tokens.RefreshTTL = 604800000 * time.Millisecond

	now := time.Now()
	pair := registerAndLogin(t, auth, "alice")

	access, err := tokens.Codec.Verify(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := tokens.Codec.Verify(pair.RefreshToken)
	require.NoError(t, err)

	// exp travels at whole-second precision, so allow a couple of seconds
	// of slack around the issue instant.
	require.InDelta(t, now.Add(15*time.Minute).Unix(), access.ExpiresAt.Unix(), 2)
	require.InDelta(t, now.Add(7*24*time.Hour).Unix(), refresh.ExpiresAt.Unix(), 2)

	// The two expiries stay exactly one lifetime difference apart.
	require.InDelta(t,
		(tokens.RefreshTTL - tokens.AccessTTL).Seconds(),
		refresh.ExpiresAt.Sub(access.ExpiresAt).Seconds(),
		1)
}

func TestDefaultTokenLifetimes(t *testing.T) {
	require.Equal(t, 15*time.Minute, jwtx.DefaultAccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, jwtx.DefaultRefreshTokenTTL)
}

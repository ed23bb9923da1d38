package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vocabhq/vocab/internal/auth/domain"
	"github.com/vocabhq/vocab/internal/auth/store"
	"github.com/vocabhq/vocab/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "auth.db")
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testUser(username string) domain.User {
	now := time.Now().UTC()
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Name:         "Test User",
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:         "USER",
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	users := s.Users()

	u := testUser("alice")
	require.NoError(t, users.CreateUser(t.Context(), u))

	got, err := users.GetUserByUsername(t.Context(), "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, u.Username, got.Username)
	require.Equal(t, u.PasswordHash, got.PasswordHash)
	require.Equal(t, u.Role, got.Role)
	require.True(t, got.Enabled)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	users := s.Users()

	require.NoError(t, users.CreateUser(t.Context(), testUser("alice")))

	err := users.CreateUser(t.Context(), testUser("alice"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Users().GetUserByUsername(t.Context(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetUserEnabled(t *testing.T) {
	s := newTestStore(t)
	users := s.Users()

	require.NoError(t, users.CreateUser(t.Context(), testUser("alice")))

	require.NoError(t, users.SetUserEnabled(t.Context(), "alice", false))

	got, err := users.GetUserByUsername(t.Context(), "alice")
	require.NoError(t, err)
	require.False(t, got.Enabled)

	require.NoError(t, users.SetUserEnabled(t.Context(), "alice", true))

	got, err = users.GetUserByUsername(t.Context(), "alice")
	require.NoError(t, err)
	require.True(t, got.Enabled)

	err = users.SetUserEnabled(t.Context(), "ghost", false)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsernameExists(t *testing.T) {
	s := newTestStore(t)
	users := s.Users()

	exists, err := users.UsernameExists(t.Context(), "alice")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, users.CreateUser(t.Context(), testUser("alice")))

	exists, err = users.UsernameExists(t.Context(), "alice")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestRefreshTokensOverwrite(t *testing.T) {
	s := newTestStore(t)
	tokens := s.RefreshTokens()

	require.NoError(t, tokens.Put(t.Context(), "alice", "token-one", time.Hour))
	require.NoError(t, tokens.Put(t.Context(), "alice", "token-two", time.Hour))

	got, err := tokens.Get(t.Context(), "alice")
	require.NoError(t, err)
	require.Equal(t, "token-two", got, "second issue should replace the first")
}

func TestRefreshTokensAbsent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RefreshTokens().Get(t.Context(), "alice")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshTokensDelete(t *testing.T) {
	s := newTestStore(t)
	tokens := s.RefreshTokens()

	require.NoError(t, tokens.Put(t.Context(), "alice", "token-one", time.Hour))
	require.NoError(t, tokens.Delete(t.Context(), "alice"))

	_, err := tokens.Get(t.Context(), "alice")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is a no-op, not an error.
	require.NoError(t, tokens.Delete(t.Context(), "alice"))
}

func TestRefreshTokensExpiry(t *testing.T) {
	s := newTestStore(t)
	tokens := s.RefreshTokens()

	// A negative TTL writes an already-expired entry, which Get must treat
	// the same as no entry at all.
	require.NoError(t, tokens.Put(t.Context(), "alice", "stale", -time.Second))

	_, err := tokens.Get(t.Context(), "alice")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshTokensIsolatedPerSubject(t *testing.T) {
	s := newTestStore(t)
	tokens := s.RefreshTokens()

	require.NoError(t, tokens.Put(t.Context(), "alice", "alice-token", time.Hour))
	require.NoError(t, tokens.Put(t.Context(), "bob", "bob-token", time.Hour))

	got, err := tokens.Get(t.Context(), "alice")
	require.NoError(t, err)
	require.Equal(t, "alice-token", got)

	require.NoError(t, tokens.Delete(t.Context(), "alice"))

	got, err = tokens.Get(t.Context(), "bob")
	require.NoError(t, err)
	require.Equal(t, "bob-token", got)
}

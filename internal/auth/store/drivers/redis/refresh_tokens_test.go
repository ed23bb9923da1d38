package redis

import (
	"testing"
	"time"

	"github.com/vocabhq/vocab/internal/auth/store"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestTokens(t *testing.T) (*RefreshTokens, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	tokens := NewRefreshTokensWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = tokens.Close() })
	return tokens, mr
}

func TestPutGetRoundTrip(t *testing.T) {
	tokens, _ := newTestTokens(t)

	require.NoError(t, tokens.Put(t.Context(), "alice", "token-one", time.Hour))

	got, err := tokens.Get(t.Context(), "alice")
	require.NoError(t, err)
	require.Equal(t, "token-one", got)
}

func TestPutOverwrites(t *testing.T) {
	tokens, _ := newTestTokens(t)

	require.NoError(t, tokens.Put(t.Context(), "alice", "token-one", time.Hour))
	require.NoError(t, tokens.Put(t.Context(), "alice", "token-two", time.Hour))

	got, err := tokens.Get(t.Context(), "alice")
	require.NoError(t, err)
	require.Equal(t, "token-two", got, "second issue should replace the first")
}

func TestGetAbsent(t *testing.T) {
	tokens, _ := newTestTokens(t)

	_, err := tokens.Get(t.Context(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete(t *testing.T) {
	tokens, _ := newTestTokens(t)

	require.NoError(t, tokens.Put(t.Context(), "alice", "token-one", time.Hour))
	require.NoError(t, tokens.Delete(t.Context(), "alice"))

	_, err := tokens.Get(t.Context(), "alice")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, tokens.Delete(t.Context(), "alice"))
}

func TestEntryExpiresWithTTL(t *testing.T) {
	tokens, mr := newTestTokens(t)

	require.NoError(t, tokens.Put(t.Context(), "alice", "token-one", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := tokens.Get(t.Context(), "alice")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestKeysNamespaced(t *testing.T) {
	tokens, mr := newTestTokens(t)

	require.NoError(t, tokens.Put(t.Context(), "alice", "token-one", time.Hour))
	require.True(t, mr.Exists(keyPrefix+"alice"))
}

func TestPingUnavailable(t *testing.T) {
	tokens, mr := newTestTokens(t)

	require.NoError(t, tokens.Ping(t.Context()))

	mr.Close()

	err := tokens.Ping(t.Context())
	require.ErrorIs(t, err, store.ErrUnavailable)
}

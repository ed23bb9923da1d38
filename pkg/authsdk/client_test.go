package authsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/vocabhq/vocab/pkg/httpx"

	"github.com/stretchr/testify/require"
)

func TestLoginDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice", req.UserName)

		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(httpx.ErrorEnvelope{
			Status:  http.StatusUnauthorized,
			Code:    "INVALID_CREDENTIALS",
			Message: "Invalid username or password",
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(t.Context(), "alice", "wrong")

	var authErr *httpx.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "INVALID_CREDENTIALS", authErr.Kind.Code)
}

func TestLoginUnrecognizableErrorFailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(t.Context(), "alice", "pw")

	var authErr *httpx.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "INTERNAL_SERVER_ERROR", authErr.Kind.Code)
}

func TestPostsAreNeverRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(httpx.ErrorEnvelope{
			Status: http.StatusServiceUnavailable,
			Code:   "AUTH_SERVICE_UNAVAILABLE",
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(t.Context(), "alice", "pw")
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestWhoAmIRetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer some-token", r.Header.Get("Authorization"))

		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(UserInfo{UserName: "alice", Role: "USER"})
	}))
	defer srv.Close()

	info, err := NewClient(srv.URL).WhoAmI(t.Context(), "Bearer some-token")
	require.NoError(t, err)
	require.Equal(t, "alice", info.UserName)
	require.Equal(t, int32(3), calls.Load())
}

func TestWhoAmIRetryBudgetExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).WhoAmI(t.Context(), "Bearer some-token")

	var authErr *httpx.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "AUTH_SERVICE_UNAVAILABLE", authErr.Kind.Code)
	require.Equal(t, int32(3), calls.Load(), "three attempts total")
}

func TestWhoAmIRejectionIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).WhoAmI(t.Context(), "Bearer some-token")

	var authErr *httpx.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "INVALID_TOKEN", authErr.Kind.Code)
	require.Equal(t, int32(1), calls.Load())
}

func TestWhoAmICancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewClient(srv.URL).WhoAmI(ctx, "Bearer some-token")
	require.Error(t, err)
}

func TestLivez(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/livez" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).Livez(t.Context()))

	srv.Close()
	require.Error(t, NewClient(srv.URL).Livez(t.Context()))
}

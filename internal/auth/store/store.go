package store

import (
	"context"
	"errors"
	"time"

	"github.com/vocabhq/vocab/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable wraps backend infrastructure failures (connection
	// refused, I/O errors) so callers can tell "no such entry" apart from
	// "the store itself is broken". Store failures are never swallowed.
	ErrUnavailable = errors.New("store: backend unavailable")
)

// Users is the credential store: persisted principal records keyed by
// username. Concrete drivers (sqlite) implement this.
type Users interface {
	// CreateUser inserts a new principal (id provided by app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByUsername loads the current principal state. Used during
	// login and again on every refresh so role/enabled changes take effect
	// without waiting for the refresh token to expire.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UsernameExists answers the availability check without loading the
	// full record.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// SetUserEnabled flips the enabled flag. A disabled account keeps its
	// record but can no longer log in or refresh. Returns ErrNotFound for
	// an unknown username.
	SetUserEnabled(ctx context.Context, username string, enabled bool) error
}

// RefreshTokens is the rotating refresh-token store: one current token per
// subject, expiring with the token itself. All three operations are atomic
// at the key level; concurrent writers race with last-writer-wins, which is
// the accepted outcome for concurrent logins.
type RefreshTokens interface {
	// Put stores token as the single current refresh token for subject,
	// overwriting any previous value. The entry lives for ttl, which equals
	// the token's own lifetime so eviction and expiry coincide.
	Put(ctx context.Context, subject, token string, ttl time.Duration) error

	// Get returns the current token for subject, or ErrNotFound when no
	// live entry exists (logged out, never issued, or expired).
	Get(ctx context.Context, subject string) (string, error)

	// Delete removes the entry for subject. Deleting an absent entry is
	// not an error.
	Delete(ctx context.Context, subject string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases underlying resources.
	Close() error
}

// Store is the root credential-store interface exposed by the sqlite driver.
type Store interface {
	Users() Users

	ApplyMigrations() error
	Ping(ctx context.Context) error
	Close() error
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vocabhq/vocab/internal/auth/store"
)

type refreshTokensRepo struct {
	db *sql.DB
}

func (r *refreshTokensRepo) Put(ctx context.Context, subject, token string, ttl time.Duration) error {
	// Upsert keyed by username: issuing a new refresh token replaces any
	// previous one, which is what keeps a single live token per subject.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (username, token, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET
			token      = excluded.token,
			expires_at = excluded.expires_at`,
		subject, token, time.Now().UTC().Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (r *refreshTokensRepo) Get(ctx context.Context, subject string) (string, error) {
	// Lazy expiry: an entry past its expires_at is treated as absent. No
	// background sweeper is needed since expired rows get overwritten on
	// the next login anyway.
	row := r.db.QueryRowContext(ctx, `
		SELECT token FROM refresh_tokens
		WHERE username = ? AND expires_at > ?`,
		subject, time.Now().UTC(),
	)

	var token string
	if err := row.Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return token, nil
}

func (r *refreshTokensRepo) Delete(ctx context.Context, subject string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE username = ?`, subject)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (r *refreshTokensRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close is a no-op: the repo shares the Store's database handle, which the
// Store closes.
func (r *refreshTokensRepo) Close() error { return nil }

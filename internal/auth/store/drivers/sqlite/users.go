package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vocabhq/vocab/internal/auth/domain"
	"github.com/vocabhq/vocab/internal/auth/store"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, name, email, password_hash, role, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Name, u.Email, u.PasswordHash, u.Role, u.Enabled, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		// modernc.org/sqlite surfaces constraint violations as plain errors,
		// so match on the message rather than a typed error.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, name, email, password_hash, role, enabled, created_at, updated_at
		FROM users
		WHERE username = ?`,
		username,
	)

	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) SetUserEnabled(ctx context.Context, username string, enabled bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET enabled = ?, updated_at = ? WHERE username = ?`,
		enabled, time.Now().UTC(), username,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, username)

	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return n > 0, nil
}

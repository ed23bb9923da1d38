// Package redis provides a Redis-backed refresh-token store. Unlike the
// sqlite driver it gets expiry for free from key TTLs, and it lets the token
// store scale independently of the credential database.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vocabhq/vocab/internal/auth/store"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces refresh-token entries so the same Redis instance can
// be shared with other consumers.
const keyPrefix = "auth:refresh:"

type RefreshTokens struct {
	client *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func NewRefreshTokens(cfg Config) *RefreshTokens {
	return &RefreshTokens{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// NewRefreshTokensWithClient wraps an existing client. Used by tests.
func NewRefreshTokensWithClient(client *redis.Client) *RefreshTokens {
	return &RefreshTokens{client: client}
}

func (r *RefreshTokens) Put(ctx context.Context, subject, token string, ttl time.Duration) error {
	// SET overwrites and resets the TTL, so a fresh login always replaces
	// the previous token for the subject.
	if err := r.client.Set(ctx, keyPrefix+subject, token, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (r *RefreshTokens) Get(ctx context.Context, subject string) (string, error) {
	token, err := r.client.Get(ctx, keyPrefix+subject).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return token, nil
}

func (r *RefreshTokens) Delete(ctx context.Context, subject string) error {
	if err := r.client.Del(ctx, keyPrefix+subject).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (r *RefreshTokens) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (r *RefreshTokens) Close() error { return r.client.Close() }

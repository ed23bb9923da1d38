package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithUser attaches the authenticated username to the contextual logger so
// every downstream log line carries it.
func WithUser(ctx context.Context, username string) context.Context {
	if username == "" {
		return ctx
	}
	l := FromContext(ctx)
	return WithContext(ctx, l.With("username", username))
}

// Package attr provides slog attribute helpers used throughout roster-bot.
package attr

import (
	"context"
	"log/slog"
)

type contextKey string

// CorrelationIDKey is the context key under which handlers store the
// correlation ID of the request being processed.
const CorrelationIDKey contextKey = "correlation_id"

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

// ExtractCorrelationID pulls the correlation ID out of ctx, logging an
// empty value when none is present.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	id, _ := ctx.Value(CorrelationIDKey).(string)
	return slog.String("correlation_id", id)
}

// CorrelationIDFromContext returns the raw correlation ID, empty when unset.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CorrelationIDKey).(string)
	return id
}

// WithCorrelationID returns a context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// Package attr provides slog attribute helpers so log call sites stay terse
// and field names stay consistent across modules.
package attr

import (
	"context"
	"log/slog"
)

type contextKey string

// CorrelationIDKey carries the request correlation ID on the context.
const CorrelationIDKey contextKey = "correlation_id"

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

// WithCorrelationID stores a correlation ID on the context for later
// extraction into log attrs.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// CorrelationID returns the correlation ID on the context, or "".
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}

// ExtractCorrelationID turns the context's correlation ID into a log attr.
// Missing IDs log as "unknown" rather than being dropped, so a gap in request
// plumbing is visible in the logs.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	id := CorrelationID(ctx)
	if id == "" {
		id = "unknown"
	}
	return slog.String("correlation_id", id)
}

package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
)

// WithContext attaches a logger to ctx
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithRequestID stores the request ID on ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID stores the authenticated user's ID on ctx
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequestID returns the request ID stored on ctx, if any
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// UserID returns the user ID stored on ctx, if any
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// FromContext returns the logger attached to ctx enriched with the request,
// user and trace identifiers found there. Without an attached logger it
// returns a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok || l == nil {
		return zap.NewNop()
	}
	return enrich(ctx, l)
}

// L is shorthand for FromContext
func L(ctx context.Context) *zap.Logger {
	return FromContext(ctx)
}

func enrich(ctx context.Context, l *zap.Logger) *zap.Logger {
	var fields []zap.Field
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := UserID(ctx); id != "" {
		fields = append(fields, zap.String("user_id", id))
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

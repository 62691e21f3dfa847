// Package middleware provides the gin middleware of the storefront API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps client supplied request IDs
const MaxRequestIDLength = 128

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "impex-api",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin and tags the server span with request_id.
// Spans are named after the route pattern, e.g. "GET /api/v1/catalog/products/:slug".
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	base := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		base(c)

		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpanWithAttributes(c, span)
		}
	}
}

func enrichSpanWithAttributes(c *gin.Context, span trace.Span) {
	if requestID := c.GetString(RequestIDKey); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if userID := GetJWTUserID(c); userID != "" {
		span.SetAttributes(attribute.String("user_id", userID))
	}
	if role := c.GetString(JWTRoleKey); role != "" {
		span.SetAttributes(attribute.String("user.role", role))
	}
}

// SpanErrorMarker marks the request span as failed for 4xx and 5xx
// responses. Place it after Tracing.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		span.SetStatus(codes.Error, statusDescription(status))
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}

func statusDescription(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "Internal Server Error"
	case status == http.StatusUnauthorized:
		return "Unauthorized"
	case status == http.StatusForbidden:
		return "Forbidden"
	case status == http.StatusNotFound:
		return "Not Found"
	case status == http.StatusTooManyRequests:
		return "Too Many Requests"
	default:
		return "Client Error"
	}
}

// TracingAttributeInjector re-tags the span once authentication has run.
// Place it after both Tracing and the JWT middleware.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpanWithAttributes(c, span)
		}
		c.Next()
	}
}

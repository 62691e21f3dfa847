package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware
type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string
	SkipPathPrefixes []string
}

// DefaultProfilingConfig skips health, metrics and docs endpoints
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health", "/metrics"},
		SkipPathPrefixes: []string{"/swagger", "/uploads"},
	}
}

// ProfilingWithConfig labels each request's profiles with its route
// pattern, method, controller and, when a token was read upstream, the
// caller's role.
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range cfg.SkipPaths {
			if path == p {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		route := c.FullPath()
		labels := map[string]string{
			telemetry.ProfilingLabelMethod:     c.Request.Method,
			telemetry.ProfilingLabelRoute:      route,
			telemetry.ProfilingLabelController: controllerFromRoute(route),
		}
		if role, ok := c.Get(JWTRoleKey); ok {
			if s, ok := role.(string); ok {
				labels[telemetry.ProfilingLabelRole] = s
			}
		}

		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// controllerFromRoute returns the first resource segment after the API
// version, e.g. "/api/v1/catalog/products/:slug" -> "catalog"
func controllerFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) {
			continue
		}
		if strings.HasPrefix(part, ":") || strings.HasPrefix(part, "*") {
			continue
		}
		return part
	}
	return ""
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || (s[0] != 'v' && s[0] != 'V') {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

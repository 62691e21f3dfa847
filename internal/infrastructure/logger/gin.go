package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinMiddleware logs every request once it completes and makes a
// request-scoped logger available through FromContext(c.Request.Context()).
func GinMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		ctx := WithContext(c.Request.Context(), base)
		if rid := c.GetString("request_id"); rid != "" {
			ctx = WithRequestID(ctx, rid)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		l := FromContext(c.Request.Context())
		switch {
		case status >= http.StatusInternalServerError:
			l.Error("HTTP Request", fields...)
		case status >= http.StatusBadRequest:
			l.Warn("HTTP Request", fields...)
		default:
			l.Info("HTTP Request", fields...)
		}
	}
}

// Recovery turns a panic into a 500 response with the standard error body
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				base.Error("Panic recovered",
					zap.String("request_id", c.GetString("request_id")),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", r),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "ERR_INTERNAL",
						"message": "An internal error occurred",
					},
				})
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Requests
// with a declared length over the limit are rejected up front; streamed
// bodies are cut off by http.MaxBytesReader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				c.GetString(RequestIDKey),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

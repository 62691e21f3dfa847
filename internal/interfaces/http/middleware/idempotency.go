package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyHeader carries the client-chosen key of a state-changing request
const IdempotencyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// IdempotencyStore claims request keys for a limited time
type IdempotencyStore interface {
	// Claim reports false when key is already held
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Idempotency rejects a request whose Idempotency-Key the same user already
// sent within ttl. Keys of requests that fail are released so the client can
// retry. Requests without the header pass through, as do requests made while
// the store is unreachable.
func Idempotency(store IdempotencyStore, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		header := c.GetHeader(IdempotencyHeader)
		if header == "" {
			c.Next()
			return
		}
		if len(header) > maxIdempotencyKeyLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Idempotency-Key is too long",
				c.GetString(RequestIDKey),
			))
			return
		}

		key := idempotencyScope(c) + ":" + c.FullPath() + ":" + header
		ctx := c.Request.Context()
		claimed, err := store.Claim(ctx, key, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest,
				"This request has already been submitted",
				c.GetString(RequestIDKey),
			))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(context.WithoutCancel(ctx), key); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
	}
}

func idempotencyScope(c *gin.Context) string {
	if claims := GetJWTClaims(c); claims != nil && claims.UserID != "" {
		return claims.UserID
	}
	return c.ClientIP()
}

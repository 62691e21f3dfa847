package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
	"github.com/jeenmata/impex/internal/infrastructure/cache"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Claim(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func (failingStore) Release(context.Context, string) error { return nil }

func newIdempotentRouter(store IdempotencyStore, status *int) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-User"); id != "" {
			c.Set(JWTClaimsKey, &auth.Claims{UserID: id})
		}
		c.Next()
	})
	router.POST("/orders", Idempotency(store, time.Hour, nil), func(c *gin.Context) {
		c.Status(*status)
	})
	return router
}

func postOrder(router *gin.Engine, user, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("X-User", user)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency(t *testing.T) {
	newStore := func(t *testing.T) *cache.MemoryIdempotencyStore {
		s := cache.NewMemoryIdempotencyStore(time.Hour)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	t.Run("replay is rejected", func(t *testing.T) {
		status := http.StatusCreated
		router := newIdempotentRouter(newStore(t), &status)

		assert.Equal(t, http.StatusCreated, postOrder(router, "user_002", "k1").Code)
		rec := postOrder(router, "user_002", "k1")
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, dto.ErrCodeDuplicateRequest, decodeError(t, rec).Code)
	})

	t.Run("keys are scoped per user", func(t *testing.T) {
		status := http.StatusCreated
		router := newIdempotentRouter(newStore(t), &status)

		assert.Equal(t, http.StatusCreated, postOrder(router, "user_002", "k1").Code)
		assert.Equal(t, http.StatusCreated, postOrder(router, "user_003", "k1").Code)
	})

	t.Run("no header passes through", func(t *testing.T) {
		status := http.StatusCreated
		router := newIdempotentRouter(newStore(t), &status)

		assert.Equal(t, http.StatusCreated, postOrder(router, "user_002", "").Code)
		assert.Equal(t, http.StatusCreated, postOrder(router, "user_002", "").Code)
	})

	t.Run("failed request releases its key", func(t *testing.T) {
		status := http.StatusUnprocessableEntity
		router := newIdempotentRouter(newStore(t), &status)

		assert.Equal(t, http.StatusUnprocessableEntity, postOrder(router, "user_002", "k1").Code)
		status = http.StatusCreated
		assert.Equal(t, http.StatusCreated, postOrder(router, "user_002", "k1").Code)
	})

	t.Run("oversized key", func(t *testing.T) {
		status := http.StatusCreated
		router := newIdempotentRouter(newStore(t), &status)

		rec := postOrder(router, "user_002", strings.Repeat("k", maxIdempotencyKeyLen+1))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store outage fails open", func(t *testing.T) {
		status := http.StatusCreated
		router := newIdempotentRouter(failingStore{}, &status)

		assert.Equal(t, http.StatusCreated, postOrder(router, "user_002", "k1").Code)
		assert.Equal(t, http.StatusCreated, postOrder(router, "user_002", "k1").Code)
	})
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
	"github.com/jeenmata/impex/internal/infrastructure/config"
	"github.com/jeenmata/impex/internal/infrastructure/logger"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

func approvedDealer() auth.Subject {
	return auth.Subject{
		UserID:       "user_002",
		Email:        "abc.hardware@gmail.com",
		Role:         "user",
		DealerStatus: "Approved",
	}
}

func newTestTokenPair(t *testing.T, jwtService *auth.JWTService, sub auth.Subject) *auth.TokenPair {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(sub)
	require.NoError(t, err)
	return pair
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return resp.Error
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTestTokenPair(t, jwtService, approvedDealer())

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, "user_002", claims.UserID)
		assert.Equal(t, "user_002", GetJWTUserID(c))
		assert.Equal(t, "abc.hardware@gmail.com", GetJWTEmail(c))
		assert.Equal(t, "user_002", logger.UserID(c.Request.Context()))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTestTokenPair(t, jwtService, approvedDealer())

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"basic scheme", "Basic dXNlcjpwYXNz", dto.ErrCodeTokenInvalid},
		{"empty bearer", "Bearer ", dto.ErrCodeTokenInvalid},
		{"garbage token", "Bearer not.a.jwt", dto.ErrCodeTokenInvalid},
		{"refresh token", "Bearer " + pair.RefreshToken, dto.ErrCodeTokenInvalid},
	}

	router := gin.New()
	router.Use(RequestID(), JWTAuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			info := decodeError(t, rec)
			assert.Equal(t, tt.code, info.Code)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), info.RequestID)
		})
	}
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(newTestJWTService()))
	router.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_Revocation(t *testing.T) {
	jwtService := newTestJWTService()
	ctx := context.Background()

	newRouter := func(store auth.RevocationStore) *gin.Engine {
		cfg := DefaultJWTConfig(jwtService)
		cfg.Revocations = store
		router := gin.New()
		router.Use(JWTAuthMiddlewareWithConfig(cfg))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	call := func(router *gin.Engine, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("revoked token id", func(t *testing.T) {
		store := auth.NewMemoryRevocationStore()
		pair := newTestTokenPair(t, jwtService, approvedDealer())
		claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.NoError(t, store.RevokeToken(ctx, claims.ID, time.Hour))

		rec := call(newRouter(store), pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, decodeError(t, rec).Code)
	})

	t.Run("user revoked after issue", func(t *testing.T) {
		store := auth.NewMemoryRevocationStore()
		pair := newTestTokenPair(t, jwtService, approvedDealer())
		require.NoError(t, store.RevokeUser(ctx, "user_002", time.Hour))

		rec := call(newRouter(store), pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("other user unaffected", func(t *testing.T) {
		store := auth.NewMemoryRevocationStore()
		require.NoError(t, store.RevokeUser(ctx, "user_009", time.Hour))
		pair := newTestTokenPair(t, jwtService, approvedDealer())

		rec := call(newRouter(store), pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("store failure fails open", func(t *testing.T) {
		pair := newTestTokenPair(t, jwtService, approvedDealer())

		rec := call(newRouter(failingRevocations{}), pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

type failingRevocations struct{}

func (failingRevocations) RevokeToken(context.Context, string, time.Duration) error {
	return errors.New("redis down")
}

func (failingRevocations) IsTokenRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func (failingRevocations) RevokeUser(context.Context, string, time.Duration) error {
	return errors.New("redis down")
}

func (failingRevocations) IsUserRevoked(context.Context, string, time.Time) (bool, error) {
	return false, errors.New("redis down")
}

func TestJWTAuthMiddleware_OnError(t *testing.T) {
	cfg := DefaultJWTConfig(newTestJWTService())
	var got error
	cfg.OnError = func(c *gin.Context, err error) {
		got = err
		c.Status(http.StatusTeapot)
	}

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, got, auth.ErrInvalidToken)
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTestTokenPair(t, jwtService, approvedDealer())

	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetJWTUserID(c))
	})

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"anonymous", "", ""},
		{"invalid token", "Bearer nope", ""},
		{"valid token", "Bearer " + pair.AccessToken, "user_002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

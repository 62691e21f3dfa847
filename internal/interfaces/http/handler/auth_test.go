package handler

import (
	"net/http"
	"testing"

	identityapp "github.com/jeenmata/impex/internal/application/identity"
	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/infrastructure/auth"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{"demo password", map[string]any{"email": "abc.hardware@gmail.com", "password": testDemoPassword}, http.StatusOK, ""},
		{"wrong password", map[string]any{"email": "abc.hardware@gmail.com", "password": "nope"}, http.StatusUnauthorized, dto.ErrCodeInvalidCredentials},
		{"unknown user", map[string]any{"email": "ghost@example.com", "password": testDemoPassword}, http.StatusUnauthorized, dto.ErrCodeInvalidCredentials},
		{"malformed email", map[string]any{"email": "not-an-email", "password": "x"}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"missing password", map[string]any{"email": "abc.hardware@gmail.com"}, http.StatusBadRequest, dto.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/api/v1/auth/login", "", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
				return
			}

			var result identityapp.LoginResult
			decode(t, rec, &result)
			require.NotNil(t, result.User)
			assert.Equal(t, "user_002", result.User.ID)
			assert.Equal(t, identity.DealerApproved, result.User.DealerStatus)
			require.NotNil(t, result.Token)
			assert.NotEmpty(t, result.Token.AccessToken)
			assert.NotEmpty(t, result.Token.RefreshToken)
		})
	}
}

func TestAuthHandler_SessionLifecycle(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "admin@jeenmataimpex.com",
		"password": testDemoPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login identityapp.LoginResult
	decode(t, rec, &login)

	rec = app.do(t, http.MethodGet, "/api/v1/me", login.Token.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me identity.User
	decode(t, rec, &me)
	assert.Equal(t, "admin@jeenmataimpex.com", me.Email)

	rec = app.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{"refresh_token": login.Token.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
	var refreshed auth.TokenPair
	decode(t, rec, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)

	t.Run("refresh tokens are single use", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{"refresh_token": login.Token.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, errorCode(t, rec))
	})

	rec = app.do(t, http.MethodPost, "/api/v1/auth/logout", refreshed.AccessToken, map[string]any{"refresh_token": refreshed.RefreshToken})
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("logged out access token is rejected", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/me", refreshed.AccessToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, errorCode(t, rec))
	})

	t.Run("logged out refresh token is rejected", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{"refresh_token": refreshed.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserHandler_UpdateRole(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)

	t.Run("admins cannot change their own role", func(t *testing.T) {
		rec := app.do(t, http.MethodPut, "/api/v1/admin/users/user_001/role", admin, map[string]any{"role": "user"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, dto.ErrCodeOwnRole, errorCode(t, rec))
	})

	t.Run("unknown role", func(t *testing.T) {
		rec := app.do(t, http.MethodPut, "/api/v1/admin/users/user_002/role", admin, map[string]any{"role": "owner"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("promotion revokes existing sessions", func(t *testing.T) {
		dealer := app.dealerToken(t)
		rec := app.do(t, http.MethodPut, "/api/v1/admin/users/user_002/role", admin, map[string]any{"role": "admin"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated identity.User
		decode(t, rec, &updated)
		assert.Equal(t, identity.RoleAdmin, updated.Role)

		rec = app.do(t, http.MethodGet, "/api/v1/me", dealer, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

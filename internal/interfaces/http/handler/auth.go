package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/jeenmata/impex/internal/application/identity"
	"github.com/jeenmata/impex/internal/interfaces/http/middleware"
)

// AuthHandler handles sign-in and token endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges email and password for a token pair
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new pair
// @Summary      Refresh the token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RefreshTokenRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshTokenRequest
	if !h.bindJSON(c, &req) {
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pair)
}

// Logout revokes the caller's access token and optional refresh token
// @Summary      Sign out
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LogoutRequest false "Request body"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.LogoutRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ChangePassword sets a new password for the caller
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.ChangePasswordRequest true "Request body"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req identityapp.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/jeenmata/impex/internal/application/identity"
)

// UserHandler serves the signed-in user's account and the admin user list
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the signed-in user
// @Summary      Get the signed-in user
// @Tags         account
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateMe changes the signed-in user's profile fields
// @Summary      Update the signed-in user
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identityapp.UpdateProfileRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req identityapp.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateMe(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// List returns users, newest first, optionally filtered by role or dealer status
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        role query string false "user or admin"
// @Param        dealer_status query string false "Dealer status"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var filter identityapp.UserListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	users, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, users, len(users))
}

// Get returns one user
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateRole promotes or demotes a user. Admins cannot change their own role.
// @Summary      Change a user role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "ID"
// @Param        request body identityapp.UpdateRoleRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	actorID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req identityapp.UpdateRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateDealerStatus approves, rejects or suspends a dealer account
// @Summary      Change a dealer status
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "ID"
// @Param        request body identityapp.UpdateDealerStatusRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/users/{id}/dealer-status [put]
func (h *UserHandler) UpdateDealerStatus(c *gin.Context) {
	var req identityapp.UpdateDealerStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateDealerStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

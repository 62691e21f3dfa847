package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/jeenmata/impex/internal/application/settings"
)

// SettingsHandler serves the site settings singleton
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.Service
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the current settings, or the defaults when none are stored
// @Summary      Get site settings
// @Tags         site
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// Update applies a partial change and returns the result
// @Summary      Update site settings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.UpdateSettingsRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsapp.UpdateSettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	s, err := h.settingsService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

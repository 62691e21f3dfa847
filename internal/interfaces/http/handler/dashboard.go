package handler

import (
	"github.com/gin-gonic/gin"
	dashboardapp "github.com/jeenmata/impex/internal/application/dashboard"
)

// DashboardHandler serves the admin landing page figures
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns totals plus the most recent orders and applications
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/jeenmata/impex/internal/application/analytics"
	"github.com/jeenmata/impex/internal/interfaces/http/middleware"
)

// AnalyticsHandler records page views and serves the admin summary
type AnalyticsHandler struct {
	BaseHandler
	visitService *analyticsapp.VisitService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(visitService *analyticsapp.VisitService) *AnalyticsHandler {
	return &AnalyticsHandler{visitService: visitService}
}

// RecordVisit stores a page view. Signed-in visitors are recorded by email.
// @Summary      Record a page visit
// @Tags         site
// @Accept       json
// @Produce      json
// @Param        request body analyticsapp.RecordVisitRequest true "Request body"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /page-visits [post]
func (h *AnalyticsHandler) RecordVisit(c *gin.Context) {
	var req analyticsapp.RecordVisitRequest
	if !h.bindJSON(c, &req) {
		return
	}

	visit, err := h.visitService.Record(c.Request.Context(), req, middleware.GetJWTEmail(c), c.Request.UserAgent())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, visit)
}

// Summary returns visit counts per path and the latest visits
// @Summary      Page visit summary
// @Tags         admin
// @Produce      json
// @Param        window query integer false "Latest visits to include"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/analytics/page-visits [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	window := analyticsapp.DefaultSummaryWindow
	if raw := c.Query("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.BadRequest(c, "window must be a positive number")
			return
		}
		window = n
	}

	summary, err := h.visitService.Summary(c.Request.Context(), window)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

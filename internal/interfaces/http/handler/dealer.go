package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/jeenmata/impex/internal/application/identity"
	"github.com/jeenmata/impex/internal/domain/identity"
)

// DealerHandler covers dealer applications and the dealer profile
type DealerHandler struct {
	BaseHandler
	dealerService *identityapp.DealerService
}

// NewDealerHandler creates a new DealerHandler
func NewDealerHandler(dealerService *identityapp.DealerService) *DealerHandler {
	return &DealerHandler{dealerService: dealerService}
}

// Apply submits the public "become a dealer" form
// @Summary      Submit a dealer application
// @Tags         site
// @Accept       json
// @Produce      json
// @Param        request body identityapp.DealerApplicationRequest true "Request body"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dealer-applications [post]
func (h *DealerHandler) Apply(c *gin.Context) {
	var req identityapp.DealerApplicationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	app, err := h.dealerService.Apply(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, app)
}

// Profile returns the dealer profile, prefilled from the approved
// application on first visit
// @Summary      Get the dealer profile
// @Tags         account
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/profile [get]
func (h *DealerHandler) Profile(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.dealerService.Profile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// SaveProfile stores the dealer profile form
// @Summary      Save the dealer profile
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identityapp.DealerProfileRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/profile [put]
func (h *DealerHandler) SaveProfile(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req identityapp.DealerProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.dealerService.SaveProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ListApplications returns dealer applications, optionally by status
// @Summary      List dealer applications
// @Tags         dealers
// @Produce      json
// @Param        status query string false "Application status"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/dealer-applications [get]
func (h *DealerHandler) ListApplications(c *gin.Context) {
	var filter identityapp.ApplicationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	apps, err := h.dealerService.ListApplications(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, apps, len(apps))
}

// GetApplication returns one application
// @Summary      Get a dealer application
// @Tags         dealers
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/dealer-applications/{id} [get]
func (h *DealerHandler) GetApplication(c *gin.Context) {
	app, err := h.dealerService.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// Approve approves an application and creates or upgrades the dealer account
// @Summary      Approve a dealer application
// @Tags         dealers
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/dealer-applications/{id}/approve [post]
func (h *DealerHandler) Approve(c *gin.Context) {
	result, err := h.dealerService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Reject rejects a pending application
// @Summary      Reject a dealer application
// @Tags         dealers
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/dealer-applications/{id}/reject [post]
func (h *DealerHandler) Reject(c *gin.Context) {
	app, err := h.dealerService.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// DealersOverview is the admin dealer page
type DealersOverview struct {
	Pending  []identity.DealerApplication `json:"pending_applications"`
	Approved []identity.User              `json:"approved_dealers"`
}

// Dealers returns pending applications alongside approved dealers
// @Summary      Pending applications and approved dealers
// @Tags         dealers
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/dealers [get]
func (h *DealerHandler) Dealers(c *gin.Context) {
	ctx := c.Request.Context()
	pending, err := h.dealerService.Pending(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	approved, err := h.dealerService.ApprovedDealers(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DealersOverview{Pending: pending, Approved: approved})
}

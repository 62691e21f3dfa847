package handler

import (
	"github.com/gin-gonic/gin"
	logisticsapp "github.com/jeenmata/impex/internal/application/logistics"
)

// ShipmentHandler serves inbound shipment tracking
type ShipmentHandler struct {
	BaseHandler
	shipmentService *logisticsapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *logisticsapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// List returns shipments, newest first, optionally by ?status=
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/shipments [get]
// @Router       /admin/shipments [get]
func (h *ShipmentHandler) List(c *gin.Context) {
	shipments, err := h.shipmentService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, shipments, len(shipments))
}

// Get returns one shipment
// @Summary      Get a shipment
// @Tags         shipments
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/shipments/{id} [get]
func (h *ShipmentHandler) Get(c *gin.Context) {
	shipment, err := h.shipmentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// Create adds a shipment
// @Summary      Create a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        request body logisticsapp.ShipmentRequest true "Request body"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/shipments [post]
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req logisticsapp.ShipmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shipment)
}

// Update replaces a shipment
// @Summary      Update a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id path string true "ID"
// @Param        request body logisticsapp.ShipmentRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/shipments/{id} [put]
func (h *ShipmentHandler) Update(c *gin.Context) {
	var req logisticsapp.ShipmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	shipment, err := h.shipmentService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// UpdateStatus records a shipment's new status
// @Summary      Update shipment status
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id path string true "ID"
// @Param        request body logisticsapp.UpdateShipmentStatusRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/shipments/{id}/status [put]
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	var req logisticsapp.UpdateShipmentStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	shipment, err := h.shipmentService.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// Delete removes a shipment
// @Summary      Delete a shipment
// @Tags         shipments
// @Produce      json
// @Param        id path string true "ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *gin.Context) {
	if err := h.shipmentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tradeapp "github.com/jeenmata/impex/internal/application/trade"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/jeenmata/impex/internal/interfaces/http/middleware"
)

// OrderHandler serves dealer checkout and order history, and the admin
// order screens
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout turns the caller's cart into an order
// @Summary      Check out the cart
// @Tags         dealer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param        request body tradeapp.CheckoutRequest false "Request body"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req tradeapp.CheckoutRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ListMine returns the caller's orders, newest first
// @Summary      List my orders
// @Tags         dealer
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.orderService.ListForDealer(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, orders, len(orders))
}

// GetMine returns one of the caller's orders
// @Summary      Get one of my orders
// @Tags         dealer
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/orders/{id} [get]
func (h *OrderHandler) GetMine(c *gin.Context) {
	order, err := h.orderService.GetForDealer(c.Request.Context(), c.Param("id"), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CancelMine cancels one of the caller's submitted orders
// @Summary      Cancel a submitted order
// @Tags         dealer
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/orders/{id}/cancel [post]
func (h *OrderHandler) CancelMine(c *gin.Context) {
	order, err := h.orderService.Cancel(c.Request.Context(), c.Param("id"), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns all orders for the admin table
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        status query string false "Order status"
// @Param        limit query integer false "Maximum rows, 1 to 500"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	orders, err := h.orderService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(orders, len(orders), filter.Limit))
}

// Get returns any order
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus moves an order along its workflow
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "ID"
// @Param        request body tradeapp.UpdateOrderStatusRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req tradeapp.UpdateOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

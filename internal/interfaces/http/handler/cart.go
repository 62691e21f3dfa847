package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/jeenmata/impex/internal/application/trade"
)

// CartHandler serves the dealer order cart
type CartHandler struct {
	BaseHandler
	cartService *tradeapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *tradeapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the caller's cart with totals
// @Summary      Get the cart
// @Tags         dealer
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem adds a variant to the cart, merging with an existing line
// @Summary      Add a cart item
// @Tags         dealer
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.AddCartItemRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req tradeapp.AddCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.Add(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem changes a line's quantity or note. Quantity 0 removes the line.
// @Summary      Update a cart item
// @Tags         dealer
// @Accept       json
// @Produce      json
// @Param        id path string true "Cart item ID"
// @Param        request body tradeapp.UpdateCartItemRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/cart/items/{id} [put]
// @Router       /dealer/cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req tradeapp.UpdateCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem drops a line from the cart
// @Summary      Remove a cart item
// @Tags         dealer
// @Produce      json
// @Param        id path string true "Cart item ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.Remove(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear empties the cart
// @Summary      Empty the cart
// @Tags         dealer
// @Produce      json
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dealer/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package trade

import (
	"github.com/jeenmata/impex/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest adds a product variant to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=100000"`
	Note      string `json:"note" binding:"max=500"`
}

// UpdateCartItemRequest changes the quantity and/or note of a cart line
type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity" binding:"omitempty,min=0,max=100000"`
	Note     *string `json:"note" binding:"omitempty,max=500"`
}

// CartResponse is the cart with its computed totals
type CartResponse struct {
	*cart.Cart
	Total     decimal.Decimal `json:"total_npr"`
	ItemCount int             `json:"item_count"`
}

func toCartResponse(c *cart.Cart) *CartResponse {
	return &CartResponse{Cart: c, Total: c.Total(), ItemCount: c.Count()}
}

// CheckoutRequest turns the cart into an order. An empty delivery address
// falls back to the address on the dealer profile.
type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"max=500"`
	Notes           string `json:"notes" binding:"max=2000"`
}

// UpdateOrderStatusRequest moves an order to a new status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Submitted Confirmed Processing Shipped Delivered Cancelled Archived"`
}

// OrderListFilter narrows the admin order list
type OrderListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=Submitted Confirmed Processing Shipped Delivered Cancelled Archived"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

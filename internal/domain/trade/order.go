package trade

import (
	"strconv"
	"strings"
	"time"

	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a dealer order
type OrderStatus string

const (
	OrderStatusSubmitted  OrderStatus = "Submitted"
	OrderStatusConfirmed  OrderStatus = "Confirmed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusArchived   OrderStatus = "Archived"
)

// orderTransitions lists the statuses reachable from each status
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusSubmitted:  {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusArchived},
	OrderStatusCancelled:  {OrderStatusArchived},
}

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	if s == OrderStatusArchived {
		return true
	}
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether an order may move from s to next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a line of a dealer order. Product data is copied at checkout.
type OrderItem struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductImage   string          `json:"product_image,omitempty"`
	VariantID      string          `json:"variant_id"`
	VariantDetails string          `json:"variant_details"`
	Quantity       int             `json:"quantity"`
	UnitPriceNPR   decimal.Decimal `json:"unit_price_npr"`
	Notes          string          `json:"notes,omitempty"`
}

// Subtotal returns quantity × unit price
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPriceNPR.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a dealer's request for goods
type Order struct {
	shared.BaseAggregateRoot
	DealerEmail     string          `json:"dealer_email"`
	OrderNumber     string          `json:"order_number"`
	ProductItems    []OrderItem     `json:"product_items"`
	TotalAmountNPR  decimal.Decimal `json:"total_amount_npr"`
	Status          OrderStatus     `json:"status"`
	DeliveryAddress string          `json:"delivery_address"`
	Notes           string          `json:"notes"`
}

// OrderNumber formats the public order number for a submission time
func OrderNumber(now time.Time) string {
	return "JMI-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// NewOrder creates a submitted order for a dealer
func NewOrder(dealerEmail string, items []OrderItem, deliveryAddress, notes string, now time.Time) (*Order, error) {
	dealerEmail = strings.TrimSpace(dealerEmail)
	if dealerEmail == "" {
		return nil, shared.NewValidationError("Dealer email is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "An order needs at least one item")
	}
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, shared.NewValidationError("Item quantity must be at least 1")
		}
		if item.UnitPriceNPR.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
		}
		total = total.Add(item.Subtotal())
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DealerEmail:       dealerEmail,
		OrderNumber:       OrderNumber(now),
		ProductItems:      items,
		TotalAmountNPR:    total,
		Status:            OrderStatusSubmitted,
		DeliveryAddress:   strings.TrimSpace(deliveryAddress),
		Notes:             strings.TrimSpace(notes),
	}
	o.Stamp(now, now)
	o.AddDomainEvent(NewOrderSubmittedEvent(o))
	return o, nil
}

// UpdateStatus moves the order to a new status if the transition is allowed
func (o *Order) UpdateStatus(next OrderStatus) error {
	if !next.IsValid() {
		return shared.NewValidationError("Unknown order status: " + string(next))
	}
	if !o.Status.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot change order status from "+string(o.Status)+" to "+string(next))
	}
	previous := o.Status
	o.Status = next
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))
	return nil
}

// Cancel cancels an order the dealer has not yet had confirmed
func (o *Order) Cancel() error {
	if o.Status != OrderStatusSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Only submitted orders can be cancelled by the dealer")
	}
	return o.UpdateStatus(OrderStatusCancelled)
}

// ItemCount returns the total quantity across all lines
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.ProductItems {
		n += item.Quantity
	}
	return n
}

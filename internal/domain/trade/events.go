package trade

import "github.com/jeenmata/impex/internal/domain/shared"

// AggregateTypeOrder is the aggregate type of order events
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderSubmitted     = "OrderSubmitted"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderSubmittedEvent is published when a dealer checks out
type OrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	DealerEmail string `json:"dealer_email"`
	Total       string `json:"total_amount_npr"`
	ItemCount   int    `json:"item_count"`
}

// NewOrderSubmittedEvent creates an OrderSubmittedEvent
func NewOrderSubmittedEvent(o *Order) *OrderSubmittedEvent {
	return &OrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderSubmitted, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		DealerEmail:     o.DealerEmail,
		Total:           o.TotalAmountNPR.StringFixed(2),
		ItemCount:       o.ItemCount(),
	}
}

// OrderStatusChangedEvent is published on every status change
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	DealerEmail string      `json:"dealer_email"`
	From        OrderStatus `json:"from"`
	To          OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		DealerEmail:     o.DealerEmail,
		From:            from,
		To:              o.Status,
	}
}

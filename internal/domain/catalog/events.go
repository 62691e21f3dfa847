package catalog

import "github.com/jeenmata/impex/internal/domain/shared"

// AggregateTypeProduct is the aggregate type of product events
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
)

// ProductEvent is published when a product is created or changed
type ProductEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Brand     string `json:"brand"`
}

// NewProductEvent creates a ProductEvent of the given type
func NewProductEvent(eventType string, p *Product) *ProductEvent {
	return &ProductEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Brand:           p.Brand,
	}
}

package models

import (
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	BaseModel
	DealerEmail     string            `gorm:"type:varchar(255);not null;index"`
	OrderNumber     string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProductItems    string            `gorm:"type:jsonb;not null"`
	TotalAmountNPR  decimal.Decimal   `gorm:"column:total_amount_npr;type:decimal(18,2);not null"`
	Status          trade.OrderStatus `gorm:"type:varchar(20);not null;index"`
	DeliveryAddress string            `gorm:"type:text"`
	Notes           string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return trade.TableOrders
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseAggregateRoot: m.toAggregate(),
		DealerEmail:       m.DealerEmail,
		OrderNumber:       m.OrderNumber,
		TotalAmountNPR:    m.TotalAmountNPR,
		Status:            m.Status,
		DeliveryAddress:   m.DeliveryAddress,
		Notes:             m.Notes,
	}
	decodeJSON(m.ProductItems, "product_items", m.ID, &o.ProductItems)
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.DealerEmail = o.DealerEmail
	m.OrderNumber = o.OrderNumber
	m.ProductItems = encodeJSON(o.ProductItems, "[]")
	m.TotalAmountNPR = o.TotalAmountNPR
	m.Status = o.Status
	m.DeliveryAddress = o.DeliveryAddress
	m.Notes = o.Notes
}

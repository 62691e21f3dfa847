package models

import (
	"time"

	"github.com/jeenmata/impex/internal/domain/logistics"
)

// ShipmentModel is the persistence model for the Shipment domain entity.
type ShipmentModel struct {
	BaseModel
	TrackingNumber string                   `gorm:"type:varchar(100);not null;index"`
	OriginCountry  logistics.OriginCountry  `gorm:"type:varchar(20);not null"`
	Status         logistics.ShipmentStatus `gorm:"type:varchar(30);not null;index"`
	ETADate        *time.Time               `gorm:"column:eta_date"`
	ProductNames   string                   `gorm:"type:jsonb"`
	PortName       string                   `gorm:"type:varchar(100)"`
	LastUpdated    time.Time
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return logistics.TableShipments
}

// ToDomain converts the persistence model to a domain Shipment entity.
func (m *ShipmentModel) ToDomain() *logistics.Shipment {
	s := &logistics.Shipment{
		BaseEntity:     m.BaseModel.ToDomain(),
		TrackingNumber: m.TrackingNumber,
		OriginCountry:  m.OriginCountry,
		Status:         m.Status,
		ETADate:        m.ETADate,
		PortName:       m.PortName,
		LastUpdated:    m.LastUpdated,
	}
	decodeJSON(m.ProductNames, "product_names", m.ID, &s.ProductNames)
	return s
}

// FromDomain populates the persistence model from a domain Shipment entity.
func (m *ShipmentModel) FromDomain(s *logistics.Shipment) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.TrackingNumber = s.TrackingNumber
	m.OriginCountry = s.OriginCountry
	m.Status = s.Status
	m.ETADate = s.ETADate
	m.ProductNames = encodeJSON(s.ProductNames, "[]")
	m.PortName = s.PortName
	m.LastUpdated = s.LastUpdated
}

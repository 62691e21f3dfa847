package logistics

import (
	"strings"
	"time"

	"github.com/jeenmata/impex/internal/domain/shared"
)

// TableShipments is the remote table holding shipments
const TableShipments = "shipments"

// OriginCountry is where an inbound container ships from
type OriginCountry string

const (
	OriginChina OriginCountry = "China"
	OriginIndia OriginCountry = "India"
)

// IsValid reports whether c is a supported origin
func (c OriginCountry) IsValid() bool {
	return c == OriginChina || c == OriginIndia
}

// ShipmentStatus tracks an inbound shipment on its way to the warehouse
type ShipmentStatus string

const (
	ShipmentBooked      ShipmentStatus = "Booked"
	ShipmentInTransit   ShipmentStatus = "In Transit"
	ShipmentAtPort      ShipmentStatus = "At Port"
	ShipmentCustoms     ShipmentStatus = "Customs"
	ShipmentInWarehouse ShipmentStatus = "In Warehouse"
)

// ShipmentStatuses lists the statuses in route order
var ShipmentStatuses = []ShipmentStatus{
	ShipmentBooked, ShipmentInTransit, ShipmentAtPort, ShipmentCustoms, ShipmentInWarehouse,
}

// IsValid reports whether s is a known shipment status
func (s ShipmentStatus) IsValid() bool {
	for _, v := range ShipmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Shipment is an inbound container of imported goods
type Shipment struct {
	shared.BaseEntity
	TrackingNumber string         `json:"tracking_number"`
	OriginCountry  OriginCountry  `json:"origin_country"`
	Status         ShipmentStatus `json:"status"`
	ETADate        *time.Time     `json:"eta_date,omitempty"`
	ProductNames   []string       `json:"product_names"`
	PortName       string         `json:"port_name"`
	LastUpdated    time.Time      `json:"last_updated"`
}

// ShipmentInput carries the editable fields of a shipment
type ShipmentInput struct {
	TrackingNumber string
	OriginCountry  OriginCountry
	Status         ShipmentStatus
	ETADate        *time.Time
	ProductNames   []string
	PortName       string
}

// NewShipment creates a shipment. Status defaults to Booked.
func NewShipment(in ShipmentInput, now time.Time) (*Shipment, error) {
	s := &Shipment{BaseEntity: shared.NewBaseEntity()}
	if err := s.apply(in, now); err != nil {
		return nil, err
	}
	s.Stamp(now, now)
	return s, nil
}

// Update replaces the shipment's editable fields
func (s *Shipment) Update(in ShipmentInput, now time.Time) error {
	if err := s.apply(in, now); err != nil {
		return err
	}
	s.UpdatedDate = now
	return nil
}

// UpdateStatus moves the shipment to a new status
func (s *Shipment) UpdateStatus(status ShipmentStatus, now time.Time) error {
	if !status.IsValid() {
		return shared.NewValidationError("Unknown shipment status: " + string(status))
	}
	s.Status = status
	s.LastUpdated = now
	s.UpdatedDate = now
	return nil
}

func (s *Shipment) apply(in ShipmentInput, now time.Time) error {
	tracking := strings.TrimSpace(in.TrackingNumber)
	if tracking == "" {
		return shared.NewValidationError("Tracking number is required")
	}
	if in.OriginCountry != "" && !in.OriginCountry.IsValid() {
		return shared.NewValidationError("Origin country must be China or India")
	}
	status := in.Status
	if status == "" {
		status = ShipmentBooked
	}
	if !status.IsValid() {
		return shared.NewValidationError("Unknown shipment status: " + string(status))
	}

	names := make([]string, 0, len(in.ProductNames))
	for _, n := range in.ProductNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	s.TrackingNumber = tracking
	s.OriginCountry = in.OriginCountry
	s.Status = status
	s.ETADate = in.ETADate
	s.ProductNames = names
	s.PortName = strings.TrimSpace(in.PortName)
	s.LastUpdated = now
	return nil
}

// ShipmentRepository persists shipments
type ShipmentRepository = shared.Repository[Shipment]

package logistics

import (
	"time"

	"github.com/jeenmata/impex/internal/domain/logistics"
	"github.com/jeenmata/impex/internal/domain/shared"
)

// ShipmentRequest creates or replaces a shipment
type ShipmentRequest struct {
	TrackingNumber string   `json:"tracking_number" binding:"required,max=100"`
	OriginCountry  string   `json:"origin_country" binding:"omitempty,oneof=China India"`
	Status         string   `json:"status" binding:"omitempty,oneof=Booked 'In Transit' 'At Port' Customs 'In Warehouse'"`
	ETADate        string   `json:"eta_date" binding:"omitempty,datetime=2006-01-02"`
	ProductNames   []string `json:"product_names" binding:"max=200"`
	PortName       string   `json:"port_name" binding:"max=200"`
}

func (r ShipmentRequest) toInput() (logistics.ShipmentInput, error) {
	in := logistics.ShipmentInput{
		TrackingNumber: r.TrackingNumber,
		OriginCountry:  logistics.OriginCountry(r.OriginCountry),
		Status:         logistics.ShipmentStatus(r.Status),
		ProductNames:   r.ProductNames,
		PortName:       r.PortName,
	}
	if r.ETADate != "" {
		eta, err := time.Parse(time.DateOnly, r.ETADate)
		if err != nil {
			return in, shared.NewValidationError("ETA date must be YYYY-MM-DD")
		}
		in.ETADate = &eta
	}
	return in, nil
}

// UpdateShipmentStatusRequest moves a shipment to a new status
type UpdateShipmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Booked 'In Transit' 'At Port' Customs 'In Warehouse'"`
}

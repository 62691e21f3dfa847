// Package logistics tracks inbound import shipments.
package logistics

import (
	"context"
	"time"

	"github.com/jeenmata/impex/internal/domain/logistics"
	"github.com/jeenmata/impex/internal/domain/shared"
	"go.uber.org/zap"
)

// ShipmentService handles shipment-related business operations
type ShipmentService struct {
	shipmentRepo logistics.ShipmentRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(shipmentRepo logistics.ShipmentRepository, logger *zap.Logger) *ShipmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipmentService{shipmentRepo: shipmentRepo, logger: logger, now: time.Now}
}

// List returns shipments, newest first. An empty status lists all.
func (s *ShipmentService) List(ctx context.Context, status string) ([]logistics.Shipment, error) {
	q := shared.NewQuery("-created_date", 0)
	if status != "" {
		q = q.Where("status", status)
	}
	return s.shipmentRepo.List(ctx, q)
}

// Get returns a shipment by ID
func (s *ShipmentService) Get(ctx context.Context, id string) (*logistics.Shipment, error) {
	return s.shipmentRepo.Get(ctx, id)
}

// Create books a new shipment
func (s *ShipmentService) Create(ctx context.Context, req ShipmentRequest) (*logistics.Shipment, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	shipment, err := logistics.NewShipment(in, s.now())
	if err != nil {
		return nil, err
	}
	saved, err := s.shipmentRepo.Create(ctx, shipment)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Shipment booked",
		zap.String("shipment_id", saved.ID),
		zap.String("tracking_number", saved.TrackingNumber))
	return saved, nil
}

// Update replaces a shipment's editable fields
func (s *ShipmentService) Update(ctx context.Context, id string, req ShipmentRequest) (*logistics.Shipment, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	shipment, err := s.shipmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.Update(in, s.now()); err != nil {
		return nil, err
	}
	return s.shipmentRepo.Update(ctx, shipment)
}

// UpdateStatus moves a shipment to a new status and records when
func (s *ShipmentService) UpdateStatus(ctx context.Context, id string, req UpdateShipmentStatusRequest) (*logistics.Shipment, error) {
	shipment, err := s.shipmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.UpdateStatus(logistics.ShipmentStatus(req.Status), s.now()); err != nil {
		return nil, err
	}
	return s.shipmentRepo.Update(ctx, shipment)
}

// Delete removes a shipment
func (s *ShipmentService) Delete(ctx context.Context, id string) error {
	return s.shipmentRepo.Delete(ctx, id)
}

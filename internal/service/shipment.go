package service

import (
	"context"

	"github.com/serragrande/logsgb/internal/models"
)

// ShipmentStore defines the adapter operations used for shipments.
type ShipmentStore interface {
	Insert(ctx context.Context, s models.Shipment) (models.Shipment, error)
	DeleteByID(ctx context.Context, id string) error
}

// ShipmentService persists records produced by the wizard and handles
// deletions. Deletion failures are returned to the caller; the follow-up
// snapshot reload is fire-and-forget either way.
type ShipmentService struct {
	repo ShipmentStore
	snap Reloader
}

// NewShipmentService constructs the shipment service.
func NewShipmentService(repo ShipmentStore, snap Reloader) *ShipmentService {
	return &ShipmentService{repo: repo, snap: snap}
}

// Create persists one completed shipment record.
func (s *ShipmentService) Create(ctx context.Context, shipment models.Shipment) (models.Shipment, error) {
	saved, err := s.repo.Insert(ctx, shipment)
	if err != nil {
		return models.Shipment{}, err
	}
	s.snap.ReloadAfterMutation(ctx)
	return saved, nil
}

// Delete removes one shipment record.
func (s *ShipmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.snap.ReloadAfterMutation(ctx)
	return nil
}

// Package snapshot holds the in-memory copy of the business collections.
// The copy is read-mostly: it is reloaded wholesale after every mutation and
// never patched incrementally. A failed reload keeps the prior snapshot.
package snapshot

import (
	"context"
	"sync"

	"github.com/serragrande/logsgb/internal/metrics"
	"github.com/serragrande/logsgb/internal/models"
	"go.uber.org/zap"
)

// ProductSource lists products from the remote store.
type ProductSource interface {
	ListAll(ctx context.Context) ([]models.Product, error)
}

// DriverSource lists drivers from the remote store.
type DriverSource interface {
	ListAll(ctx context.Context) ([]models.Driver, error)
}

// TruckSource lists trucks from the remote store.
type TruckSource interface {
	ListAll(ctx context.Context) ([]models.Truck, error)
}

// TrailerSource lists trailers from the remote store.
type TrailerSource interface {
	ListAll(ctx context.Context) ([]models.Trailer, error)
}

// ShipmentSource lists shipments from the remote store.
type ShipmentSource interface {
	ListAll(ctx context.Context) ([]models.Shipment, error)
}

// Store caches the five business collections behind a mutex.
type Store struct {
	products ProductSource
	drivers  DriverSource
	trucks   TruckSource
	trailers TrailerSource
	ships    ShipmentSource
	log      *zap.Logger

	mu        sync.RWMutex
	productsC []models.Product
	driversC  []models.Driver
	trucksC   []models.Truck
	trailersC []models.Trailer
	shipsC    []models.Shipment
}

// New constructs an empty snapshot store over the given sources.
func New(
	products ProductSource,
	drivers DriverSource,
	trucks TruckSource,
	trailers TrailerSource,
	ships ShipmentSource,
	log *zap.Logger,
) *Store {
	return &Store{
		products: products,
		drivers:  drivers,
		trucks:   trucks,
		trailers: trailers,
		ships:    ships,
		log:      log,
	}
}

// Reload refetches all five collections from the remote store. On error the
// prior snapshot is left in place and the error is returned.
func (s *Store) Reload(ctx context.Context) error {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		metrics.ObserveReload(err)
		return err
	}
	drivers, err := s.drivers.ListAll(ctx)
	if err != nil {
		metrics.ObserveReload(err)
		return err
	}
	trucks, err := s.trucks.ListAll(ctx)
	if err != nil {
		metrics.ObserveReload(err)
		return err
	}
	trailers, err := s.trailers.ListAll(ctx)
	if err != nil {
		metrics.ObserveReload(err)
		return err
	}
	ships, err := s.ships.ListAll(ctx)
	if err != nil {
		metrics.ObserveReload(err)
		return err
	}

	s.mu.Lock()
	s.productsC = products
	s.driversC = drivers
	s.trucksC = trucks
	s.trailersC = trailers
	s.shipsC = ships
	s.mu.Unlock()
	metrics.ObserveReload(nil)
	return nil
}

// ReloadAfterMutation reloads the snapshot, logging and swallowing any
// error so the triggering write stays reported as successful.
func (s *Store) ReloadAfterMutation(ctx context.Context) {
	if err := s.Reload(ctx); err != nil {
		s.log.Error("snapshot reload failed, serving stale data", zap.Error(err))
	}
}

// Products returns a copy of the cached product list.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.productsC...)
}

// Drivers returns a copy of the cached driver list.
func (s *Store) Drivers() []models.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Driver(nil), s.driversC...)
}

// Trucks returns a copy of the cached truck list.
func (s *Store) Trucks() []models.Truck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Truck(nil), s.trucksC...)
}

// Trailers returns a copy of the cached trailer list.
func (s *Store) Trailers() []models.Trailer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Trailer(nil), s.trailersC...)
}

// Shipments returns a copy of the cached shipment list, newest first.
func (s *Store) Shipments() []models.Shipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Shipment(nil), s.shipsC...)
}

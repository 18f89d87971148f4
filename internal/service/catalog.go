package service

import (
	"context"
	"errors"
	"strings"

	"github.com/serragrande/logsgb/internal/models"
	"github.com/shopspring/decimal"
)

// ErrMissingFields is returned when a required form field is empty.
var ErrMissingFields = errors.New("required field missing")

// Reloader triggers the wholesale snapshot refresh that follows every
// mutation.
type Reloader interface {
	ReloadAfterMutation(ctx context.Context)
}

// ProductStore defines the adapter operations used for products.
type ProductStore interface {
	Insert(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, id string, p models.Product) error
	DeleteByID(ctx context.Context, id string) error
}

// DriverStore defines the adapter operations used for drivers.
type DriverStore interface {
	Insert(ctx context.Context, d models.Driver) (models.Driver, error)
	Update(ctx context.Context, id string, d models.Driver) error
	DeleteByID(ctx context.Context, id string) error
}

// TruckStore defines the adapter operations used for trucks.
type TruckStore interface {
	Insert(ctx context.Context, t models.Truck) (models.Truck, error)
	Update(ctx context.Context, id string, t models.Truck) error
	SetTrailer(ctx context.Context, id string, trailerID string) error
	DeleteByID(ctx context.Context, id string) error
}

// TrailerStore defines the adapter operations used for trailers.
type TrailerStore interface {
	Insert(ctx context.Context, t models.Trailer) (models.Trailer, error)
	Update(ctx context.Context, id string, t models.Trailer) error
	DeleteByID(ctx context.Context, id string) error
}

// ComputeHLPerPackage derives hectoliters per package from the two inputs:
// units_per_package * liters / 100. The derived value is recomputed on every
// product save regardless of what was stored before.
func ComputeHLPerPackage(unitsPerPackage, liters float64) float64 {
	hl := decimal.NewFromFloat(unitsPerPackage).
		Mul(decimal.NewFromFloat(liters)).
		Div(decimal.NewFromInt(100))
	f, _ := hl.Float64()
	return f
}

// CatalogService maintains the four catalog collections. Every mutation is
// followed by a wholesale snapshot reload.
type CatalogService struct {
	products ProductStore
	drivers  DriverStore
	trucks   TruckStore
	trailers TrailerStore
	snap     Reloader
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(
	products ProductStore,
	drivers DriverStore,
	trucks TruckStore,
	trailers TrailerStore,
	snap Reloader,
) *CatalogService {
	return &CatalogService{
		products: products,
		drivers:  drivers,
		trucks:   trucks,
		trailers: trailers,
		snap:     snap,
	}
}

// SaveProduct inserts or updates a product depending on ID presence.
// The hl_per_package field is always recomputed from the inputs.
func (s *CatalogService) SaveProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.Code == "" || p.Description == "" || p.Brand == "" {
		return models.Product{}, ErrMissingFields
	}
	p.HLPerPackage = ComputeHLPerPackage(p.UnitsPerPackage, p.Liters)

	if p.ID == "" {
		saved, err := s.products.Insert(ctx, p)
		if err != nil {
			return models.Product{}, err
		}
		s.snap.ReloadAfterMutation(ctx)
		return saved, nil
	}
	if err := s.products.Update(ctx, p.ID, p); err != nil {
		return models.Product{}, err
	}
	s.snap.ReloadAfterMutation(ctx)
	return p, nil
}

// SaveDriver inserts or updates a driver.
func (s *CatalogService) SaveDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	if d.Name == "" || d.TaxID == "" {
		return models.Driver{}, ErrMissingFields
	}
	if d.ID == "" {
		saved, err := s.drivers.Insert(ctx, d)
		if err != nil {
			return models.Driver{}, err
		}
		s.snap.ReloadAfterMutation(ctx)
		return saved, nil
	}
	if err := s.drivers.Update(ctx, d.ID, d); err != nil {
		return models.Driver{}, err
	}
	s.snap.ReloadAfterMutation(ctx)
	return d, nil
}

// SaveTruck inserts or updates a truck. The plate is upper-cased.
func (s *CatalogService) SaveTruck(ctx context.Context, t models.Truck) (models.Truck, error) {
	t.Plate = strings.ToUpper(strings.TrimSpace(t.Plate))
	if t.Plate == "" {
		return models.Truck{}, ErrMissingFields
	}
	if t.ID == "" {
		saved, err := s.trucks.Insert(ctx, t)
		if err != nil {
			return models.Truck{}, err
		}
		s.snap.ReloadAfterMutation(ctx)
		return saved, nil
	}
	if err := s.trucks.Update(ctx, t.ID, t); err != nil {
		return models.Truck{}, err
	}
	s.snap.ReloadAfterMutation(ctx)
	return t, nil
}

// SaveTrailer inserts or updates a trailer. The plate is upper-cased.
func (s *CatalogService) SaveTrailer(ctx context.Context, t models.Trailer) (models.Trailer, error) {
	t.Plate = strings.ToUpper(strings.TrimSpace(t.Plate))
	if t.Plate == "" {
		return models.Trailer{}, ErrMissingFields
	}
	if t.ID == "" {
		saved, err := s.trailers.Insert(ctx, t)
		if err != nil {
			return models.Trailer{}, err
		}
		s.snap.ReloadAfterMutation(ctx)
		return saved, nil
	}
	if err := s.trailers.Update(ctx, t.ID, t); err != nil {
		return models.Trailer{}, err
	}
	s.snap.ReloadAfterMutation(ctx)
	return t, nil
}

// LinkTrailer attaches a trailer to a truck, or detaches the current one
// when trailerID is empty.
func (s *CatalogService) LinkTrailer(ctx context.Context, truckID, trailerID string) error {
	if err := s.trucks.SetTrailer(ctx, truckID, trailerID); err != nil {
		return err
	}
	s.snap.ReloadAfterMutation(ctx)
	return nil
}

// DeleteProduct removes a product by ID.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.snap.ReloadAfterMutation(ctx)
	return nil
}

// DeleteDriver removes a driver by ID. Shipments referencing the driver are
// neither blocked nor cascaded.
func (s *CatalogService) DeleteDriver(ctx context.Context, id string) error {
	if err := s.drivers.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.snap.ReloadAfterMutation(ctx)
	return nil
}

// DeleteTruck removes a truck by ID.
func (s *CatalogService) DeleteTruck(ctx context.Context, id string) error {
	if err := s.trucks.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.snap.ReloadAfterMutation(ctx)
	return nil
}

// DeleteTrailer removes a trailer by ID.
func (s *CatalogService) DeleteTrailer(ctx context.Context, id string) error {
	if err := s.trailers.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.snap.ReloadAfterMutation(ctx)
	return nil
}

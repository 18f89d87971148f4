package service

import (
	"context"
	"errors"
	"testing"

	"github.com/serragrande/logsgb/internal/models"
)

type mockReloader struct {
	calls int
}

func (m *mockReloader) ReloadAfterMutation(ctx context.Context) { m.calls++ }

type mockProductStore struct {
	InsertFunc     func(ctx context.Context, p models.Product) (models.Product, error)
	UpdateFunc     func(ctx context.Context, id string, p models.Product) error
	DeleteByIDFunc func(ctx context.Context, id string) error
}

func (m *mockProductStore) Insert(ctx context.Context, p models.Product) (models.Product, error) {
	return m.InsertFunc(ctx, p)
}
func (m *mockProductStore) Update(ctx context.Context, id string, p models.Product) error {
	return m.UpdateFunc(ctx, id, p)
}
func (m *mockProductStore) DeleteByID(ctx context.Context, id string) error {
	return m.DeleteByIDFunc(ctx, id)
}

type mockDriverStore struct {
	InsertFunc     func(ctx context.Context, d models.Driver) (models.Driver, error)
	UpdateFunc     func(ctx context.Context, id string, d models.Driver) error
	DeleteByIDFunc func(ctx context.Context, id string) error
}

func (m *mockDriverStore) Insert(ctx context.Context, d models.Driver) (models.Driver, error) {
	return m.InsertFunc(ctx, d)
}
func (m *mockDriverStore) Update(ctx context.Context, id string, d models.Driver) error {
	return m.UpdateFunc(ctx, id, d)
}
func (m *mockDriverStore) DeleteByID(ctx context.Context, id string) error {
	return m.DeleteByIDFunc(ctx, id)
}

type mockTruckStore struct {
	InsertFunc     func(ctx context.Context, tr models.Truck) (models.Truck, error)
	UpdateFunc     func(ctx context.Context, id string, tr models.Truck) error
	SetTrailerFunc func(ctx context.Context, id string, trailerID string) error
	DeleteByIDFunc func(ctx context.Context, id string) error
}

func (m *mockTruckStore) Insert(ctx context.Context, tr models.Truck) (models.Truck, error) {
	return m.InsertFunc(ctx, tr)
}
func (m *mockTruckStore) Update(ctx context.Context, id string, tr models.Truck) error {
	return m.UpdateFunc(ctx, id, tr)
}
func (m *mockTruckStore) SetTrailer(ctx context.Context, id string, trailerID string) error {
	return m.SetTrailerFunc(ctx, id, trailerID)
}
func (m *mockTruckStore) DeleteByID(ctx context.Context, id string) error {
	return m.DeleteByIDFunc(ctx, id)
}

func TestComputeHLPerPackage(t *testing.T) {
	tests := []struct {
		name  string
		units float64
		liter float64
		want  float64
	}{
		{"12 x 600ml", 12, 0.6, 0.072},
		{"6 x 2L", 6, 2, 0.12},
		{"zero units", 0, 0.6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeHLPerPackage(tt.units, tt.liter); got != tt.want {
				t.Errorf("ComputeHLPerPackage(%v, %v) = %v; want %v", tt.units, tt.liter, got, tt.want)
			}
		})
	}
}

func TestSaveProduct_RecomputesDerivedField(t *testing.T) {
	reload := &mockReloader{}
	products := &mockProductStore{
		InsertFunc: func(ctx context.Context, p models.Product) (models.Product, error) {
			p.ID = "p1"
			return p, nil
		},
	}
	svc := NewCatalogService(products, nil, nil, nil, reload)

	saved, err := svc.SaveProduct(context.Background(), models.Product{
		Code: "0101", Description: "Cerveja 600ml", Brand: "Serra",
		Liters: 0.6, UnitsPerPackage: 12,
		HLPerPackage: 99, // hand-edited value must be overwritten
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.HLPerPackage != 0.072 {
		t.Errorf("HLPerPackage = %v; want 0.072", saved.HLPerPackage)
	}
	if reload.calls != 1 {
		t.Errorf("reload calls = %d; want 1", reload.calls)
	}
}

func TestSaveProduct_MissingFields(t *testing.T) {
	svc := NewCatalogService(&mockProductStore{}, nil, nil, nil, &mockReloader{})

	_, err := svc.SaveProduct(context.Background(), models.Product{Code: "0101"})
	if !errors.Is(err, ErrMissingFields) {
		t.Errorf("error = %v; want ErrMissingFields", err)
	}
}

func TestSaveProduct_UpdateByID(t *testing.T) {
	var updatedID string
	reload := &mockReloader{}
	products := &mockProductStore{
		UpdateFunc: func(ctx context.Context, id string, p models.Product) error {
			updatedID = id
			return nil
		},
	}
	svc := NewCatalogService(products, nil, nil, nil, reload)

	_, err := svc.SaveProduct(context.Background(), models.Product{
		ID: "p1", Code: "0101", Description: "Cerveja 600ml", Brand: "Serra",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updatedID != "p1" {
		t.Errorf("updated ID = %q; want p1", updatedID)
	}
	if reload.calls != 1 {
		t.Errorf("reload calls = %d; want 1", reload.calls)
	}
}

func TestSaveTruck_UppercasesPlate(t *testing.T) {
	reload := &mockReloader{}
	trucks := &mockTruckStore{
		InsertFunc: func(ctx context.Context, tr models.Truck) (models.Truck, error) {
			tr.ID = "t1"
			return tr, nil
		},
	}
	svc := NewCatalogService(nil, nil, trucks, nil, reload)

	saved, err := svc.SaveTruck(context.Background(), models.Truck{Plate: " aaa1234 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Plate != "AAA1234" {
		t.Errorf("plate = %q; want AAA1234", saved.Plate)
	}
}

func TestLinkTrailer_TriggersReload(t *testing.T) {
	reload := &mockReloader{}
	var gotTruck, gotTrailer string
	trucks := &mockTruckStore{
		SetTrailerFunc: func(ctx context.Context, id string, trailerID string) error {
			gotTruck, gotTrailer = id, trailerID
			return nil
		},
	}
	svc := NewCatalogService(nil, nil, trucks, nil, reload)

	if err := svc.LinkTrailer(context.Background(), "t1", "tr1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTruck != "t1" || gotTrailer != "tr1" {
		t.Errorf("SetTrailer(%q, %q); want (t1, tr1)", gotTruck, gotTrailer)
	}
	if reload.calls != 1 {
		t.Errorf("reload calls = %d; want 1", reload.calls)
	}
}

func TestDeleteDriver_FailurePropagatesWithoutReload(t *testing.T) {
	reload := &mockReloader{}
	drivers := &mockDriverStore{
		DeleteByIDFunc: func(ctx context.Context, id string) error {
			return errors.New("store down")
		},
	}
	svc := NewCatalogService(nil, drivers, nil, nil, reload)

	if err := svc.DeleteDriver(context.Background(), "d1"); err == nil {
		t.Errorf("expected error, got nil")
	}
	if reload.calls != 0 {
		t.Errorf("reload calls = %d; want 0", reload.calls)
	}
}

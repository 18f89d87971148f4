package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/serragrande/logsgb/internal/metrics"
	"github.com/serragrande/logsgb/internal/models"
)

// PostgresTruckRepository persists the truck fleet, including the weak
// reference to the currently attached trailer.
type PostgresTruckRepository struct {
	DB *sql.DB
}

// NewPostgresTruckRepository creates a truck repository over the given
// database connection.
func NewPostgresTruckRepository(db *sql.DB) *PostgresTruckRepository {
	return &PostgresTruckRepository{DB: db}
}

// ListAll returns every truck.
func (r *PostgresTruckRepository) ListAll(ctx context.Context) ([]models.Truck, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, plate, model, image, trailer_id FROM trucks
	`)
	metrics.ObserveStore("trucks", "list", err)
	if err != nil {
		return nil, fmt.Errorf("list trucks: %w", err)
	}
	defer rows.Close()

	var trucks []models.Truck
	for rows.Next() {
		var t models.Truck
		if err := rows.Scan(&t.ID, &t.Plate, &t.Model, &t.Image, &t.TrailerID); err != nil {
			return nil, fmt.Errorf("scan truck: %w", err)
		}
		trucks = append(trucks, t)
	}
	return trucks, rows.Err()
}

// Insert stores a new truck, assigning its record identifier.
func (r *PostgresTruckRepository) Insert(ctx context.Context, t models.Truck) (models.Truck, error) {
	t.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO trucks (id, plate, model, image, trailer_id)
		VALUES ($1, $2, $3, $4, $5)
	`, t.ID, t.Plate, t.Model, t.Image, t.TrailerID)
	metrics.ObserveStore("trucks", "insert", err)
	if err != nil {
		return models.Truck{}, fmt.Errorf("insert truck: %w", err)
	}
	return t, nil
}

// Update overwrites the truck with the given ID.
func (r *PostgresTruckRepository) Update(ctx context.Context, id string, t models.Truck) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE trucks
		   SET plate = $2, model = $3, image = $4, trailer_id = $5
		 WHERE id = $1
	`, id, t.Plate, t.Model, t.Image, t.TrailerID)
	metrics.ObserveStore("trucks", "update", err)
	if err != nil {
		return fmt.Errorf("update truck: %w", err)
	}
	return nil
}

// SetTrailer attaches the given trailer to the truck, or detaches it when
// trailerID is empty. A truck holds at most one trailer at a time.
func (r *PostgresTruckRepository) SetTrailer(ctx context.Context, id string, trailerID string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE trucks SET trailer_id = $2 WHERE id = $1
	`, id, trailerID)
	metrics.ObserveStore("trucks", "update", err)
	if err != nil {
		return fmt.Errorf("set trailer: %w", err)
	}
	return nil
}

// DeleteByID removes the truck with the given ID.
func (r *PostgresTruckRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM trucks WHERE id = $1`, id)
	metrics.ObserveStore("trucks", "delete", err)
	return err
}

// PostgresTrailerRepository persists the trailer pool.
type PostgresTrailerRepository struct {
	DB *sql.DB
}

// NewPostgresTrailerRepository creates a trailer repository over the given
// database connection.
func NewPostgresTrailerRepository(db *sql.DB) *PostgresTrailerRepository {
	return &PostgresTrailerRepository{DB: db}
}

// ListAll returns every trailer.
func (r *PostgresTrailerRepository) ListAll(ctx context.Context) ([]models.Trailer, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, plate, image FROM trailers
	`)
	metrics.ObserveStore("trailers", "list", err)
	if err != nil {
		return nil, fmt.Errorf("list trailers: %w", err)
	}
	defer rows.Close()

	var trailers []models.Trailer
	for rows.Next() {
		var t models.Trailer
		if err := rows.Scan(&t.ID, &t.Plate, &t.Image); err != nil {
			return nil, fmt.Errorf("scan trailer: %w", err)
		}
		trailers = append(trailers, t)
	}
	return trailers, rows.Err()
}

// Insert stores a new trailer, assigning its record identifier.
func (r *PostgresTrailerRepository) Insert(ctx context.Context, t models.Trailer) (models.Trailer, error) {
	t.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO trailers (id, plate, image) VALUES ($1, $2, $3)
	`, t.ID, t.Plate, t.Image)
	metrics.ObserveStore("trailers", "insert", err)
	if err != nil {
		return models.Trailer{}, fmt.Errorf("insert trailer: %w", err)
	}
	return t, nil
}

// Update overwrites the trailer with the given ID.
func (r *PostgresTrailerRepository) Update(ctx context.Context, id string, t models.Trailer) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE trailers SET plate = $2, image = $3 WHERE id = $1
	`, id, t.Plate, t.Image)
	metrics.ObserveStore("trailers", "update", err)
	if err != nil {
		return fmt.Errorf("update trailer: %w", err)
	}
	return nil
}

// DeleteByID removes the trailer with the given ID. Trucks referencing it
// keep their stale reference until relinked.
func (r *PostgresTrailerRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM trailers WHERE id = $1`, id)
	metrics.ObserveStore("trailers", "delete", err)
	return err
}

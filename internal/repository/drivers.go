package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/serragrande/logsgb/internal/metrics"
	"github.com/serragrande/logsgb/internal/models"
)

// PostgresDriverRepository persists the driver roster.
type PostgresDriverRepository struct {
	DB *sql.DB
}

// NewPostgresDriverRepository creates a driver repository over the given
// database connection.
func NewPostgresDriverRepository(db *sql.DB) *PostgresDriverRepository {
	return &PostgresDriverRepository{DB: db}
}

// ListAll returns every driver.
func (r *PostgresDriverRepository) ListAll(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, tax_id, birth_date, image FROM drivers
	`)
	metrics.ObserveStore("drivers", "list", err)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.TaxID, &d.BirthDate, &d.Image); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// Insert stores a new driver, assigning its record identifier.
func (r *PostgresDriverRepository) Insert(ctx context.Context, d models.Driver) (models.Driver, error) {
	d.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO drivers (id, name, tax_id, birth_date, image)
		VALUES ($1, $2, $3, $4, $5)
	`, d.ID, d.Name, d.TaxID, d.BirthDate, d.Image)
	metrics.ObserveStore("drivers", "insert", err)
	if err != nil {
		return models.Driver{}, fmt.Errorf("insert driver: %w", err)
	}
	return d, nil
}

// Update overwrites the driver with the given ID.
func (r *PostgresDriverRepository) Update(ctx context.Context, id string, d models.Driver) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE drivers
		   SET name = $2, tax_id = $3, birth_date = $4, image = $5
		 WHERE id = $1
	`, id, d.Name, d.TaxID, d.BirthDate, d.Image)
	metrics.ObserveStore("drivers", "update", err)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

// DeleteByID removes the driver with the given ID. Shipments referencing the
// driver keep their name snapshot; referential integrity is not enforced.
func (r *PostgresDriverRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	metrics.ObserveStore("drivers", "delete", err)
	return err
}

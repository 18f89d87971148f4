// Package repository provides Postgres-backed persistence for the LOG-SGB
// collections. Every repository implements the same uniform contract:
// ListAll, Insert, Update by ID and DeleteByID, with no pagination and no
// cross-table coordination.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/serragrande/logsgb/internal/metrics"
	"github.com/serragrande/logsgb/internal/models"
)

// PostgresProductRepository persists the product catalog.
type PostgresProductRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProductRepository creates a product repository over the given
// database connection.
func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{DB: db}
}

// ListAll returns every product in the catalog.
func (r *PostgresProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, code, description, brand, liters, units_per_package,
		       packages_per_pallet, returnable, hl_per_package, image
		  FROM products
	`)
	metrics.ObserveStore("products", "list", err)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.Brand, &p.Liters,
			&p.UnitsPerPackage, &p.PackagesPerPallet, &p.Returnable,
			&p.HLPerPackage, &p.Image); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Insert stores a new product, assigning its record identifier.
func (r *PostgresProductRepository) Insert(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO products (id, code, description, brand, liters, units_per_package,
		                      packages_per_pallet, returnable, hl_per_package, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.ID, p.Code, p.Description, p.Brand, p.Liters, p.UnitsPerPackage,
		p.PackagesPerPallet, p.Returnable, p.HLPerPackage, p.Image)
	metrics.ObserveStore("products", "insert", err)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// Update overwrites the product with the given ID.
func (r *PostgresProductRepository) Update(ctx context.Context, id string, p models.Product) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE products
		   SET code = $2, description = $3, brand = $4, liters = $5,
		       units_per_package = $6, packages_per_pallet = $7,
		       returnable = $8, hl_per_package = $9, image = $10
		 WHERE id = $1
	`, id, p.Code, p.Description, p.Brand, p.Liters, p.UnitsPerPackage,
		p.PackagesPerPallet, p.Returnable, p.HLPerPackage, p.Image)
	metrics.ObserveStore("products", "update", err)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DeleteByID removes the product with the given ID. Shipments referencing
// the product keep their snapshot line items untouched.
func (r *PostgresProductRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	metrics.ObserveStore("products", "delete", err)
	return err
}

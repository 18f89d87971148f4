package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/serragrande/logsgb/internal/metrics"
	"github.com/serragrande/logsgb/internal/models"
)

// PostgresShipmentRepository persists shipment records. Line items are
// stored denormalized on the row as a JSONB column; a shipment and its items
// are always written as one record.
type PostgresShipmentRepository struct {
	DB *sql.DB
}

// NewPostgresShipmentRepository creates a shipment repository over the given
// database connection.
func NewPostgresShipmentRepository(db *sql.DB) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{DB: db}
}

// ListAll returns every shipment, newest first.
func (r *PostgresShipmentRepository) ListAll(ctx context.Context) ([]models.Shipment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, transport_doc, invoice_number, invoice_date, driver_id,
		       driver_name, truck_id, truck_plate, trailer_plate, items,
		       total_hl, total_returnable_hl, created_at
		  FROM shipments
		 ORDER BY created_at DESC
	`)
	metrics.ObserveStore("shipments", "list", err)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var shipments []models.Shipment
	for rows.Next() {
		var s models.Shipment
		var items []byte
		if err := rows.Scan(&s.ID, &s.TransportDoc, &s.InvoiceNumber, &s.InvoiceDate,
			&s.DriverID, &s.DriverName, &s.TruckID, &s.TruckPlate, &s.TrailerPlate,
			&items, &s.TotalHL, &s.TotalReturnableHL, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		shipments = append(shipments, s)
	}
	return shipments, rows.Err()
}

// Insert stores a new shipment record, assigning its record identifier.
func (r *PostgresShipmentRepository) Insert(ctx context.Context, s models.Shipment) (models.Shipment, error) {
	s.ID = uuid.NewString()
	items, err := json.Marshal(s.Items)
	if err != nil {
		return models.Shipment{}, fmt.Errorf("encode items: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO shipments (id, transport_doc, invoice_number, invoice_date,
		                       driver_id, driver_name, truck_id, truck_plate,
		                       trailer_plate, items, total_hl, total_returnable_hl,
		                       created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, s.ID, s.TransportDoc, s.InvoiceNumber, s.InvoiceDate, s.DriverID,
		s.DriverName, s.TruckID, s.TruckPlate, s.TrailerPlate, items,
		s.TotalHL, s.TotalReturnableHL, s.CreatedAt)
	metrics.ObserveStore("shipments", "insert", err)
	if err != nil {
		return models.Shipment{}, fmt.Errorf("insert shipment: %w", err)
	}
	return s, nil
}

// Update overwrites the shipment with the given ID.
func (r *PostgresShipmentRepository) Update(ctx context.Context, id string, s models.Shipment) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		UPDATE shipments
		   SET transport_doc = $2, invoice_number = $3, invoice_date = $4,
		       driver_id = $5, driver_name = $6, truck_id = $7, truck_plate = $8,
		       trailer_plate = $9, items = $10, total_hl = $11,
		       total_returnable_hl = $12
		 WHERE id = $1
	`, id, s.TransportDoc, s.InvoiceNumber, s.InvoiceDate, s.DriverID,
		s.DriverName, s.TruckID, s.TruckPlate, s.TrailerPlate, items,
		s.TotalHL, s.TotalReturnableHL)
	metrics.ObserveStore("shipments", "update", err)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	return nil
}

// DeleteByID removes the shipment with the given ID.
func (r *PostgresShipmentRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	metrics.ObserveStore("shipments", "delete", err)
	return err
}

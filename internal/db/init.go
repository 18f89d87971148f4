package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL,
    brand TEXT NOT NULL,
    liters DOUBLE PRECISION NOT NULL DEFAULT 0,
    units_per_package DOUBLE PRECISION NOT NULL DEFAULT 0,
    packages_per_pallet DOUBLE PRECISION NOT NULL DEFAULT 0,
    returnable BOOLEAN NOT NULL DEFAULT FALSE,
    hl_per_package DOUBLE PRECISION NOT NULL DEFAULT 0,
    image TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS drivers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    tax_id TEXT NOT NULL,
    birth_date TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS trucks (
    id TEXT PRIMARY KEY,
    plate TEXT NOT NULL,
    model TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    trailer_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS trailers (
    id TEXT PRIMARY KEY,
    plate TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS shipments (
    id TEXT PRIMARY KEY,
    transport_doc TEXT NOT NULL,
    invoice_number TEXT NOT NULL DEFAULT '',
    invoice_date TEXT NOT NULL DEFAULT '',
    driver_id TEXT NOT NULL DEFAULT '',
    driver_name TEXT NOT NULL DEFAULT '',
    truck_id TEXT NOT NULL DEFAULT '',
    truck_plate TEXT NOT NULL DEFAULT '',
    trailer_plate TEXT NOT NULL DEFAULT 'N/A',
    items JSONB NOT NULL DEFAULT '[]',
    total_hl DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_returnable_hl DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS app_users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    admin BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// InitPostgres opens the remote store, verifies connectivity and bootstraps
// the table schema. The returned handle is a process-lifetime singleton that
// callers pass explicitly to the repositories.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// Package http provides the HTTP handlers and routing of the LOG-SGB API.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/serragrande/logsgb/internal/models"
)

// SnapshotView is the read side of the in-memory collections the handlers
// render from.
type SnapshotView interface {
	Products() []models.Product
	Drivers() []models.Driver
	Trucks() []models.Truck
	Trailers() []models.Trailer
	Shipments() []models.Shipment
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

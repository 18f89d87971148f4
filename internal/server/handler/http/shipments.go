package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/serragrande/logsgb/internal/models"
	"github.com/serragrande/logsgb/internal/service"
	"go.uber.org/zap"
)

// ShipmentService defines the shipment mutations required by the HTTP
// handlers.
type ShipmentService interface {
	Delete(ctx context.Context, id string) error
}

// ShipmentHandler serves the shipment ledger.
type ShipmentHandler struct {
	Shipments ShipmentService
	Snapshot  SnapshotView
	Log       *zap.Logger
}

// List handles GET /api/shipments. With both month and year query
// parameters present the ledger is narrowed to that calendar month.
func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	shipments := h.Snapshot.Shipments()

	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")
	if monthStr != "" && yearStr != "" {
		month, errM := strconv.Atoi(monthStr)
		year, errY := strconv.Atoi(yearStr)
		if errM != nil || errY != nil || month < 1 || month > 12 {
			http.Error(w, "invalid month or year", http.StatusBadRequest)
			return
		}
		shipments = service.FilterByMonth(shipments, time.Month(month), year)
	}
	if shipments == nil {
		shipments = []models.Shipment{}
	}
	writeJSON(w, http.StatusOK, shipments)
}

// Delete handles DELETE /api/shipments/{id}. A store failure is surfaced to
// the caller instead of being silently swallowed.
func (h *ShipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Shipments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Log.Error("shipment delete failed", zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

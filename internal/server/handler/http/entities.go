package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/serragrande/logsgb/internal/models"
	"github.com/serragrande/logsgb/internal/service"
	"go.uber.org/zap"
)

// CatalogService defines the catalog mutations required by the HTTP
// handlers.
type CatalogService interface {
	SaveProduct(ctx context.Context, p models.Product) (models.Product, error)
	SaveDriver(ctx context.Context, d models.Driver) (models.Driver, error)
	SaveTruck(ctx context.Context, t models.Truck) (models.Truck, error)
	SaveTrailer(ctx context.Context, t models.Trailer) (models.Trailer, error)
	LinkTrailer(ctx context.Context, truckID, trailerID string) error
	DeleteProduct(ctx context.Context, id string) error
	DeleteDriver(ctx context.Context, id string) error
	DeleteTruck(ctx context.Context, id string) error
	DeleteTrailer(ctx context.Context, id string) error
}

// EntityHandler serves the four catalog collections. Reads come from the
// in-memory snapshot; writes go through the catalog service.
type EntityHandler struct {
	Catalog  CatalogService
	Snapshot SnapshotView
	Log      *zap.Logger
}

func (h *EntityHandler) saveError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrMissingFields) {
		http.Error(w, "required field missing", http.StatusBadRequest)
		return
	}
	h.Log.Error("catalog save failed", zap.Error(err))
	http.Error(w, "store error", http.StatusInternalServerError)
}

func (h *EntityHandler) deleteError(w http.ResponseWriter, err error) {
	h.Log.Error("catalog delete failed", zap.Error(err))
	http.Error(w, "store error", http.StatusInternalServerError)
}

// ListProducts handles GET /api/products.
func (h *EntityHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Snapshot.Products())
}

// SaveProduct handles POST /api/products and PUT /api/products/{id}.
func (h *EntityHandler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		p.ID = id
	}
	saved, err := h.Catalog.SaveProduct(r.Context(), p)
	if err != nil {
		h.saveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *EntityHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.deleteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDrivers handles GET /api/drivers.
func (h *EntityHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Snapshot.Drivers())
}

// SaveDriver handles POST /api/drivers and PUT /api/drivers/{id}.
func (h *EntityHandler) SaveDriver(w http.ResponseWriter, r *http.Request) {
	var d models.Driver
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		d.ID = id
	}
	saved, err := h.Catalog.SaveDriver(r.Context(), d)
	if err != nil {
		h.saveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteDriver handles DELETE /api/drivers/{id}.
func (h *EntityHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteDriver(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.deleteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTrucks handles GET /api/trucks.
func (h *EntityHandler) ListTrucks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Snapshot.Trucks())
}

// SaveTruck handles POST /api/trucks and PUT /api/trucks/{id}.
func (h *EntityHandler) SaveTruck(w http.ResponseWriter, r *http.Request) {
	var t models.Truck
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		t.ID = id
	}
	saved, err := h.Catalog.SaveTruck(r.Context(), t)
	if err != nil {
		h.saveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// LinkTrailer handles PUT /api/trucks/{id}/trailer with body
// {"trailer_id": "..."}. An empty trailer_id detaches.
func (h *EntityHandler) LinkTrailer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrailerID string `json:"trailer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Catalog.LinkTrailer(r.Context(), chi.URLParam(r, "id"), req.TrailerID); err != nil {
		h.saveError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTruck handles DELETE /api/trucks/{id}.
func (h *EntityHandler) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteTruck(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.deleteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTrailers handles GET /api/trailers.
func (h *EntityHandler) ListTrailers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Snapshot.Trailers())
}

// SaveTrailer handles POST /api/trailers and PUT /api/trailers/{id}.
func (h *EntityHandler) SaveTrailer(w http.ResponseWriter, r *http.Request) {
	var t models.Trailer
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		t.ID = id
	}
	saved, err := h.Catalog.SaveTrailer(r.Context(), t)
	if err != nil {
		h.saveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteTrailer handles DELETE /api/trailers/{id}.
func (h *EntityHandler) DeleteTrailer(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteTrailer(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.deleteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

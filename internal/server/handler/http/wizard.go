package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/serragrande/logsgb/internal/middleware"
	"github.com/serragrande/logsgb/internal/models"
	"github.com/serragrande/logsgb/internal/service"
)

// ShipmentCreator persists a finished draft.
type ShipmentCreator interface {
	Create(ctx context.Context, s models.Shipment) (models.Shipment, error)
}

// WizardHandler hosts server-side shipment drafts. Each draft is owned by
// the session that opened it and lives until finished or cancelled.
type WizardHandler struct {
	View      service.CollectionView
	Shipments ShipmentCreator

	mu     sync.Mutex
	drafts map[string]*draftEntry
}

type draftEntry struct {
	owner  string
	wizard *service.Wizard
}

// NewWizardHandler constructs the handler with an empty draft registry.
func NewWizardHandler(view service.CollectionView, shipments ShipmentCreator) *WizardHandler {
	return &WizardHandler{
		View:      view,
		Shipments: shipments,
		drafts:    make(map[string]*draftEntry),
	}
}

// draftState is the JSON rendering of one draft returned by every wizard
// endpoint.
type draftState struct {
	ID           string          `json:"id"`
	Step         int             `json:"step"`
	Draft        models.Shipment `json:"draft"`
	RunningTotal float64         `json:"running_total"`
}

func (h *WizardHandler) state(id string, w *service.Wizard) draftState {
	return draftState{
		ID:           id,
		Step:         int(w.Step()),
		Draft:        w.Draft(),
		RunningTotal: w.RunningTotal(),
	}
}

// lookup fetches the draft for the request, checking ownership.
func (h *WizardHandler) lookup(r *http.Request) (string, *service.Wizard, bool) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := chi.URLParam(r, "id")
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.drafts[id]
	if !ok || e.owner != sess.Username {
		return "", nil, false
	}
	return id, e.wizard, true
}

// gateStatus maps wizard errors to HTTP statuses.
func gateStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownProduct):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMissingTransportDoc),
		errors.Is(err, service.ErrDriverNotResolved),
		errors.Is(err, service.ErrTruckNotResolved),
		errors.Is(err, service.ErrAtFirstStep),
		errors.Is(err, service.ErrAtFinalStep),
		errors.Is(err, service.ErrNotAtItemsStep):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Open handles POST /api/shipments/drafts, creating a fresh draft at the
// header step.
func (h *WizardHandler) Open(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := uuid.NewString()
	wiz := service.NewWizard(h.View)
	h.mu.Lock()
	h.drafts[id] = &draftEntry{owner: sess.Username, wizard: wiz}
	h.mu.Unlock()
	writeJSON(w, http.StatusCreated, h.state(id, wiz))
}

// Get handles GET /api/shipments/drafts/{id}, returning the current state.
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(r)
	if !ok {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.state(id, wiz))
}

// Cancel handles DELETE /api/shipments/drafts/{id}, discarding the draft.
func (h *WizardHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := chi.URLParam(r, "id")
	h.mu.Lock()
	e, ok := h.drafts[id]
	if ok && e.owner == sess.Username {
		delete(h.drafts, id)
	}
	h.mu.Unlock()
	if !ok {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetHeader handles PUT /api/shipments/drafts/{id}/header.
func (h *WizardHandler) SetHeader(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(r)
	if !ok {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	var req struct {
		TransportDoc  string `json:"transport_doc"`
		InvoiceNumber string `json:"invoice_number"`
		InvoiceDate   string `json:"invoice_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	wiz.SetHeader(req.TransportDoc, req.InvoiceNumber, req.InvoiceDate)
	writeJSON(w, http.StatusOK, h.state(id, wiz))
}

// LookupDriver handles PUT /api/shipments/drafts/{id}/driver. A miss is a
// 200 with resolved=false so the caller can keep typing.
func (h *WizardHandler) LookupDriver(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(r)
	if !ok {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	var req struct {
		TaxID string `json:"tax_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	driver, resolved := wiz.LookupDriver(req.TaxID)
	writeJSON(w, http.StatusOK, map[string]any{
		"resolved": resolved,
		"driver":   driver,
		"state":    h.state(id, wiz),
	})
}

// LookupVehicle handles PUT /api/shipments/drafts/{id}/vehicle.
func (h *WizardHandler) LookupVehicle(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(r)
	if !ok {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	var req struct {
		Plate string `json:"plate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	truck, trailerPlate, resolved := wiz.LookupVehicle(req.Plate)
	writeJSON(w, http.StatusOK, map[string]any{
		"resolved":      resolved,
		"truck":         truck,
		"trailer_plate": trailerPlate,
		"state":         h.state(id, wiz),
	})
}

// Next handles POST /api/shipments/drafts/{id}/next.
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(r)
	if !ok {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	if err := wiz.Next(); err != nil {
		http.Error(w, err.Error(), gateStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, h.state(id, wiz))
}

// Back handles POST /api/shipments/drafts/{id}/back. Collected data
// survives the move.
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(r)
	if !ok {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	if err := wiz.Back(); err != nil {
		http.Error(w, err.Error(), gateStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, h.state(id, wiz))
}

// AddItem handles POST /api/shipments/drafts/{id}/items.
func (h *WizardHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(r)
	if !ok {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	var req struct {
		Code     string  `json:"code"`
		Quantity float64 `json:"quantity"`
		Expiry   string  `json:"expiry"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	item, err := wiz.AddItem(req.Code, req.Quantity, req.Expiry)
	if err != nil {
		http.Error(w, err.Error(), gateStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"item":  item,
		"state": h.state(id, wiz),
	})
}

// Finish handles POST /api/shipments/drafts/{id}/finish, persisting the
// completed record and dropping the draft.
func (h *WizardHandler) Finish(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(r)
	if !ok {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	shipment, err := wiz.Finish(time.Now())
	if err != nil {
		http.Error(w, err.Error(), gateStatus(err))
		return
	}
	saved, err := h.Shipments.Create(r.Context(), shipment)
	if err != nil {
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	h.mu.Lock()
	delete(h.drafts, id)
	h.mu.Unlock()
	writeJSON(w, http.StatusCreated, saved)
}

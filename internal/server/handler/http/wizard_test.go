package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/serragrande/logsgb/internal/middleware"
	"github.com/serragrande/logsgb/internal/models"
	"github.com/serragrande/logsgb/internal/session"
)

type fakeView struct{}

func (fakeView) Products() []models.Product {
	return []models.Product{
		{ID: "p1", Code: "0101", Description: "Cerveja 600ml", Brand: "Serra",
			UnitsPerPackage: 12, Liters: 0.6, HLPerPackage: 0.072, Returnable: true},
	}
}
func (fakeView) Drivers() []models.Driver {
	return []models.Driver{{ID: "d1", Name: "Carlos", TaxID: "11122233344"}}
}
func (fakeView) Trucks() []models.Truck {
	return []models.Truck{{ID: "t1", Plate: "AAA1234"}}
}
func (fakeView) Trailers() []models.Trailer { return nil }

type mockCreator struct {
	created *models.Shipment
	err     error
}

func (m *mockCreator) Create(ctx context.Context, s models.Shipment) (models.Shipment, error) {
	if m.err != nil {
		return models.Shipment{}, m.err
	}
	s.ID = "s1"
	m.created = &s
	return s, nil
}

// wizardTestServer mounts the wizard routes behind session auth so URL
// parameters and draft ownership work as in production.
func wizardTestServer(h *WizardHandler, sessions *session.Manager) *httptest.Server {
	r := chi.NewRouter()
	r.Use(middleware.SessionAuth(sessions))
	r.Post("/api/shipments/drafts", h.Open)
	r.Delete("/api/shipments/drafts/{id}", h.Cancel)
	r.Put("/api/shipments/drafts/{id}/header", h.SetHeader)
	r.Put("/api/shipments/drafts/{id}/driver", h.LookupDriver)
	r.Put("/api/shipments/drafts/{id}/vehicle", h.LookupVehicle)
	r.Post("/api/shipments/drafts/{id}/next", h.Next)
	r.Post("/api/shipments/drafts/{id}/back", h.Back)
	r.Post("/api/shipments/drafts/{id}/items", h.AddItem)
	r.Post("/api/shipments/drafts/{id}/finish", h.Finish)
	return httptest.NewServer(r)
}

func doJSON(t *testing.T, client *http.Client, method, url, token, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func TestWizardHandler_FullFlow(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	token := sessions.Issue(models.Session{Username: "mariorocha", Status: models.StatusApproved})

	creator := &mockCreator{}
	h := NewWizardHandler(fakeView{}, creator)
	srv := wizardTestServer(h, sessions)
	defer srv.Close()
	client := srv.Client()

	// Open a draft.
	resp, body := doJSON(t, client, http.MethodPost, srv.URL+"/api/shipments/drafts", token, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("open draft: status %d: %s", resp.StatusCode, body)
	}
	var state draftState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Step != 1 {
		t.Fatalf("initial step = %d; want 1", state.Step)
	}
	base := srv.URL + "/api/shipments/drafts/" + state.ID

	// Gate: advancing without a transport document fails.
	resp, _ = doJSON(t, client, http.MethodPost, base+"/next", token, "")
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("next without doc: status %d; want 409", resp.StatusCode)
	}

	// Header, then advance.
	resp, _ = doJSON(t, client, http.MethodPut, base+"/header", token,
		`{"transport_doc":"DOC-9","invoice_number":"NF-123","invoice_date":"2026-08-12"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set header: status %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, client, http.MethodPost, base+"/next", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("next to driver: status %d", resp.StatusCode)
	}

	// Resolve driver and advance.
	resp, body = doJSON(t, client, http.MethodPut, base+"/driver", token, `{"tax_id":"11122233344"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lookup driver: status %d", resp.StatusCode)
	}
	var lookup struct {
		Resolved bool `json:"resolved"`
	}
	if err := json.Unmarshal(body, &lookup); err != nil || !lookup.Resolved {
		t.Fatalf("driver not resolved: %s", body)
	}
	resp, _ = doJSON(t, client, http.MethodPost, base+"/next", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("next to vehicle: status %d", resp.StatusCode)
	}

	// Resolve vehicle (lower-case plate) and advance.
	resp, _ = doJSON(t, client, http.MethodPut, base+"/vehicle", token, `{"plate":"aaa1234"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lookup vehicle: status %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, client, http.MethodPost, base+"/next", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("next to items: status %d", resp.StatusCode)
	}

	// Add an item and finish.
	resp, _ = doJSON(t, client, http.MethodPost, base+"/items", token,
		`{"code":"0101","quantity":15,"expiry":"2026-12-01"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add item: status %d", resp.StatusCode)
	}
	resp, body = doJSON(t, client, http.MethodPost, base+"/finish", token, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("finish: status %d: %s", resp.StatusCode, body)
	}

	if creator.created == nil {
		t.Fatal("finish did not persist the shipment")
	}
	if creator.created.TotalHL != 1.08 {
		t.Errorf("TotalHL = %v; want 1.08", creator.created.TotalHL)
	}
	if creator.created.TrailerPlate != "N/A" {
		t.Errorf("TrailerPlate = %q; want N/A", creator.created.TrailerPlate)
	}

	// The draft is gone after finishing.
	resp, _ = doJSON(t, client, http.MethodPost, base+"/next", token, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("finished draft still reachable: status %d", resp.StatusCode)
	}
}

func TestWizardHandler_DraftOwnership(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	owner := sessions.Issue(models.Session{Username: "mariorocha", Status: models.StatusApproved})
	other := sessions.Issue(models.Session{Username: "joao", Status: models.StatusApproved})

	h := NewWizardHandler(fakeView{}, &mockCreator{})
	srv := wizardTestServer(h, sessions)
	defer srv.Close()
	client := srv.Client()

	resp, body := doJSON(t, client, http.MethodPost, srv.URL+"/api/shipments/drafts", owner, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("open draft: status %d", resp.StatusCode)
	}
	var state draftState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}

	url := fmt.Sprintf("%s/api/shipments/drafts/%s/header", srv.URL, state.ID)
	resp, _ = doJSON(t, client, http.MethodPut, url, other, `{"transport_doc":"DOC-1"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("foreign session reached draft: status %d; want 404", resp.StatusCode)
	}
}

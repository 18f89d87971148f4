package service

import (
	"errors"
	"strings"
	"time"

	"github.com/serragrande/logsgb/internal/models"
	"github.com/shopspring/decimal"
)

// WizardStep identifies one stage of the shipment entry flow.
type WizardStep int

// Wizard stages, strictly linear.
const (
	StepHeader WizardStep = iota + 1
	StepDriver
	StepVehicle
	StepItems
)

// NoTrailerPlate is rendered when a truck has no attached trailer.
const NoTrailerPlate = "N/A"

// Wizard gate errors.
var (
	// ErrMissingTransportDoc blocks Header -> Driver.
	ErrMissingTransportDoc = errors.New("transport document required")
	// ErrDriverNotResolved blocks Driver -> Vehicle.
	ErrDriverNotResolved = errors.New("driver not resolved")
	// ErrTruckNotResolved blocks Vehicle -> Items.
	ErrTruckNotResolved = errors.New("truck not resolved")
	// ErrAtFirstStep is returned by Back at the first step.
	ErrAtFirstStep = errors.New("already at first step")
	// ErrAtFinalStep is returned by Next at the items step.
	ErrAtFinalStep = errors.New("already at final step")
	// ErrNotAtItemsStep is returned when items are added or the wizard
	// is finished outside the items step.
	ErrNotAtItemsStep = errors.New("not at items step")
	// ErrUnknownProduct is returned for a product code with no match.
	ErrUnknownProduct = errors.New("unknown product code")
)

// CollectionView is the read side of the in-memory snapshot the wizard
// resolves lookups against.
type CollectionView interface {
	Products() []models.Product
	Drivers() []models.Driver
	Trucks() []models.Truck
	Trailers() []models.Trailer
}

// Wizard is the 4-stage shipment entry state machine. Collected fields
// persist across step changes; the whole draft is discarded only on
// completion or cancellation. A Wizard is not safe for concurrent use.
type Wizard struct {
	view  CollectionView
	step  WizardStep
	draft models.Shipment
}

// NewWizard starts a draft at the header step.
func NewWizard(view CollectionView) *Wizard {
	return &Wizard{
		view: view,
		step: StepHeader,
		draft: models.Shipment{
			TrailerPlate: NoTrailerPlate,
			Items:        []models.LineItem{},
		},
	}
}

// Step returns the current stage.
func (w *Wizard) Step() WizardStep {
	return w.step
}

// Draft returns a copy of the collected fields so far.
func (w *Wizard) Draft() models.Shipment {
	d := w.draft
	d.Items = append([]models.LineItem(nil), w.draft.Items...)
	return d
}

// SetHeader records the transport metadata of step 1.
func (w *Wizard) SetHeader(transportDoc, invoiceNumber, invoiceDate string) {
	w.draft.TransportDoc = strings.TrimSpace(transportDoc)
	w.draft.InvoiceNumber = strings.TrimSpace(invoiceNumber)
	w.draft.InvoiceDate = strings.TrimSpace(invoiceDate)
}

// LookupDriver resolves a driver by exact tax-identifier match against the
// loaded collection. A miss clears any previously resolved driver.
func (w *Wizard) LookupDriver(taxID string) (models.Driver, bool) {
	for _, d := range w.view.Drivers() {
		if d.TaxID == taxID {
			w.draft.DriverID = d.ID
			w.draft.DriverName = d.Name
			return d, true
		}
	}
	w.draft.DriverID = ""
	w.draft.DriverName = ""
	return models.Driver{}, false
}

// LookupVehicle resolves a truck by plate (case-insensitive via
// upper-casing) and transitively resolves its attached trailer. A miss
// clears any previously resolved vehicle.
func (w *Wizard) LookupVehicle(plate string) (models.Truck, string, bool) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	for _, t := range w.view.Trucks() {
		if t.Plate != plate {
			continue
		}
		w.draft.TruckID = t.ID
		w.draft.TruckPlate = t.Plate
		w.draft.TrailerPlate = NoTrailerPlate
		if t.TrailerID != "" {
			for _, tr := range w.view.Trailers() {
				if tr.ID == t.TrailerID {
					w.draft.TrailerPlate = tr.Plate
					break
				}
			}
		}
		return t, w.draft.TrailerPlate, true
	}
	w.draft.TruckID = ""
	w.draft.TruckPlate = ""
	w.draft.TrailerPlate = NoTrailerPlate
	return models.Truck{}, NoTrailerPlate, false
}

// LookupProduct resolves a product by exact code match.
func (w *Wizard) LookupProduct(code string) (models.Product, bool) {
	for _, p := range w.view.Products() {
		if p.Code == code {
			return p, true
		}
	}
	return models.Product{}, false
}

// Next advances one step if the current step's gate is satisfied.
func (w *Wizard) Next() error {
	switch w.step {
	case StepHeader:
		if w.draft.TransportDoc == "" {
			return ErrMissingTransportDoc
		}
	case StepDriver:
		if w.draft.DriverID == "" {
			return ErrDriverNotResolved
		}
	case StepVehicle:
		if w.draft.TruckID == "" {
			return ErrTruckNotResolved
		}
	case StepItems:
		return ErrAtFinalStep
	}
	w.step++
	return nil
}

// Back moves one step backward without discarding any collected data.
func (w *Wizard) Back() error {
	if w.step == StepHeader {
		return ErrAtFirstStep
	}
	w.step--
	return nil
}

// AddItem appends a line item at the items step, snapshotting the product's
// description, brand, unit hectoliters and returnable flag at entry time.
func (w *Wizard) AddItem(code string, quantity float64, expiry string) (models.LineItem, error) {
	if w.step != StepItems {
		return models.LineItem{}, ErrNotAtItemsStep
	}
	p, ok := w.LookupProduct(code)
	if !ok {
		return models.LineItem{}, ErrUnknownProduct
	}
	item := models.LineItem{
		Code:        p.Code,
		Description: p.Description,
		Brand:       p.Brand,
		Quantity:    quantity,
		Expiry:      expiry,
		UnitHL:      p.HLPerPackage,
		Returnable:  p.Returnable,
	}
	w.draft.Items = append(w.draft.Items, item)
	return item, nil
}

// RunningTotal returns the live grand total over all appended items.
func (w *Wizard) RunningTotal() float64 {
	total := decimal.Zero
	for _, i := range w.draft.Items {
		total = total.Add(decimal.NewFromFloat(i.Quantity).
			Mul(decimal.NewFromFloat(i.UnitHL)))
	}
	f, _ := total.Float64()
	return f
}

// Finish computes both stored totals over the full item sequence and
// returns the completed shipment stamped with the creation time. Finishing
// with zero items is permitted and yields totals of exactly 0.
func (w *Wizard) Finish(now time.Time) (models.Shipment, error) {
	if w.step != StepItems {
		return models.Shipment{}, ErrNotAtItemsStep
	}
	total := decimal.Zero
	returnable := decimal.Zero
	for _, i := range w.draft.Items {
		hl := decimal.NewFromFloat(i.Quantity).Mul(decimal.NewFromFloat(i.UnitHL))
		total = total.Add(hl)
		if i.Returnable {
			returnable = returnable.Add(hl)
		}
	}
	s := w.Draft()
	s.TotalHL, _ = total.Float64()
	s.TotalReturnableHL, _ = returnable.Float64()
	s.CreatedAt = now
	return s, nil
}

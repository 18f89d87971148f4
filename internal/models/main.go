// Package models defines the core data structures for the LOG-SGB
// logistics dashboard: catalog entities, shipment records and user accounts.
package models

import (
	"encoding/json"
	"time"
)

// Product represents one SKU of the beverage catalog.
type Product struct {
	// ID is the opaque record identifier assigned by the store.
	ID string `json:"id"`
	// Code is the unique business key of the SKU.
	Code string `json:"code"`
	// Description is the human-readable SKU description.
	Description string `json:"description"`
	// Brand is the manufacturer brand name.
	Brand string `json:"brand"`
	// Liters is the unit volume in liters.
	Liters float64 `json:"liters"`
	// UnitsPerPackage is the number of units in one package.
	UnitsPerPackage float64 `json:"units_per_package"`
	// PackagesPerPallet is the number of packages on one pallet.
	PackagesPerPallet float64 `json:"packages_per_pallet"`
	// Returnable marks reusable/deposit (RGB) packaging.
	Returnable bool `json:"returnable"`
	// HLPerPackage is derived: units_per_package * liters / 100.
	// Recomputed from the two inputs on every save, never hand-edited.
	HLPerPackage float64 `json:"hl_per_package"`
	// Image is an optional JPEG data URL.
	Image string `json:"image,omitempty"`
}

// Driver represents a truck driver.
type Driver struct {
	ID string `json:"id"`
	// Name is the driver's full name.
	Name string `json:"name"`
	// TaxID is the driver's tax identifier (business key).
	TaxID string `json:"tax_id"`
	// BirthDate is an ISO date string (YYYY-MM-DD).
	BirthDate string `json:"birth_date"`
	Image     string `json:"image,omitempty"`
}

// Truck represents a tractor unit of the fleet.
type Truck struct {
	ID string `json:"id"`
	// Plate is the upper-cased license plate (business key).
	Plate string `json:"plate"`
	// Model is the make/model description.
	Model string `json:"model"`
	Image string `json:"image,omitempty"`
	// TrailerID references the currently attached trailer, at most one.
	// Empty when no trailer is attached.
	TrailerID string `json:"trailer_id,omitempty"`
}

// Trailer represents a towed implement.
type Trailer struct {
	ID    string `json:"id"`
	Plate string `json:"plate"`
	Image string `json:"image,omitempty"`
}

// LineItem is one product entry within a shipment. It snapshots product
// attributes at entry time; later product edits never change it.
type LineItem struct {
	// Code is the product code at entry time.
	Code        string `json:"code"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	// Quantity is the number of packages. Historical records may carry
	// the value under "quantidade" instead; see UnmarshalJSON.
	Quantity float64 `json:"quantity"`
	// Expiry is the batch expiry date string, possibly empty.
	Expiry string `json:"expiry,omitempty"`
	// UnitHL is the product's hectoliters-per-package at entry time.
	UnitHL float64 `json:"unit_hl"`
	// Returnable is the product's returnable flag at entry time.
	Returnable bool `json:"returnable"`
}

// UnmarshalJSON accepts the legacy "quantidade" field as an alias for
// "quantity". The canonical field wins when both are present and non-zero.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type lineItem LineItem
	aux := struct {
		*lineItem
		Quantidade float64 `json:"quantidade"`
	}{lineItem: (*lineItem)(li)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if li.Quantity == 0 && aux.Quantidade != 0 {
		li.Quantity = aux.Quantidade
	}
	return nil
}

// Shipment is one load record. Driver and vehicle fields are denormalized
// snapshots taken when the record was created.
type Shipment struct {
	ID string `json:"id"`
	// TransportDoc is the transport document number.
	TransportDoc string `json:"transport_doc"`
	// InvoiceNumber is the fiscal invoice number.
	InvoiceNumber string `json:"invoice_number"`
	// InvoiceDate is an ISO date string (YYYY-MM-DD); empty when unknown.
	// Shipments without an invoice date are excluded from monthly views.
	InvoiceDate string `json:"invoice_date"`
	DriverID    string `json:"driver_id"`
	DriverName  string `json:"driver_name"`
	TruckID     string `json:"truck_id"`
	TruckPlate  string `json:"truck_plate"`
	// TrailerPlate is the attached trailer plate or the literal "N/A".
	TrailerPlate string     `json:"trailer_plate"`
	Items        []LineItem `json:"items"`
	// TotalHL and TotalReturnableHL are computed once at creation time
	// and stored, not recomputed on read.
	TotalHL           float64   `json:"total_hl"`
	TotalReturnableHL float64   `json:"total_returnable_hl"`
	CreatedAt         time.Time `json:"created_at"`
}

// Account status values.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// UserAccount is one registration record of the access gate.
type UserAccount struct {
	ID string `json:"id"`
	// Username is stored lower-cased and is unique.
	Username string `json:"username"`
	// Password is stored and compared as plain text, matching the
	// historical records.
	Password string `json:"password,omitempty"`
	// Status is one of pending, approved, rejected.
	Status string `json:"status"`
	// Admin marks administrative accounts.
	Admin bool `json:"admin"`
}

// Session is the opaque shape passed between the access gate and the rest
// of the application.
type Session struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	Status   string `json:"status"`
}

package report

import (
	"errors"
	"strconv"

	"github.com/serragrande/logsgb/internal/models"
	"github.com/shopspring/decimal"
)

// Report kinds.
const (
	KindShipments = "shipments"
	KindProducts  = "products"
	KindDrivers   = "drivers"
	KindExpiry    = "expiry"
)

// Report names used in filenames.
const (
	NameShipmentLedger    = "CONSOLIDADO_CARGAS"
	NameProductCatalog    = "BASE_TECNICA_PRODUTOS"
	NameDriverPerformance = "PERFORMANCE_EQUIPA"
	NameExpiryAudit       = "AUDITORIA_VALIDADES"
)

// ErrUnknownKind is returned for an unrecognized report kind.
var ErrUnknownKind = errors.New("unknown report kind")

// missingBatch is rendered when a line item has no expiry/batch date.
const missingBatch = "N/I"

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func itemType(returnable bool) string {
	if returnable {
		return "RGB"
	}
	return "DESC"
}

// Build dispatches to the projection for the given kind and returns the
// table together with its report name.
func Build(kind string, shipments []models.Shipment, products []models.Product, drivers []models.Driver) (Table, string, error) {
	switch kind {
	case KindShipments:
		return ShipmentLedger(shipments), NameShipmentLedger, nil
	case KindProducts:
		return ProductCatalog(products), NameProductCatalog, nil
	case KindDrivers:
		return DriverPerformance(drivers, shipments), NameDriverPerformance, nil
	case KindExpiry:
		return ExpiryAudit(shipments), NameExpiryAudit, nil
	}
	return Table{}, "", ErrUnknownKind
}

// ShipmentLedger explodes every shipment into one row per line item.
func ShipmentLedger(shipments []models.Shipment) Table {
	t := Table{Columns: []string{
		"Doc", "NF", "Data", "Motorista", "Veículo", "Carreta",
		"Marca", "Produto", "Qtd", "HL", "Tipo",
	}}
	for _, s := range shipments {
		for _, i := range s.Items {
			hl := decimal.NewFromFloat(i.Quantity).Mul(decimal.NewFromFloat(i.UnitHL))
			t.Rows = append(t.Rows, []string{
				s.TransportDoc, s.InvoiceNumber, s.InvoiceDate,
				s.DriverName, s.TruckPlate, s.TrailerPlate,
				i.Brand, i.Description, num(i.Quantity),
				hl.StringFixed(3), itemType(i.Returnable),
			})
		}
	}
	return t
}

// ProductCatalog projects the technical base of the SKU catalog.
func ProductCatalog(products []models.Product) Table {
	t := Table{Columns: []string{
		"Código", "Descrição", "Marca", "Volume_L", "HL_Pkt", "Tipo",
	}}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{
			p.Code, p.Description, p.Brand,
			num(p.Liters), num(p.HLPerPackage), itemType(p.Returnable),
		})
	}
	return t
}

// DriverPerformance sums trips and volume per driver over all shipments.
// The aggregation is computed here, independently of the monthly aggregator.
func DriverPerformance(drivers []models.Driver, shipments []models.Shipment) Table {
	t := Table{Columns: []string{"Nome", "CPF", "Vgs", "Total_HL"}}
	for _, d := range drivers {
		trips := 0
		total := decimal.Zero
		for _, s := range shipments {
			if s.DriverID != d.ID {
				continue
			}
			trips++
			total = total.Add(decimal.NewFromFloat(s.TotalHL))
		}
		t.Rows = append(t.Rows, []string{
			d.Name, d.TaxID, strconv.Itoa(trips), total.StringFixed(2),
		})
	}
	return t
}

// ExpiryAudit explodes shipments into one row per line item, keyed on the
// batch expiry date.
func ExpiryAudit(shipments []models.Shipment) Table {
	t := Table{Columns: []string{"NF", "Data", "Produto", "Lote_Validade", "Qtd"}}
	for _, s := range shipments {
		for _, i := range s.Items {
			batch := i.Expiry
			if batch == "" {
				batch = missingBatch
			}
			t.Rows = append(t.Rows, []string{
				s.InvoiceNumber, s.InvoiceDate, i.Description,
				batch, num(i.Quantity),
			})
		}
	}
	return t
}

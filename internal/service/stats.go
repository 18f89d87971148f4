package service

import (
	"sort"
	"time"

	"github.com/serragrande/logsgb/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultBrand is the organization fallback used when a line item carries
// no brand.
const DefaultBrand = "SGB"

// invoiceDateLayout is the date-only layout of shipment invoice dates,
// interpreted in local time with no timezone normalization.
const invoiceDateLayout = "2006-01-02"

// DriverStat accumulates trips and volume for one driver.
type DriverStat struct {
	DriverID string  `json:"driver_id"`
	Name     string  `json:"name"`
	Trips    int     `json:"trips"`
	HL       float64 `json:"hl"`
}

// TruckStat accumulates trips and volume for one plate.
type TruckStat struct {
	Plate string  `json:"plate"`
	Trips int     `json:"trips"`
	HL    float64 `json:"hl"`
}

// ProductStat accumulates quantity and volume for one product code across
// all line items in range.
type ProductStat struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	HL          float64 `json:"hl"`
	Returnable  bool    `json:"returnable"`
}

// BrandStat is one brand's share of the filtered period's volume.
type BrandStat struct {
	Brand string  `json:"brand"`
	HL    float64 `json:"hl"`
	// PercentOfTotal is formatted with one decimal, "0" when the period
	// total is zero.
	PercentOfTotal string `json:"percent_of_total"`
}

// MonthlyStats is the aggregate output for one (month, year) selection.
type MonthlyStats struct {
	TotalHL           float64 `json:"total_hl"`
	TotalReturnableHL float64 `json:"total_returnable_hl"`
	TripCount         int     `json:"trip_count"`
	// AverageHL is formatted with two decimals, "0.00" when there are no
	// trips.
	AverageHL string `json:"average_hl"`
	// ReturnableIndexPercent is formatted with one decimal, "0" when the
	// period total is zero.
	ReturnableIndexPercent string        `json:"returnable_index_percent"`
	Drivers                []DriverStat  `json:"drivers"`
	Trucks                 []TruckStat   `json:"trucks"`
	Products               []ProductStat `json:"products"`
	Brands                 []BrandStat   `json:"brands"`
}

// FilterByMonth returns the shipments whose invoice date falls in the
// selected calendar month, local time. Shipments without a parseable
// invoice date are excluded from every filtered view.
func FilterByMonth(shipments []models.Shipment, month time.Month, year int) []models.Shipment {
	var out []models.Shipment
	for _, s := range shipments {
		if s.InvoiceDate == "" {
			continue
		}
		d, err := time.ParseInLocation(invoiceDateLayout, s.InvoiceDate, time.Local)
		if err != nil {
			continue
		}
		if d.Month() == month && d.Year() == year {
			out = append(out, s)
		}
	}
	return out
}

// Aggregate derives all monthly statistics in a single linear pass over the
// filtered shipments. Missing numeric fields contribute 0; percentage
// computations degrade to literal zero-valued strings instead of NaN.
func Aggregate(filtered []models.Shipment) MonthlyStats {
	total := decimal.Zero
	returnable := decimal.Zero
	driverStats := make(map[string]*DriverStat)
	truckStats := make(map[string]*TruckStat)
	productStats := make(map[string]*ProductStat)
	brandHL := make(map[string]decimal.Decimal)

	for _, s := range filtered {
		hl := decimal.NewFromFloat(s.TotalHL)
		total = total.Add(hl)
		returnable = returnable.Add(decimal.NewFromFloat(s.TotalReturnableHL))

		ds := driverStats[s.DriverID]
		if ds == nil {
			ds = &DriverStat{DriverID: s.DriverID, Name: s.DriverName}
			driverStats[s.DriverID] = ds
		}
		ds.Trips++
		ds.HL += s.TotalHL

		ts := truckStats[s.TruckPlate]
		if ts == nil {
			ts = &TruckStat{Plate: s.TruckPlate}
			truckStats[s.TruckPlate] = ts
		}
		ts.Trips++
		ts.HL += s.TotalHL

		for _, i := range s.Items {
			itemHL := decimal.NewFromFloat(i.Quantity).Mul(decimal.NewFromFloat(i.UnitHL))
			ps := productStats[i.Code]
			if ps == nil {
				ps = &ProductStat{Code: i.Code, Description: i.Description, Returnable: i.Returnable}
				productStats[i.Code] = ps
			}
			ps.Quantity += i.Quantity
			f, _ := itemHL.Float64()
			ps.HL += f

			brand := i.Brand
			if brand == "" {
				brand = DefaultBrand
			}
			brandHL[brand] = brandHL[brand].Add(itemHL)
		}
	}

	stats := MonthlyStats{TripCount: len(filtered)}
	stats.TotalHL, _ = total.Float64()
	stats.TotalReturnableHL, _ = returnable.Float64()

	if stats.TripCount > 0 {
		stats.AverageHL = total.Div(decimal.NewFromInt(int64(stats.TripCount))).StringFixed(2)
	} else {
		stats.AverageHL = "0.00"
	}
	if total.IsPositive() {
		stats.ReturnableIndexPercent = returnable.
			Mul(decimal.NewFromInt(100)).Div(total).StringFixed(1)
	} else {
		stats.ReturnableIndexPercent = "0"
	}

	for _, ds := range driverStats {
		stats.Drivers = append(stats.Drivers, *ds)
	}
	sort.Slice(stats.Drivers, func(a, b int) bool {
		if stats.Drivers[a].HL != stats.Drivers[b].HL {
			return stats.Drivers[a].HL > stats.Drivers[b].HL
		}
		return stats.Drivers[a].Name < stats.Drivers[b].Name
	})
	if len(stats.Drivers) > 5 {
		stats.Drivers = stats.Drivers[:5]
	}

	for _, ts := range truckStats {
		stats.Trucks = append(stats.Trucks, *ts)
	}
	sort.Slice(stats.Trucks, func(a, b int) bool {
		if stats.Trucks[a].Trips != stats.Trucks[b].Trips {
			return stats.Trucks[a].Trips > stats.Trucks[b].Trips
		}
		return stats.Trucks[a].Plate < stats.Trucks[b].Plate
	})

	for _, ps := range productStats {
		stats.Products = append(stats.Products, *ps)
	}
	sort.Slice(stats.Products, func(a, b int) bool {
		if stats.Products[a].HL != stats.Products[b].HL {
			return stats.Products[a].HL > stats.Products[b].HL
		}
		return stats.Products[a].Code < stats.Products[b].Code
	})
	if len(stats.Products) > 5 {
		stats.Products = stats.Products[:5]
	}

	for brand, hl := range brandHL {
		bs := BrandStat{Brand: brand}
		bs.HL, _ = hl.Float64()
		if total.IsPositive() {
			bs.PercentOfTotal = hl.Mul(decimal.NewFromInt(100)).Div(total).StringFixed(1)
		} else {
			bs.PercentOfTotal = "0"
		}
		stats.Brands = append(stats.Brands, bs)
	}
	sort.Slice(stats.Brands, func(a, b int) bool {
		if stats.Brands[a].HL != stats.Brands[b].HL {
			return stats.Brands[a].HL > stats.Brands[b].HL
		}
		return stats.Brands[a].Brand < stats.Brands[b].Brand
	})

	return stats
}

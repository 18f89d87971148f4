package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/serragrande/logsgb/internal/models"
)

// LocalStorage caches the last fetched collections so the console can list
// them offline.
type LocalStorage struct {
	Products  []models.Product  `json:"products"`
	Drivers   []models.Driver   `json:"drivers"`
	Trucks    []models.Truck    `json:"trucks"`
	Trailers  []models.Trailer  `json:"trailers"`
	Shipments []models.Shipment `json:"shipments"`
	FetchedAt time.Time         `json:"fetched_at"`

	mu sync.Mutex
}

const storageFile = "logsgb-cache.json"

// Load reads the cache file. A missing file leaves the cache empty.
func (ls *LocalStorage) Load() error {
	f, err := os.Open(storageFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(ls)
}

// Save writes the cache file.
func (ls *LocalStorage) Save() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	f, err := os.Create(storageFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(ls)
}

// List prints one cached collection by name.
func (ls *LocalStorage) List(collection string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	switch collection {
	case "products":
		for _, p := range ls.Products {
			fmt.Printf("%s  %s (%s) %.2gL x%g  HL/pkt %.3f\n",
				p.Code, p.Description, p.Brand, p.Liters, p.UnitsPerPackage, p.HLPerPackage)
		}
	case "drivers":
		for _, d := range ls.Drivers {
			fmt.Printf("%s  %s\n", d.TaxID, d.Name)
		}
	case "trucks":
		for _, t := range ls.Trucks {
			fmt.Printf("%s  %s\n", t.Plate, t.Model)
		}
	case "trailers":
		for _, t := range ls.Trailers {
			fmt.Println(t.Plate)
		}
	case "shipments":
		for _, s := range ls.Shipments {
			fmt.Printf("%s  NF %s  %s  %s  %.3f HL\n",
				s.TransportDoc, s.InvoiceNumber, s.InvoiceDate, s.DriverName, s.TotalHL)
		}
	default:
		fmt.Println("Unknown collection. One of: products, drivers, trucks, trailers, shipments")
	}
}

// Summary prints the cache sizes and fetch time.
func (ls *LocalStorage) Summary() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	fmt.Printf("products: %d, drivers: %d, trucks: %d, trailers: %d, shipments: %d (fetched %s)\n",
		len(ls.Products), len(ls.Drivers), len(ls.Trucks), len(ls.Trailers), len(ls.Shipments),
		ls.FetchedAt.Format(time.RFC3339))
}

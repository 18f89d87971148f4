package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/serragrande/logsgb/internal/service"
)

// StatsHandler serves the monthly aggregates.
type StatsHandler struct {
	Snapshot SnapshotView
}

// Get handles GET /api/stats?month=&year=. Absent parameters default to the
// current local month.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
		month = m
	}
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = y
	}

	filtered := service.FilterByMonth(h.Snapshot.Shipments(), time.Month(month), year)
	writeJSON(w, http.StatusOK, service.Aggregate(filtered))
}

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/serragrande/logsgb/internal/metrics"
	"github.com/serragrande/logsgb/internal/report"
)

// ExportHandler streams CSV report downloads.
type ExportHandler struct {
	Snapshot SnapshotView
}

// Get handles GET /api/reports/{kind}. The body is the spreadsheet-ready
// CSV shape, served as a file attachment.
func (h *ExportHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	table, name, err := report.Build(
		kind,
		h.Snapshot.Shipments(),
		h.Snapshot.Products(),
		h.Snapshot.Drivers(),
	)
	if errors.Is(err, report.ErrUnknownKind) {
		http.Error(w, "unknown report", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	metrics.ObserveExport(name)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename(name)))
	_, _ = w.Write(report.EncodeCSV(table))
}

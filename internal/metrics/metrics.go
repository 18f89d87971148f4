// Package metrics exposes Prometheus counters for store operations,
// snapshot reloads and report exports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logsgb_store_operations_total",
		Help: "Remote store operations by collection, operation and outcome.",
	}, []string{"collection", "op", "outcome"})

	snapshotReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logsgb_snapshot_reloads_total",
		Help: "Wholesale snapshot reloads by outcome.",
	}, []string{"outcome"})

	reportExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logsgb_report_exports_total",
		Help: "CSV report exports by report kind.",
	}, []string{"report"})
)

// ObserveStore records one store operation.
func ObserveStore(collection, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storeOperations.WithLabelValues(collection, op, outcome).Inc()
}

// ObserveReload records one snapshot reload.
func ObserveReload(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	snapshotReloads.WithLabelValues(outcome).Inc()
}

// ObserveExport records one report export.
func ObserveExport(report string) {
	reportExports.WithLabelValues(report).Inc()
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

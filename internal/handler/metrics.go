package handler

import (
	"fmt"
	"net/http"

	"github.com/folio/folio/internal/metrics"
	"github.com/folio/folio/internal/store"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "folio_visits_recorded_total %d\n", snap.VisitsRecorded)
	writeMetric(w, "folio_visitors_created_total %d\n", snap.VisitorsCreated)

	writeMetric(w, "folio_contacts_total{status=\"accepted\"} %d\n", snap.ContactsSubmitted)
	writeMetric(w, "folio_contacts_total{status=\"rejected\"} %d\n", snap.ContactsRejected)

	for _, kind := range store.Kinds {
		writeMetric(w, "folio_store_load_fallbacks_total{kind=%q} %d\n", kind, snap.StoreLoadFallbacks[string(kind)])
	}
	for _, kind := range store.Kinds {
		writeMetric(w, "folio_store_write_failures_total{kind=%q} %d\n", kind, snap.StoreWriteFailures[string(kind)])
	}

	writeMetric(w, "folio_store_write_duration_seconds_count %d\n", snap.StoreWriteDurationCount)
	writeMetric(w, "folio_store_write_duration_seconds_sum %.6f\n", float64(snap.StoreWriteDurationNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

package handlers

import (
	"fmt"
	"net/http"

	"parkcareers/internal/http/metrics"
)

type MetricsHandler struct {
	collector *metrics.Collector
}

func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

func (h *MetricsHandler) Get(w http.ResponseWriter, _ *http.Request) {
	var snapshot metrics.Snapshot
	if h.collector != nil {
		snapshot = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# HELP careers_gateway_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE careers_gateway_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "careers_gateway_requests_total %d\n", snapshot.Requests)
	_, _ = fmt.Fprintf(w, "# HELP careers_gateway_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE careers_gateway_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "careers_gateway_errors_total %d\n", snapshot.Errors)
	_, _ = fmt.Fprintf(w, "# HELP careers_gateway_submissions_total Applications handed off to the tracking backend.\n")
	_, _ = fmt.Fprintf(w, "# TYPE careers_gateway_submissions_total counter\n")
	_, _ = fmt.Fprintf(w, "careers_gateway_submissions_total %d\n", snapshot.Submissions)
	_, _ = fmt.Fprintf(w, "# HELP careers_gateway_lookups_total Tracking lookups served.\n")
	_, _ = fmt.Fprintf(w, "# TYPE careers_gateway_lookups_total counter\n")
	_, _ = fmt.Fprintf(w, "careers_gateway_lookups_total %d\n", snapshot.Lookups)
}

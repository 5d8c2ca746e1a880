// Package metrics provides the centralized Prometheus registry conventions
// for the exporter. All metrics are defined in their respective packages
// (connect, fetch, cache, ratelimit, export) to maintain modularity and
// avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the exporter.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler returns an HTTP handler exposing all registered metrics in
// Prometheus text format. The CLI mounts it at /metrics when a metrics
// listen address is configured.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Request Metrics (pkg/connect):
//   - garmin_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - garmin_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - garmin_request_errors_total{endpoint, class} (Counter): Errors by endpoint and class
//
// Call Wrapper Metrics (pkg/fetch):
//   - garmin_call_failures_total{call, class} (Counter): Failed attempts by call name and error class
//   - garmin_call_defaults_total{call} (Counter): Calls that exhausted attempts and returned the default
//   - garmin_history_days_fetched_total{category} (Counter): Days fetched per history category
//   - garmin_history_days_dropped_total{category} (Counter): Days dropped (failed or empty) per category
//
// Pacing Metrics (pkg/ratelimit):
//   - garmin_pacer_waits_total (Counter): Pre-request pacing sleeps performed
//   - garmin_pacer_wait_seconds_total (Counter): Cumulative time spent in pacing sleeps
//
// Cache Metrics (pkg/cache):
//   - garmin_cache_hits_total (Counter): Cache hits
//   - garmin_cache_misses_total (Counter): Cache misses
//   - garmin_cache_errors_total{operation} (Counter): Cache operation errors (get, set, delete)
//
// Export Metrics (pkg/export):
//   - garmin_export_runs_total (Counter): Aggregation runs performed
//   - garmin_export_duration_seconds (Histogram): Full aggregation run duration
//   - garmin_export_categories_fetched_total{category} (Counter): Category fetches started per run
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(garmin_cache_hits_total[5m])) /
//   (sum(rate(garmin_cache_hits_total[5m])) + sum(rate(garmin_cache_misses_total[5m])))
//
//   # Default Substitution Rate (silent failures)
//   rate(garmin_call_defaults_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(garmin_request_duration_seconds_bucket[5m]))
//
//   # Dropped Day Ratio per Category
//   rate(garmin_history_days_dropped_total[5m]) /
//   (rate(garmin_history_days_fetched_total[5m]) + rate(garmin_history_days_dropped_total[5m]))

package observability

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsConfig holds configuration for the metrics subsystem.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool
	// Namespace prefix for all metrics (default: subnetcalc).
	Namespace string
	// Version is the application version for the info metric.
	Version string
}

// DefaultMetricsConfig returns the default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "subnetcalc",
		Version:   "dev",
	}
}

// MetricsConfigFromEnv creates a MetricsConfig from environment variables.
// SUBNETCALC_METRICS_ENABLED: true/false (default: true)
// APP_VERSION: version string (default: dev)
func MetricsConfigFromEnv() MetricsConfig {
	cfg := DefaultMetricsConfig()

	if v := os.Getenv("SUBNETCALC_METRICS_ENABLED"); v != "" {
		cfg.Enabled = strings.ToLower(v) == "true" || v == "1"
	}
	if v := os.Getenv("APP_VERSION"); v != "" {
		cfg.Version = v
	}
	return cfg
}

// Metrics provides application metrics collection.
// Thread-safe for concurrent use.
type Metrics struct {
	mu        sync.RWMutex
	namespace string
	version   string

	// HTTP request counters: key = "method:route:status"
	httpRequestCounts map[string]*atomic.Int64

	// HTTP request durations: key = "method:route"
	httpDurations  map[string]*durationCollector
	httpDurationMu sync.RWMutex

	// Calculation counters: successes keyed by mask source, failures
	// keyed by error reason token.
	calcMu      sync.RWMutex
	calcCounts  map[string]*atomic.Int64
	calcFailure map[string]*atomic.Int64

	// Rate limiter counters
	rateLimitAllowed  atomic.Int64
	rateLimitRejected atomic.Int64

	// Active connections gauge
	activeConnections atomic.Int64
}

// durationCollector keeps a sliding window of duration samples for
// on-demand quantile computation.
type durationCollector struct {
	mu      sync.Mutex
	samples []float64
	maxSize int
}

func newDurationCollector(maxSize int) *durationCollector {
	return &durationCollector{
		samples: make([]float64, 0, maxSize),
		maxSize: maxSize,
	}
}

func (d *durationCollector) add(duration time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.samples) >= d.maxSize {
		// Drop the oldest sample
		copy(d.samples, d.samples[1:])
		d.samples = d.samples[:len(d.samples)-1]
	}
	d.samples = append(d.samples, duration.Seconds())
}

func (d *durationCollector) quantile(q float64) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.samples) == 0 {
		return 0
	}

	sorted := make([]float64, len(d.samples))
	copy(sorted, d.samples)
	sort.Float64s(sorted)

	idx := q * float64(len(sorted)-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	// Linear interpolation between neighbors
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

func (d *durationCollector) sum() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	var total float64
	for _, s := range d.samples {
		total += s
	}
	return total
}

func (d *durationCollector) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.samples)
}

// NewMetrics creates a new Metrics collector.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		namespace:         cfg.Namespace,
		version:           cfg.Version,
		httpRequestCounts: make(map[string]*atomic.Int64),
		httpDurations:     make(map[string]*durationCollector),
		calcCounts:        make(map[string]*atomic.Int64),
		calcFailure:       make(map[string]*atomic.Int64),
	}
}

// RecordHTTPRequest records an HTTP request with its method, path, status
// code, and duration.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	route := normalizeRoute(path)

	countKey := fmt.Sprintf("%s:%s:%d", method, route, statusCode)
	m.mu.Lock()
	counter, ok := m.httpRequestCounts[countKey]
	if !ok {
		counter = &atomic.Int64{}
		m.httpRequestCounts[countKey] = counter
	}
	m.mu.Unlock()
	counter.Add(1)

	durationKey := fmt.Sprintf("%s:%s", method, route)
	m.httpDurationMu.Lock()
	collector, ok := m.httpDurations[durationKey]
	if !ok {
		collector = newDurationCollector(1000) // last 1000 samples
		m.httpDurations[durationKey] = collector
	}
	m.httpDurationMu.Unlock()
	collector.add(duration)
}

// RecordCalculation counts a successful calculation by mask source.
func (m *Metrics) RecordCalculation(source string) {
	m.calcMu.Lock()
	counter, ok := m.calcCounts[source]
	if !ok {
		counter = &atomic.Int64{}
		m.calcCounts[source] = counter
	}
	m.calcMu.Unlock()
	counter.Add(1)
}

// RecordCalculationError counts a failed calculation by error reason.
func (m *Metrics) RecordCalculationError(reason string) {
	m.calcMu.Lock()
	counter, ok := m.calcFailure[reason]
	if !ok {
		counter = &atomic.Int64{}
		m.calcFailure[reason] = counter
	}
	m.calcMu.Unlock()
	counter.Add(1)
}

// RecordRateLimitAllowed increments the count of allowed requests.
func (m *Metrics) RecordRateLimitAllowed() {
	m.rateLimitAllowed.Add(1)
}

// RecordRateLimitRejected increments the count of rejected requests.
func (m *Metrics) RecordRateLimitRejected() {
	m.rateLimitRejected.Add(1)
}

// IncrementActiveConnections increments the active connection gauge.
func (m *Metrics) IncrementActiveConnections() {
	m.activeConnections.Add(1)
}

// DecrementActiveConnections decrements the active connection gauge.
func (m *Metrics) DecrementActiveConnections() {
	m.activeConnections.Add(-1)
}

// knownRoutes is the fixed set of paths the server exposes. Everything
// else is folded into "other" so scanners cannot inflate label
// cardinality.
var knownRoutes = map[string]bool{
	"/":              true,
	"/healthz":       true,
	"/readyz":        true,
	"/metrics":       true,
	"/openapi.yaml":  true,
	"/api/v1/subnet": true,
	"/api/v1/audit":  true,
}

func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// Handler returns an http.Handler that serves Prometheus-format metrics.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		m.writePrometheusMetrics(w)
	})
}

// writePrometheusMetrics writes all metrics in Prometheus text format.
func (m *Metrics) writePrometheusMetrics(w http.ResponseWriter) {
	// App info metric
	_, _ = fmt.Fprintf(w, "# HELP %s_info Application information\n", m.namespace)
	_, _ = fmt.Fprintf(w, "# TYPE %s_info gauge\n", m.namespace)
	_, _ = fmt.Fprintf(w, "%s_info{version=%q} 1\n\n", m.namespace, m.version)

	// HTTP request total
	fmt.Fprintf(w, "# HELP %s_http_requests_total Total number of HTTP requests\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_http_requests_total counter\n", m.namespace)
	m.mu.RLock()
	keys := make([]string, 0, len(m.httpRequestCounts))
	for k := range m.httpRequestCounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		counter := m.httpRequestCounts[key]
		parts := strings.SplitN(key, ":", 3)
		if len(parts) == 3 {
			fmt.Fprintf(w, "%s_http_requests_total{method=%q,path=%q,status=%q} %d\n",
				m.namespace, parts[0], parts[1], parts[2], counter.Load())
		}
	}
	m.mu.RUnlock()
	_, _ = fmt.Fprintln(w)

	// HTTP request duration quantiles
	fmt.Fprintf(w, "# HELP %s_http_request_duration_seconds HTTP request duration in seconds\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_http_request_duration_seconds summary\n", m.namespace)
	m.httpDurationMu.RLock()
	durationKeys := make([]string, 0, len(m.httpDurations))
	for k := range m.httpDurations {
		durationKeys = append(durationKeys, k)
	}
	sort.Strings(durationKeys)
	for _, key := range durationKeys {
		collector := m.httpDurations[key]
		parts := strings.SplitN(key, ":", 2)
		if len(parts) == 2 {
			method, path := parts[0], parts[1]
			for _, q := range []float64{0.5, 0.9, 0.99} {
				fmt.Fprintf(w, "%s_http_request_duration_seconds{method=%q,path=%q,quantile=\"%.2f\"} %.6f\n",
					m.namespace, method, path, q, collector.quantile(q))
			}
			fmt.Fprintf(w, "%s_http_request_duration_seconds_sum{method=%q,path=%q} %.6f\n",
				m.namespace, method, path, collector.sum())
			fmt.Fprintf(w, "%s_http_request_duration_seconds_count{method=%q,path=%q} %d\n",
				m.namespace, method, path, collector.count())
		}
	}
	m.httpDurationMu.RUnlock()
	_, _ = fmt.Fprintln(w)

	// Calculation counters
	fmt.Fprintf(w, "# HELP %s_calculations_total Completed subnet calculations by mask source\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_calculations_total counter\n", m.namespace)
	m.calcMu.RLock()
	sources := make([]string, 0, len(m.calcCounts))
	for k := range m.calcCounts {
		sources = append(sources, k)
	}
	sort.Strings(sources)
	for _, source := range sources {
		fmt.Fprintf(w, "%s_calculations_total{source=%q} %d\n", m.namespace, source, m.calcCounts[source].Load())
	}
	m.calcMu.RUnlock()
	_, _ = fmt.Fprintln(w)

	fmt.Fprintf(w, "# HELP %s_calculation_errors_total Rejected subnet calculations by reason\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_calculation_errors_total counter\n", m.namespace)
	m.calcMu.RLock()
	reasons := make([]string, 0, len(m.calcFailure))
	for k := range m.calcFailure {
		reasons = append(reasons, k)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(w, "%s_calculation_errors_total{reason=%q} %d\n", m.namespace, reason, m.calcFailure[reason].Load())
	}
	m.calcMu.RUnlock()
	_, _ = fmt.Fprintln(w)

	// Rate limiter metrics
	fmt.Fprintf(w, "# HELP %s_rate_limit_requests_total Total rate limit decisions\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_rate_limit_requests_total counter\n", m.namespace)
	fmt.Fprintf(w, "%s_rate_limit_requests_total{status=\"allowed\"} %d\n", m.namespace, m.rateLimitAllowed.Load())
	fmt.Fprintf(w, "%s_rate_limit_requests_total{status=\"rejected\"} %d\n\n", m.namespace, m.rateLimitRejected.Load())

	// Active connections gauge
	fmt.Fprintf(w, "# HELP %s_active_connections Current number of active HTTP connections\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_active_connections gauge\n", m.namespace)
	fmt.Fprintf(w, "%s_active_connections %d\n", m.namespace, m.activeConnections.Load())
}

// MetricsMiddleware returns an HTTP middleware that records request metrics.
func MetricsMiddleware(m *Metrics) func(http.Handler) http.Handler {
	if m == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip the metrics endpoint itself
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			m.IncrementActiveConnections()
			defer m.DecrementActiveConnections()

			start := time.Now()

			wrapped := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			m.RecordHTTPRequest(r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
		})
	}
}

// metricsResponseWriter wraps http.ResponseWriter to capture the status code.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *metricsResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying ResponseWriter for compatibility with
// http.ResponseController and other wrapping utilities.
func (w *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// RateLimitMetricsMiddleware returns middleware that records rate limit
// decisions. It should wrap the rate limiting middleware.
func RateLimitMetricsMiddleware(m *Metrics, rateLimitEnabled bool) func(http.Handler) http.Handler {
	if m == nil || !rateLimitEnabled {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			if wrapped.statusCode == http.StatusTooManyRequests {
				m.RecordRateLimitRejected()
			} else {
				m.RecordRateLimitAllowed()
			}
		})
	}
}

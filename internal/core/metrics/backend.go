package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BackendMetrics records latency and failures of marketplace backend calls.
type BackendMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewBackendMetrics registers the backend call metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	if reg == nil {
		return &BackendMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of marketplace backend requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource", "method", "status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "backend_request_failures_total",
		Help:      "Marketplace backend requests that failed at transport level or returned an unsuccessful envelope.",
	}, []string{"resource", "method"})
	reg.MustRegister(duration, failures)
	return &BackendMetrics{
		duration: duration,
		failures: failures,
	}
}

// ObserveRequest records one completed backend request. statusCode is 0 when no response arrived.
func (m *BackendMetrics) ObserveRequest(resource, method string, statusCode int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(resource), method, statusLabel(statusCode)).Observe(elapsed.Seconds())
}

// IncFailure increments the failure counter for the resource.
func (m *BackendMetrics) IncFailure(resource, method string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(resource), method).Inc()
}

func statusLabel(code int) string {
	if code == 0 {
		return "none"
	}
	return strconv.Itoa(code)
}

func normalizeLabel(resource string) string {
	if resource == "" {
		return "unknown"
	}
	return resource
}

package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BackendMetrics records calls made to the storefront backend.
type BackendMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewBackendMetrics registers the backend call metrics on the provided registerer.
func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	if reg == nil {
		return &BackendMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_backend_request_duration_seconds",
		Help:    "Duration of storefront backend requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_backend_requests_total",
		Help: "Storefront backend requests by outcome.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, requests)
	return &BackendMetrics{
		duration: duration,
		requests: requests,
	}
}

// Observe records one finished request. status 0 means the backend was not reached.
func (m *BackendMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil || m.requests == nil {
		return
	}
	route = normalizeRoute(route)
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	m.requests.WithLabelValues(method, route, statusLabel(status)).Inc()
}

func statusLabel(status int) string {
	if status == 0 {
		return "unreachable"
	}
	return strconv.Itoa(status)
}

// normalizeRoute drops query strings and collapses identifiers so label
// cardinality stays bounded.
func normalizeRoute(route string) string {
	if idx := strings.IndexByte(route, '?'); idx >= 0 {
		route = route[:idx]
	}
	route = strings.TrimSpace(route)
	if route == "" {
		return "unknown"
	}
	if strings.HasPrefix(route, "/user/addresses/") {
		return "/user/addresses/:id"
	}
	return route
}

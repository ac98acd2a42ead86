package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const _slowRequestThreshold = 500 * time.Millisecond

var _ HTTP = (*httpMetrics)(nil)

type httpMetrics struct {
	requests *prometheus.CounterVec
	slow     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	labels := []string{"method", "route", "status_class"}

	m := &httpMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route template and status class.",
		}, labels),
		slow: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "http",
			Name:      "slow_requests_total",
			Help:      "HTTP requests that took longer than 500ms.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: _namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, labels),
	}

	reg.MustRegister(m.requests, m.slow, m.duration)
	return m
}

func (m *httpMetrics) Request(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	class := statusClass(status)

	m.requests.WithLabelValues(method, route, class).Inc()
	m.duration.WithLabelValues(method, route, class).Observe(duration.Seconds())
	if duration >= _slowRequestThreshold {
		m.slow.WithLabelValues(method, route, class).Inc()
	}
}

func statusClass(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "5xx"
	case status >= http.StatusBadRequest:
		return "4xx"
	case status >= http.StatusMultipleChoices:
		return "3xx"
	default:
		return "2xx"
	}
}

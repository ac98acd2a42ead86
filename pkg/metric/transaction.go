package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Transaction = (*transactionMetrics)(nil)

type transactionMetrics struct {
	duration *prometheus.HistogramVec
	attempts *prometheus.HistogramVec
	retries  *prometheus.CounterVec
}

func newTransactionMetrics(reg prometheus.Registerer) *transactionMetrics {
	m := &transactionMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: _namespace,
			Subsystem: "db",
			Name:      "transaction_duration_seconds",
			Help:      "Wall time of a transaction including retries, by outcome.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"operation", "outcome"}),
		attempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: _namespace,
			Subsystem: "db",
			Name:      "transaction_attempts",
			Help:      "Attempts spent per transaction.",
			Buckets:   []float64{1, 2, 3, 4, 5, 10},
		}, []string{"operation"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "db",
			Name:      "transaction_retries_total",
			Help:      "Transaction retries by SQLSTATE or driver reason.",
		}, []string{"operation", "reason"}),
	}

	reg.MustRegister(m.duration, m.attempts, m.retries)
	return m
}

func (m *transactionMetrics) Finished(operation, outcome string, attempts int, duration time.Duration) {
	m.duration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
	m.attempts.WithLabelValues(operation).Observe(float64(attempts))
}

func (m *transactionMetrics) Retried(operation, reason string) {
	m.retries.WithLabelValues(operation, reason).Inc()
}

package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ DLQ = (*dlqMetrics)(nil)

type dlqMetrics struct {
	sent       *prometheus.CounterVec
	retryCount *prometheus.HistogramVec
	sendErrors *prometheus.CounterVec
	replayed   *prometheus.CounterVec
}

func newDLQMetrics(reg prometheus.Registerer) *dlqMetrics {
	m := &dlqMetrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "dlq",
			Name:      "messages_sent_total",
			Help:      "Messages parked on the dead letter topic.",
		}, []string{"original_topic"}),
		retryCount: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: _namespace,
			Subsystem: "dlq",
			Name:      "retry_count",
			Help:      "Retry count carried by parked messages.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		}, []string{"original_topic"}),
		sendErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "dlq",
			Name:      "send_errors_total",
			Help:      "Failures writing to the dead letter topic.",
		}, []string{"reason"}),
		replayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "dlq",
			Name:      "replays_total",
			Help:      "Dead letter replays by outcome.",
		}, []string{"original_topic", "outcome"}),
	}

	reg.MustRegister(m.sent, m.retryCount, m.sendErrors, m.replayed)
	return m
}

func (m *dlqMetrics) Sent(originalTopic string, retryCount int) {
	m.sent.WithLabelValues(originalTopic).Inc()
	m.retryCount.WithLabelValues(originalTopic).Observe(float64(retryCount))
}

func (m *dlqMetrics) SendFailed(reason string) {
	m.sendErrors.WithLabelValues(reason).Inc()
}

func (m *dlqMetrics) Replayed(originalTopic, outcome string) {
	m.replayed.WithLabelValues(originalTopic, outcome).Inc()
}

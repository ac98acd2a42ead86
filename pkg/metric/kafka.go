package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Kafka = (*kafkaMetrics)(nil)

type kafkaMetrics struct {
	consumed *prometheus.CounterVec
	failed   *prometheus.CounterVec
	lag      *prometheus.GaugeVec
}

func newKafkaMetrics(reg prometheus.Registerer) *kafkaMetrics {
	m := &kafkaMetrics{
		consumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "import",
			Name:      "messages_consumed_total",
			Help:      "Product messages imported successfully.",
		}, []string{"topic", "partition"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "import",
			Name:      "messages_failed_total",
			Help:      "Product messages that could not be imported, by reason.",
		}, []string{"topic", "partition", "reason"}),
		lag: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: _namespace,
			Subsystem: "import",
			Name:      "partition_lag",
			Help:      "Messages left behind the high water mark at last read.",
		}, []string{"topic", "partition"}),
	}

	reg.MustRegister(m.consumed, m.failed, m.lag)
	return m
}

func (m *kafkaMetrics) MessageConsumed(topic string, partition int, lag int64) {
	p := partitionLabel(partition)
	m.consumed.WithLabelValues(topic, p).Inc()
	m.lag.WithLabelValues(topic, p).Set(float64(max(lag, 0)))
}

func (m *kafkaMetrics) MessageFailed(topic string, partition int, reason string) {
	m.failed.WithLabelValues(topic, partitionLabel(partition), reason).Inc()
}

func partitionLabel(partition int) string {
	if partition < 0 {
		return "all"
	}
	return strconv.Itoa(partition)
}

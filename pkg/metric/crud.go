package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ CRUD = (*crudMetrics)(nil)

type crudMetrics struct {
	operations *prometheus.CounterVec
	pageSize   *prometheus.HistogramVec
}

func newCRUDMetrics(reg prometheus.Registerer) *crudMetrics {
	m := &crudMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "crud",
			Name:      "operations_total",
			Help:      "Resource operations by outcome.",
		}, []string{"resource", "operation", "outcome"}),
		pageSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: _namespace,
			Subsystem: "crud",
			Name:      "page_size",
			Help:      "Requested page sizes for paged listings.",
			Buckets:   []float64{1, 5, 10, 20, 50, 100, 250, 500, 1000},
		}, []string{"resource"}),
	}

	reg.MustRegister(m.operations, m.pageSize)
	return m
}

func (m *crudMetrics) Operation(resource, operation, outcome string) {
	m.operations.WithLabelValues(resource, operation, outcome).Inc()
}

func (m *crudMetrics) PageRequested(resource string, pageSize int) {
	m.pageSize.WithLabelValues(resource).Observe(float64(pageSize))
}

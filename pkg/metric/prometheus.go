package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const _namespace = "product_service"

var _ Factory = (*prometheusFactory)(nil)

type prometheusFactory struct {
	registry    *prometheus.Registry
	http        *httpMetrics
	transaction *transactionMetrics
	crud        *crudMetrics
	kafka       *kafkaMetrics
	dlq         *dlqMetrics
}

// NewFactory registers every group on its own registry, so tests can build
// as many factories as they like.
func NewFactory() Factory {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: _namespace}),
	)

	return &prometheusFactory{
		registry:    reg,
		http:        newHTTPMetrics(reg),
		transaction: newTransactionMetrics(reg),
		crud:        newCRUDMetrics(reg),
		kafka:       newKafkaMetrics(reg),
		dlq:         newDLQMetrics(reg),
	}
}

func (f *prometheusFactory) HTTP() HTTP {
	return f.http
}

func (f *prometheusFactory) Transaction() Transaction {
	return f.transaction
}

func (f *prometheusFactory) CRUD() CRUD {
	return f.crud
}

func (f *prometheusFactory) Kafka() Kafka {
	return f.kafka
}

func (f *prometheusFactory) DLQ() DLQ {
	return f.dlq
}

func (f *prometheusFactory) Handler() http.Handler {
	return promhttp.HandlerFor(f.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          f.registry,
	})
}

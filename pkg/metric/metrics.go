package metric

import (
	"net/http"
	"time"
)

// Outcome labels shared by the metric groups.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"

	TxCommitted = "committed"
	TxFailed    = "failed"
	TxCanceled  = "canceled"
	TxExhausted = "exhausted"

	ReplayImported = "imported"
	ReplayRequeued = "requeued"
	ReplayDropped  = "dropped"
)

type (
	Factory interface {
		HTTP() HTTP
		Transaction() Transaction
		CRUD() CRUD
		Kafka() Kafka
		DLQ() DLQ
		Handler() http.Handler
	}

	// HTTP is labelled by route template, never by raw path.
	HTTP interface {
		Request(method, route string, status int, duration time.Duration)
	}

	Transaction interface {
		Finished(operation, outcome string, attempts int, duration time.Duration)
		Retried(operation, reason string)
	}

	CRUD interface {
		Operation(resource, operation, outcome string)
		PageRequested(resource string, pageSize int)
	}

	// Kafka covers the product import stream. lag is the distance from the
	// partition high water mark after the message was read.
	Kafka interface {
		MessageConsumed(topic string, partition int, lag int64)
		MessageFailed(topic string, partition int, reason string)
	}

	DLQ interface {
		Sent(originalTopic string, retryCount int)
		SendFailed(reason string)
		Replayed(originalTopic, outcome string)
	}
)

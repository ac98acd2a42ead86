package kafkat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shopsample/pkg/kafka/dlq"
	"shopsample/pkg/logger"
	"shopsample/pkg/metric"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

const _defaultDLQHandleTimeout = 5 * time.Second

// DLQProcessor replays dead-lettered imports until they succeed or reach
// maxRetries, re-queuing each failure with an incremented retry count.
type DLQProcessor struct {
	reader       MessageReader
	dlq          *dlq.DLQ
	svc          ProductCreator
	maxRetries   int
	pollInterval time.Duration
	validate     *validator.Validate
	metrics      metric.DLQ
	log          logger.Logger
}

func NewDLQProcessor(
	reader MessageReader,
	deadLetters *dlq.DLQ,
	svc ProductCreator,
	maxRetries int,
	pollInterval time.Duration,
	metrics metric.DLQ,
	log logger.Logger,
) *DLQProcessor {
	return &DLQProcessor{
		reader:       reader,
		dlq:          deadLetters,
		svc:          svc,
		maxRetries:   maxRetries,
		pollInterval: pollInterval,
		validate:     newDtoValidator(),
		metrics:      metrics,
		log:          log,
	}
}

func (p *DLQProcessor) Start(ctx context.Context) error {
	defer func() {
		if err := p.reader.Close(); err != nil {
			p.log.Warnw("close dlq reader", "error", err)
		}
	}()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Infow("dlq processor shutting down")
			return nil
		case <-ticker.C:
			p.processNext(ctx)
		}
	}
}

func (p *DLQProcessor) processNext(ctx context.Context) {
	readCtx, cancel := context.WithTimeout(ctx, p.pollInterval)
	defer cancel()

	msg, err := p.reader.ReadMessage(readCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return
		}
		p.log.Errorw("read dlq message", "error", err)
		return
	}

	if err = p.replay(ctx, msg); err != nil {
		p.log.Errorw("replay dlq message",
			"offset", msg.Offset,
			"error", err,
		)
	}
}

func (p *DLQProcessor) replay(ctx context.Context, msg kafka.Message) error {
	const op = "transport.kafka.DLQProcessor.replay"

	var env dlq.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return fmt.Errorf("%s: unmarshal envelope: %w", op, err)
	}

	if env.Metadata.RetryCount >= p.maxRetries {
		p.log.LogAttrs(ctx, logger.WarnLevel, "dropping dlq message after max retries",
			logger.String("op", op),
			logger.Int64("offset", msg.Offset),
			logger.Int("retry_count", env.Metadata.RetryCount),
			logger.String("last_error", env.Metadata.Error),
		)
		p.metrics.Replayed(env.Metadata.OriginalTopic, metric.ReplayDropped)
		return nil
	}

	dto, err := decodeProduct([]byte(env.Payload), p.validate)
	if err != nil {
		p.log.LogAttrs(ctx, logger.WarnLevel, "dropping invalid dlq payload",
			logger.String("op", op),
			logger.Int64("offset", msg.Offset),
			logger.Err(err),
		)
		p.metrics.Replayed(env.Metadata.OriginalTopic, metric.ReplayDropped)
		return nil
	}

	handleCtx, cancel := context.WithTimeout(ctx, _defaultDLQHandleTimeout)
	defer cancel()

	if _, err = p.svc.Create(handleCtx, dto); err != nil {
		original := kafka.Message{
			Topic:     env.Metadata.OriginalTopic,
			Partition: env.Metadata.Partition,
			Offset:    env.Metadata.Offset,
			Key:       msg.Key,
			Value:     []byte(env.Payload),
		}
		if sendErr := p.dlq.Send(ctx, original, err, env.Metadata.RetryCount+1); sendErr != nil {
			return fmt.Errorf("%s: requeue: %w", op, sendErr)
		}
		p.metrics.Replayed(env.Metadata.OriginalTopic, metric.ReplayRequeued)
		return nil
	}

	p.metrics.Replayed(env.Metadata.OriginalTopic, metric.ReplayImported)

	p.log.Infow("dlq message replayed",
		"offset", msg.Offset,
		"retry_count", env.Metadata.RetryCount,
	)
	return nil
}

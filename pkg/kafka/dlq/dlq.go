package dlq

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"shopsample/internal/config"
	"shopsample/pkg/logger"
	"shopsample/pkg/metric"

	"github.com/segmentio/kafka-go"
)

const (
	_defaultMaxAttempts    = 5
	_defaultBaseRetryDelay = 100 * time.Millisecond
	_defaultMaxRetryDelay  = 5 * time.Second

	_backoffMultiplier = 2
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type DLQ struct {
	writer  Writer
	topic   string
	log     logger.Logger
	metrics metric.DLQ

	maxAttempts    int
	baseRetryDelay time.Duration
	maxRetryDelay  time.Duration
}

func NewDLQ(
	brokers []string,
	cfg config.DLQ,
	log logger.Logger,
	metrics metric.DLQ,
	opts ...Option,
) (*DLQ, error) {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Topic,
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		ReadTimeout:            cfg.ReadTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		Logger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.LogAttrs(context.Background(), logger.DebugLevel, "dlq writer info",
				logger.String("message", fmt.Sprintf(msg, args...)),
			)
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.LogAttrs(context.Background(), logger.ErrorLevel, "dlq writer error",
				logger.String("error", fmt.Sprintf(msg, args...)),
			)
		}),
	}

	return New(writer, cfg.Topic, log, metrics, opts...)
}

// New wraps an existing writer. NewDLQ is the usual entry point.
func New(writer Writer, topic string, log logger.Logger, metrics metric.DLQ, opts ...Option) (*DLQ, error) {
	d := &DLQ{
		writer:  writer,
		topic:   topic,
		log:     log,
		metrics: metrics,

		maxAttempts:    _defaultMaxAttempts,
		baseRetryDelay: _defaultBaseRetryDelay,
		maxRetryDelay:  _defaultMaxRetryDelay,
	}

	for _, opt := range opts {
		opt(d)
	}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("kafka.dlq.New: validation: %w", err)
	}

	return d, nil
}

func (d *DLQ) MaxAttempts() int {
	return d.maxAttempts
}

func (d *DLQ) Close() error {
	if err := d.writer.Close(); err != nil {
		return fmt.Errorf("kafka.dlq.Close: %w", err)
	}
	return nil
}

// Send writes msg to the dead letter topic wrapped in an Envelope.
// retryCount is the number of replays already made from the dead letter topic.
func (d *DLQ) Send(ctx context.Context, msg kafka.Message, cause error, retryCount int) error {
	return d.send(ctx, msg, cause, retryCount, 0)
}

func (d *DLQ) send(ctx context.Context, msg kafka.Message, cause error, retryCount, attempts int) error {
	const op = "kafka.dlq.Send"

	value, err := json.Marshal(Envelope{
		Metadata: Metadata{
			OriginalTopic: msg.Topic,
			Partition:     msg.Partition,
			Offset:        msg.Offset,
			RetryCount:    retryCount,
			Attempts:      attempts,
			Error:         errorText(cause),
			Timestamp:     time.Now().UTC(),
		},
		Payload: string(msg.Value),
	})
	if err != nil {
		d.metrics.SendFailed("marshal_failed")
		return fmt.Errorf("%s: marshal envelope: %w", op, err)
	}

	if err = d.writer.WriteMessages(ctx, kafka.Message{Key: msg.Key, Value: value}); err != nil {
		d.log.Errorw("failed to send message to dlq",
			"op", op,
			"error", err,
			"offset", msg.Offset,
		)
		d.metrics.SendFailed("write_failed")
		return fmt.Errorf("%s: send message: %w", op, err)
	}

	d.metrics.Sent(msg.Topic, retryCount)
	d.log.Infow("message sent to dlq",
		"op", op,
		"topic", d.topic,
		"original_topic", msg.Topic,
		"offset", msg.Offset,
		"retry_count", retryCount,
	)

	return nil
}

// ProcessWithRetry runs handler until it succeeds, fails permanently, or
// runs out of attempts. Exhausted and permanent failures are sent to the
// dead letter topic and reported as ErrDeadLettered.
func ProcessWithRetry(
	ctx context.Context,
	msg kafka.Message,
	handler func(context.Context, kafka.Message) error,
	d *DLQ,
	log logger.Logger,
) error {
	const op = "kafka.dlq.ProcessWithRetry"

	var err error
	attempt := 0
	currentBackoff := d.baseRetryDelay
	for attempt < d.maxAttempts {
		if attempt > 0 {
			jitter := time.Duration(rand.Int64N(int64(currentBackoff * _backoffMultiplier)))
			jitter = min(jitter, d.maxRetryDelay)

			log.LogAttrs(ctx, logger.InfoLevel, "retrying message processing",
				logger.String("op", op),
				logger.Int("attempt", attempt+1),
				logger.Duration("retry_after", jitter),
				logger.Err(err),
			)

			select {
			case <-time.After(jitter):
			case <-ctx.Done():
				return fmt.Errorf("%s: context done: %w", op, ctx.Err())
			}
			currentBackoff = min(currentBackoff*_backoffMultiplier, d.maxRetryDelay)
		}

		attempt++
		err = handler(ctx, msg)
		if err == nil {
			return nil
		}

		log.LogAttrs(ctx, logger.WarnLevel, "message processing failed",
			logger.String("op", op),
			logger.Int64("offset", msg.Offset),
			logger.Int("attempt", attempt),
			logger.Bool("permanent", IsPermanent(err)),
			logger.Err(err),
		)

		if IsPermanent(err) || ctx.Err() != nil {
			break
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("%s: context done: %w", op, ctx.Err())
	}

	if sendErr := d.send(ctx, msg, err, 0, attempt); sendErr != nil {
		return fmt.Errorf("%s: %w", op, sendErr)
	}
	return fmt.Errorf("%s: after %d attempts: %w: %w", op, attempt, ErrDeadLettered, err)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

package kafka

import (
	"context"
	"fmt"
	"time"

	"shopsample/pkg/logger"

	"github.com/segmentio/kafka-go"
)

const _dialTimeout = 5 * time.Second

// NewReader returns a consumer-group reader for topic. It fails fast when a
// broker refuses a connection.
func NewReader(
	ctx context.Context,
	brokers []string,
	topic, groupID string,
	log logger.Logger,
) (*kafka.Reader, error) {
	const op = "kafka.NewReader"

	if err := CheckConnection(ctx, brokers, log); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log = log.With("topic", topic, "group_id", groupID)

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		Logger:      infoLogger(log, "kafka reader info"),
		ErrorLogger: errorLogger(log, "kafka reader error"),
	}), nil
}

// NewWriter returns a synchronous writer for topic that hashes keys to
// partitions.
func NewWriter(brokers []string, topic string, log logger.Logger) *kafka.Writer {
	log = log.With("topic", topic)

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		Logger:                 infoLogger(log, "kafka writer info"),
		ErrorLogger:            errorLogger(log, "kafka writer error"),
	}
}

func CheckConnection(ctx context.Context, brokers []string, log logger.Logger) error {
	const op = "kafka.CheckConnection"

	dialer := &kafka.Dialer{Timeout: _dialTimeout}
	for _, broker := range brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			return fmt.Errorf("%s: connect to %s: %w", op, broker, err)
		}

		if err = conn.Close(); err != nil {
			log.Warnw("failed to close connection",
				"op", op,
				"broker", broker,
				"error", err,
			)
		}
	}
	return nil
}

func infoLogger(log logger.Logger, msg string) kafka.LoggerFunc {
	return func(format string, args ...any) {
		log.LogAttrs(context.Background(), logger.DebugLevel, msg,
			logger.String("message", fmt.Sprintf(format, args...)),
		)
	}
}

func errorLogger(log logger.Logger, msg string) kafka.LoggerFunc {
	return func(format string, args ...any) {
		log.LogAttrs(context.Background(), logger.ErrorLevel, msg,
			logger.String("error", fmt.Sprintf(format, args...)),
		)
	}
}

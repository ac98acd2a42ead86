package kafkat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"shopsample/internal/entity"
	"shopsample/pkg/crud"
	"shopsample/pkg/kafka/dlq"
	"shopsample/pkg/logger"
	"shopsample/pkg/metric"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type (
	MessageReader interface {
		ReadMessage(ctx context.Context) (kafka.Message, error)
		Close() error
	}

	ProductCreator interface {
		Create(ctx context.Context, dto *entity.ProductDto) (crud.Optional[*entity.ProductDto], error)
	}
)

// ProductConsumer imports products published as ProductDto JSON.
type ProductConsumer struct {
	reader   MessageReader
	dlq      *dlq.DLQ
	svc      ProductCreator
	metric   metric.Kafka
	validate *validator.Validate
	log      logger.Logger
}

func NewProductConsumer(
	reader MessageReader,
	deadLetters *dlq.DLQ,
	svc ProductCreator,
	metric metric.Kafka,
	log logger.Logger,
) *ProductConsumer {
	return &ProductConsumer{
		reader:   reader,
		dlq:      deadLetters,
		svc:      svc,
		metric:   metric,
		validate: newDtoValidator(),
		log:      log,
	}
}

func (c *ProductConsumer) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return c.run(ctx)
	})

	eg.Go(func() error {
		<-ctx.Done()
		c.log.Infow("shutting down product consumer")
		return c.reader.Close()
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("transport.kafka.ProductConsumer.Start: %w", err)
	}
	return nil
}

func (c *ProductConsumer) run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Errorw("kafka read failed", "error", err)
			continue
		}

		c.processMessage(ctx, msg)
	}
}

func (c *ProductConsumer) processMessage(ctx context.Context, msg kafka.Message) {
	c.log.Debugw("processing kafka message",
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
		"key", string(msg.Key),
	)

	err := dlq.ProcessWithRetry(ctx, msg, c.handleMessage, c.dlq, c.log)
	switch {
	case err == nil:
		c.metric.MessageConsumed(msg.Topic, msg.Partition, msg.HighWaterMark-msg.Offset-1)
	case errors.Is(err, dlq.ErrDeadLettered):
		c.metric.MessageFailed(msg.Topic, msg.Partition, failureReason(err))
	case ctx.Err() != nil:
		return
	default:
		sum := sha256.Sum256(msg.Value)
		c.log.Errorw("critical: message lost, dead letter queue unavailable",
			"offset", msg.Offset,
			"payload_sha256", hex.EncodeToString(sum[:]),
			"error", err,
		)
		c.metric.MessageFailed(msg.Topic, msg.Partition, "dlq_unavailable")
	}
}

func (c *ProductConsumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	const op = "transport.kafka.ProductConsumer.handleMessage"

	dto, err := decodeProduct(msg.Value, c.validate)
	if err != nil {
		return dlq.Permanent(fmt.Errorf("%s: %w", op, err))
	}

	result, err := c.svc.Create(ctx, dto)
	if err != nil {
		return fmt.Errorf("%s: create product: %w", op, err)
	}

	created, _ := result.Get()
	id, _ := created.Identifier()
	c.log.Infow("product imported from kafka",
		"id", id,
		"key", string(msg.Key),
		"offset", msg.Offset,
	)

	return nil
}

// decodeProduct parses and validates an imported product. Any id in the
// payload is dropped so the import always creates.
func decodeProduct(payload []byte, validate *validator.Validate) (*entity.ProductDto, error) {
	var dto entity.ProductDto
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w: %w", err, entity.ErrInvalidData)
	}
	if err := validate.Struct(&dto); err != nil {
		return nil, fmt.Errorf("validate product: %w: %w", err, entity.ErrInvalidData)
	}
	dto.ID = nil
	return &dto, nil
}

func failureReason(err error) string {
	if dlq.IsPermanent(err) {
		return "invalid_payload"
	}
	return "retry_limit_exceeded"
}

// newDtoValidator checks the same binding rules the HTTP layer enforces.
func newDtoValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

//nolint:mnd
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shopsample/internal/config"
	"shopsample/internal/entity"
	"shopsample/pkg/kafka"
	"shopsample/pkg/logger"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

func main() {
	brokers := flag.String(
		"brokers",
		"localhost:9092",
		"Kafka bootstrap brokers to connect to, as a comma separated list",
	)
	topic := flag.String("topic", "products", "Kafka topic to write products to")
	count := flag.Int("count", 1, "Number of products to send")
	interval := flag.Duration("interval", time.Second, "Interval between messages")
	invalidRatio := flag.Float64("invalid", 0, "Share of deliberately invalid products, 0..1")
	flag.Parse()

	log, err := logger.NewAdapter(&config.Config{
		App:    config.App{Name: "product-producer", Version: "0.1.0"},
		Logger: config.Logger{Level: "info"},
		Env:    "local",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	writer := kafka.NewWriter(strings.Split(*brokers, ","), *topic, log)
	defer writer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Infow("starting product producer",
		"brokers", *brokers,
		"topic", *topic,
		"count", *count,
		"interval", interval.String(),
	)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for sent := 0; sent < *count; {
		if err = sendProduct(ctx, writer, gofakeit.Float64Range(0, 1) < *invalidRatio); err != nil {
			log.Errorw("failed to send product", "error", err)
		} else {
			sent++
		}

		if sent == *count {
			break
		}

		select {
		case <-ctx.Done():
			log.Infow("shutting down producer", "sent", sent)
			return
		case <-ticker.C:
		}
	}

	log.Infow("sent all products", "count", *count)
}

func sendProduct(ctx context.Context, writer *kafkago.Writer, invalid bool) error {
	product := generateFakeProduct()
	if invalid {
		product.Name = ""
	}

	value, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eventID := uuid.New().String()
	if err = writer.WriteMessages(writeCtx, kafkago.Message{Key: []byte(eventID), Value: value}); err != nil {
		return fmt.Errorf("write message %s: %w", eventID, err)
	}
	return nil
}

func generateFakeProduct() *entity.ProductDto {
	var description *string
	if gofakeit.Bool() {
		d := gofakeit.ProductDescription()
		description = &d
	}

	return &entity.ProductDto{
		Name:        gofakeit.ProductName(),
		Description: description,
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 2000)).Round(2),
		ImageURL:    gofakeit.URL(),
	}
}

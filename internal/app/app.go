package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"shopsample/internal/config"
	"shopsample/internal/repository"
	"shopsample/internal/service"
	httpt "shopsample/internal/transport/http"
	kafkat "shopsample/internal/transport/kafka"
	"shopsample/pkg/kafka"
	"shopsample/pkg/kafka/dlq"
	"shopsample/pkg/logger"
	"shopsample/pkg/metric"
	"shopsample/pkg/storage/postgres"
	"shopsample/pkg/storage/postgres/transaction"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Run wires the service and blocks until ctx is canceled or a component
// fails.
func Run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	eg, ctx := errgroup.WithContext(ctx)

	metrics := initMetrics(ctx, eg, &cfg.Metrics, log)

	db, err := initDatabase(ctx, &cfg.Postgres, log)
	if err != nil {
		return err
	}
	defer db.Close()

	txManager, err := initTransactionManager(db, log, metrics)
	if err != nil {
		return err
	}

	if cfg.Postgres.AutoMigrate {
		if err = repository.Migrate(ctx, txManager, log.With("component", "migrations")); err != nil {
			return fmt.Errorf("app.Run: %w", err)
		}
	}

	productService := service.NewProductService(
		repository.NewProductRepository(db, txManager),
		log.With("component", "product service"),
	)

	if err = initHTTPServer(ctx, eg, cfg, productService, db, log, metrics); err != nil {
		return err
	}

	if cfg.Kafka.Enabled {
		if err = initKafkaComponents(ctx, eg, cfg, productService, log, metrics); err != nil {
			return err
		}
	}

	return waitForShutdown(eg)
}

func initMetrics(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Metrics,
	log logger.Logger,
) metric.Factory {
	metrics := metric.NewFactory()

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	metricsServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           mux,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	eg.Go(func() error {
		log.Infow("starting metrics server", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app.initMetrics: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		return metricsServer.Shutdown(context.WithoutCancel(ctx))
	})

	return metrics
}

func initDatabase(ctx context.Context, cfg *config.Postgres, log logger.Logger) (*postgres.Postgres, error) {
	db, err := postgres.NewPostgres(
		ctx,
		cfg,
		log.With("component", "database"),
		postgres.MaxPoolSize(cfg.PoolMax),
		postgres.MaxConnAttempts(cfg.ConnAttempts),
		postgres.BaseRetryDelay(cfg.BaseRetryDelay),
		postgres.MaxRetryDelay(cfg.MaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initDatabase: %w", err)
	}
	return db, nil
}

func initTransactionManager(
	db *postgres.Postgres,
	log logger.Logger,
	metrics metric.Factory,
) (transaction.Manager, error) {
	txManager, err := transaction.NewManager(
		db,
		log.With("component", "transaction manager"),
		metrics.Transaction(),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initTransactionManager: %w", err)
	}
	return txManager, nil
}

func initHTTPServer(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	productService *service.ProductService,
	db *postgres.Postgres,
	log logger.Logger,
	metrics metric.Factory,
) error {
	handler, err := httpt.NewProductHandler(
		productService,
		db,
		cfg,
		log.With("component", "http handler"),
		metrics,
	)
	if err != nil {
		return fmt.Errorf("app.initHTTPServer: %w", err)
	}

	httpServer := httpt.NewHTTPServer(handler.Engine(), &cfg.HTTP, log.With("component", "http server"))

	eg.Go(func() error {
		return httpServer.Start(ctx)
	})
	return nil
}

func initKafkaComponents(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	productService *service.ProductService,
	log logger.Logger,
	metrics metric.Factory,
) error {
	const op = "app.initKafkaComponents"

	productReader, err := kafka.NewReader(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID,
		log.With("component", "kafka reader"))
	if err != nil {
		return fmt.Errorf("%s: product reader: %w", op, err)
	}

	dlqReader, err := kafka.NewReader(ctx, cfg.Kafka.Brokers, cfg.DLQ.Topic, cfg.DLQ.GroupID,
		log.With("component", "dlq reader"))
	if err != nil {
		return fmt.Errorf("%s: dlq reader: %w", op, err)
	}

	deadLetters, err := dlq.NewDLQ(
		cfg.Kafka.Brokers,
		cfg.DLQ,
		log.With("component", "dlq"),
		metrics.DLQ(),
		dlq.MaxAttemptsCount(cfg.DLQ.MaxRetryCount),
		dlq.BaseRetryDelay(cfg.DLQ.RetryDelay),
	)
	if err != nil {
		return fmt.Errorf("%s: dead letter queue: %w", op, err)
	}

	consumer := kafkat.NewProductConsumer(
		productReader,
		deadLetters,
		productService,
		metrics.Kafka(),
		log.With("component", "product consumer"),
	)
	processor := kafkat.NewDLQProcessor(
		dlqReader,
		deadLetters,
		productService,
		cfg.DLQ.MaxRetryCount,
		cfg.DLQ.PollInterval,
		metrics.DLQ(),
		log.With("component", "dlq processor"),
	)

	eg.Go(func() error {
		return consumer.Start(ctx)
	})
	eg.Go(func() error {
		return processor.Start(ctx)
	})
	eg.Go(func() error {
		<-ctx.Done()
		return deadLetters.Close()
	})

	return nil
}

func waitForShutdown(eg *errgroup.Group) error {
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("app.waitForShutdown: application failed: %w", err)
	}
	return nil
}

package transaction

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"shopsample/pkg/logger"
	"shopsample/pkg/metric"
	"shopsample/pkg/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	_defaultMaxAttempts    = 3
	_defaultBaseRetryDelay = 10 * time.Millisecond
	_defaultMaxRetryDelay  = 100 * time.Millisecond

	_backoffMultiplier = 2
)

type Manager interface {
	// ExecuteInTransaction runs fn in a read-write transaction and commits
	// when fn returns nil. Serialization failures, deadlocks and dropped
	// connections are retried with jittered backoff.
	ExecuteInTransaction(ctx context.Context, operation string, fn func(tx postgres.Querier) error) error

	// ExecuteReadOnly runs fn in a repeatable read, read-only transaction,
	// so every statement in fn sees the same snapshot.
	ExecuteReadOnly(ctx context.Context, operation string, fn func(tx postgres.Querier) error) error
}

type manager struct {
	pg      *postgres.Postgres
	log     logger.Logger
	metrics metric.Transaction

	maxAttempts    int
	baseRetryDelay time.Duration
	maxRetryDelay  time.Duration
	writeIsolation pgx.TxIsoLevel
}

func NewManager(
	pg *postgres.Postgres,
	log logger.Logger,
	metrics metric.Transaction,
	opts ...Option,
) (Manager, error) {
	tm := &manager{
		pg:      pg,
		log:     log,
		metrics: metrics,

		maxAttempts:    _defaultMaxAttempts,
		baseRetryDelay: _defaultBaseRetryDelay,
		maxRetryDelay:  _defaultMaxRetryDelay,
		writeIsolation: pgx.ReadCommitted,
	}

	for _, opt := range opts {
		opt(tm)
	}
	if err := tm.validate(); err != nil {
		return nil, fmt.Errorf("storage.postgres.transaction.NewManager: %w", err)
	}

	return tm, nil
}

func (tm *manager) ExecuteInTransaction(
	ctx context.Context,
	operation string,
	fn func(tx postgres.Querier) error,
) error {
	return tm.execute(ctx, operation, pgx.TxOptions{
		IsoLevel:   tm.writeIsolation,
		AccessMode: pgx.ReadWrite,
	}, fn)
}

func (tm *manager) ExecuteReadOnly(
	ctx context.Context,
	operation string,
	fn func(tx postgres.Querier) error,
) error {
	return tm.execute(ctx, operation, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, fn)
}

func (tm *manager) execute(
	ctx context.Context,
	operation string,
	txOpts pgx.TxOptions,
	fn func(tx postgres.Querier) error,
) error {
	const op = "storage.postgres.transaction.execute"

	return tm.withRetry(ctx, operation, func() error {
		tx, err := tm.pg.Pool.BeginTx(ctx, txOpts)
		if err != nil {
			return fmt.Errorf("%s: %w", op, HandleError(operation, "begin", err))
		}
		defer tm.rollback(ctx, tx, operation)

		if err = fn(postgres.WrapTx(tx)); err != nil {
			return fmt.Errorf("%s: %w", op, HandleError(operation, "execute", err))
		}

		if err = tx.Commit(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, HandleError(operation, "commit", err))
		}
		return nil
	})
}

// rollback is a no-op after a successful commit.
func (tm *manager) rollback(ctx context.Context, tx pgx.Tx, operation string) {
	const op = "storage.postgres.transaction.rollback"

	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		tm.log.LogAttrs(ctx, logger.ErrorLevel, "rollback failed",
			logger.String("op", op),
			logger.String("transaction", operation),
			logger.Err(err),
		)
	}
}

func (tm *manager) withRetry(ctx context.Context, operation string, fn func() error) error {
	const op = "storage.postgres.transaction.withRetry"

	start := time.Now()
	attempt := 0
	finish := func(outcome string) {
		tm.metrics.Finished(operation, outcome, attempt, time.Since(start))
	}

	var lastErr error
	backoff := tm.baseRetryDelay
	for attempt < tm.maxAttempts {
		if attempt > 0 {
			delay := min(time.Duration(rand.Int64N(int64(backoff*_backoffMultiplier))), tm.maxRetryDelay)

			tm.log.LogAttrs(ctx, logger.WarnLevel, "retrying transaction",
				logger.String("op", op),
				logger.String("transaction", operation),
				logger.Int("attempt", attempt+1),
				logger.Int("max_attempts", tm.maxAttempts),
				logger.Duration("retry_after", delay),
				logger.Err(lastErr),
			)

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				finish(metric.TxCanceled)
				return fmt.Errorf("%s: %w", op, ctx.Err())
			}

			backoff = min(backoff*_backoffMultiplier, tm.maxRetryDelay)
		}

		attempt++
		err := fn()
		if err == nil {
			finish(metric.TxCommitted)
			return nil
		}

		reason, retryable := retryReason(err)
		if !retryable {
			if ctx.Err() != nil {
				finish(metric.TxCanceled)
			} else {
				finish(metric.TxFailed)
			}
			return err
		}

		tm.metrics.Retried(operation, reason)
		lastErr = err
	}

	finish(metric.TxExhausted)
	return fmt.Errorf("%s: max attempts (%d) exceeded for %s: %w", op, tm.maxAttempts, operation, lastErr)
}

func isRetryableError(err error) bool {
	_, ok := retryReason(err)
	return ok
}

// retryReason classifies err and, for retryable errors, returns the
// SQLSTATE or driver condition used as the metric label.
func retryReason(err error) (string, bool) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40P01", "40001", "08000", "08003", "08006", "08001", "08004", "08007", "08P01":
			return pgErr.Code, true
		}
		return "", false
	}

	if errors.Is(err, pgx.ErrTxClosed) {
		return "tx_closed", true
	}
	return "", false
}

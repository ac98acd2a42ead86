package transaction

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

type Option func(*manager)

// MaxAttempts bounds how many times a retryable transaction is run.
func MaxAttempts(attempts int) Option {
	return func(m *manager) {
		m.maxAttempts = attempts
	}
}

func BaseRetryDelay(delay time.Duration) Option {
	return func(m *manager) {
		m.baseRetryDelay = delay
	}
}

func MaxRetryDelay(delay time.Duration) Option {
	return func(m *manager) {
		m.maxRetryDelay = delay
	}
}

// WriteIsolation overrides the isolation level used by ExecuteInTransaction.
// Read-only transactions always run at repeatable read.
func WriteIsolation(level pgx.TxIsoLevel) Option {
	return func(m *manager) {
		m.writeIsolation = level
	}
}

func (m *manager) validate() error {
	switch {
	case m.maxAttempts <= 0:
		return errors.New("max attempts must be > 0")
	case m.baseRetryDelay <= 0 || m.maxRetryDelay <= 0:
		return errors.New("retry delays must be > 0")
	case m.baseRetryDelay > m.maxRetryDelay:
		return errors.New("base retry delay cannot exceed max retry delay")
	case m.writeIsolation == "":
		return errors.New("write isolation must be set")
	}
	return nil
}

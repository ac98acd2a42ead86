package transaction

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"NoRows", pgx.ErrNoRows, ErrNoRows},
		{"Unique", &pgconn.PgError{Code: "23505"}, ErrUniqueViolation},
		{"Truncation", &pgconn.PgError{Code: "22001"}, ErrConstraintViolation},
		{"NotNull", &pgconn.PgError{Code: "23502"}, ErrConstraintViolation},
		{"Other", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleError("product.Save", "execute", tt.err)

			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "product.Save: execute")
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}

	assert.NoError(t, HandleError("op", "step", nil))
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"SerializationFailure", &pgconn.PgError{Code: "40001"}, true},
		{"Deadlock", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"ConnectionFailure", &pgconn.PgError{Code: "08006"}, true},
		{"UniqueViolation", &pgconn.PgError{Code: "23505"}, false},
		{"TxClosed", pgx.ErrTxClosed, true},
		{"Canceled", context.Canceled, false},
		{"Deadline", fmt.Errorf("x: %w", context.DeadlineExceeded), false},
		{"Plain", errors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestRetryReason(t *testing.T) {
	reason, ok := retryReason(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}))
	assert.True(t, ok)
	assert.Equal(t, "40001", reason)

	reason, ok = retryReason(pgx.ErrTxClosed)
	assert.True(t, ok)
	assert.Equal(t, "tx_closed", reason)

	_, ok = retryReason(&pgconn.PgError{Code: "23514"})
	assert.False(t, ok)
}

func TestValidateOptions(t *testing.T) {
	tm := &manager{
		maxAttempts:    3,
		baseRetryDelay: time.Millisecond,
		maxRetryDelay:  10 * time.Millisecond,
		writeIsolation: pgx.ReadCommitted,
	}
	assert.NoError(t, tm.validate())

	MaxAttempts(0)(tm)
	assert.Error(t, tm.validate())

	MaxAttempts(2)(tm)
	BaseRetryDelay(time.Second)(tm)
	assert.Error(t, tm.validate())

	BaseRetryDelay(time.Millisecond)(tm)
	WriteIsolation(pgx.Serializable)(tm)
	assert.NoError(t, tm.validate())
	assert.Equal(t, pgx.Serializable, tm.writeIsolation)
}

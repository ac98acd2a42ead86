package dlq

import (
	"errors"
	"time"
)

type Option func(*DLQ)

func MaxAttemptsCount(count int) Option {
	return func(d *DLQ) {
		d.maxAttempts = count
	}
}

func BaseRetryDelay(delay time.Duration) Option {
	return func(d *DLQ) {
		d.baseRetryDelay = delay
	}
}

func MaxRetryDelay(delay time.Duration) Option {
	return func(d *DLQ) {
		d.maxRetryDelay = delay
	}
}

func (d *DLQ) validate() error {
	switch {
	case d.maxAttempts <= 0:
		return errors.New("max attempts must be > 0")
	case d.baseRetryDelay <= 0 || d.maxRetryDelay <= 0:
		return errors.New("retry delays must be > 0")
	case d.baseRetryDelay > d.maxRetryDelay:
		return errors.New("base retry delay cannot exceed max retry delay")
	case d.writer == nil:
		return errors.New("writer is required")
	}
	return nil
}

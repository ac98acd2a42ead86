package dlq

import (
	"errors"
	"time"
)

// ErrDeadLettered marks a message that exhausted its attempts and now lives
// on the dead letter topic.
var ErrDeadLettered = errors.New("message moved to dead letter queue")

// Envelope is the JSON document written to the dead letter topic.
type Envelope struct {
	Metadata Metadata `json:"metadata"`
	Payload  string   `json:"payload"`
}

// Metadata describes where a parked message came from. RetryCount counts
// replays from the dead letter topic and starts at zero; Attempts is the
// number of in-process tries made before the message was parked.
type Metadata struct {
	OriginalTopic string    `json:"original_topic"`
	Partition     int       `json:"partition"`
	Offset        int64     `json:"offset"`
	RetryCount    int       `json:"retry_count"`
	Attempts      int       `json:"attempts,omitempty"`
	Error         string    `json:"error"`
	Timestamp     time.Time `json:"timestamp"`
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying; ProcessWithRetry dead-letters
// it after the first attempt.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

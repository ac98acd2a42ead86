package dlq_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"shopsample/pkg/kafka/dlq"
	"shopsample/pkg/logger"
	"shopsample/pkg/metric"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func newTestDLQ(t *testing.T, w dlq.Writer, attempts int) *dlq.DLQ {
	t.Helper()

	d, err := dlq.New(w, "products-dlq", logger.NewNop(), metric.NewFactory().DLQ(),
		dlq.MaxAttemptsCount(attempts),
		dlq.BaseRetryDelay(time.Millisecond),
		dlq.MaxRetryDelay(2*time.Millisecond),
	)
	require.NoError(t, err)
	return d
}

var testMessage = kafka.Message{
	Topic:     "products",
	Partition: 2,
	Offset:    41,
	Key:       []byte("event-1"),
	Value:     []byte(`{"name":"Lamp"}`),
}

func decodeEnvelope(t *testing.T, msg kafka.Message) dlq.Envelope {
	t.Helper()

	var env dlq.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	return env
}

func TestSend(t *testing.T) {
	w := &recordingWriter{}
	d := newTestDLQ(t, w, 3)

	require.NoError(t, d.Send(context.Background(), testMessage, errors.New("boom"), 3))
	require.Len(t, w.messages, 1)

	assert.Equal(t, testMessage.Key, w.messages[0].Key)
	env := decodeEnvelope(t, w.messages[0])
	assert.Equal(t, "products", env.Metadata.OriginalTopic)
	assert.Equal(t, 2, env.Metadata.Partition)
	assert.Equal(t, int64(41), env.Metadata.Offset)
	assert.Equal(t, 3, env.Metadata.RetryCount)
	assert.Zero(t, env.Metadata.Attempts)
	assert.Equal(t, "boom", env.Metadata.Error)
	assert.Equal(t, string(testMessage.Value), env.Payload)
}

func TestSend_WriteFails(t *testing.T) {
	writeErr := errors.New("broker down")
	d := newTestDLQ(t, &recordingWriter{err: writeErr}, 3)

	err := d.Send(context.Background(), testMessage, errors.New("boom"), 1)
	assert.ErrorIs(t, err, writeErr)
}

func TestProcessWithRetry(t *testing.T) {
	errTransient := errors.New("transient")

	testCases := []struct {
		desc         string
		failures     int
		permanent    bool
		wantCalls    int
		wantDLQ      bool
		wantAttempts int
	}{
		{desc: "FirstTry", failures: 0, wantCalls: 1},
		{desc: "SucceedsAfterRetries", failures: 2, wantCalls: 3},
		{desc: "Exhausted", failures: 10, wantCalls: 3, wantDLQ: true, wantAttempts: 3},
		{desc: "Permanent", failures: 10, permanent: true, wantCalls: 1, wantDLQ: true, wantAttempts: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			w := &recordingWriter{}
			d := newTestDLQ(t, w, 3)

			calls := 0
			handler := func(context.Context, kafka.Message) error {
				calls++
				if calls <= tc.failures {
					if tc.permanent {
						return dlq.Permanent(errTransient)
					}
					return errTransient
				}
				return nil
			}

			err := dlq.ProcessWithRetry(context.Background(), testMessage, handler, d, logger.NewNop())

			assert.Equal(t, tc.wantCalls, calls)
			if !tc.wantDLQ {
				require.NoError(t, err)
				assert.Empty(t, w.messages)
				return
			}

			require.ErrorIs(t, err, dlq.ErrDeadLettered)
			require.ErrorIs(t, err, errTransient)
			require.Len(t, w.messages, 1)
			env := decodeEnvelope(t, w.messages[0])
			assert.Equal(t, tc.wantAttempts, env.Metadata.Attempts)
			assert.Zero(t, env.Metadata.RetryCount)
		})
	}
}

func TestProcessWithRetry_ContextCanceled(t *testing.T) {
	w := &recordingWriter{}
	d := newTestDLQ(t, w, 5)

	ctx, cancel := context.WithCancel(context.Background())
	handler := func(context.Context, kafka.Message) error {
		cancel()
		return errors.New("interrupted")
	}

	err := dlq.ProcessWithRetry(ctx, testMessage, handler, d, logger.NewNop())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, w.messages)
}

func TestPermanent(t *testing.T) {
	base := errors.New("bad payload")

	assert.Nil(t, dlq.Permanent(nil))
	assert.True(t, dlq.IsPermanent(dlq.Permanent(base)))
	assert.ErrorIs(t, dlq.Permanent(base), base)
	assert.False(t, dlq.IsPermanent(base))
}

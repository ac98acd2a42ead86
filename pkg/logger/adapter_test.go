package logger

import (
	"context"
	"errors"
	"testing"

	"shopsample/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (*Adapter, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &Adapter{zl: zap.New(core), level: level}, logs
}

func TestLogAttrs_RequestID(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)
	ctx := ContextWithRequestID(context.Background(), "req-42")

	log.LogAttrs(ctx, InfoLevel, "product created",
		Int64("id", 7),
		Err(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, int64(7), fields["id"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLogAttrs_BelowLevel(t *testing.T) {
	log, logs := newObserved(zapcore.WarnLevel)

	log.LogAttrs(context.Background(), InfoLevel, "dropped")
	log.LogAttrs(context.Background(), ErrorLevel, "kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
	assert.Equal(t, WarnLevel, log.Level())
}

func TestCtxAndWith(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)
	ctx := ContextWithRequestID(context.Background(), "abc")

	log.With("component", "http handler").Ctx(ctx).Infow("handled", "status", 200)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "http handler", fields["component"])
	assert.Equal(t, "abc", fields["request_id"])
	assert.Equal(t, int64(200), fields["status"])
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.NotEmpty(t, NewRequestID())
	assert.NotEqual(t, NewRequestID(), NewRequestID())
}

func TestNewAdapter(t *testing.T) {
	cfg := &config.Config{
		App:    config.App{Name: "product-service", Version: "test"},
		Logger: config.Logger{Level: "debug"},
		Env:    "local",
	}

	log, err := NewAdapter(cfg)
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, log.Level())

	_, err = NewAdapter(cfg, MaxBackups(-1))
	assert.Error(t, err)

	cfg.Logger.Level = "loud"
	_, err = NewAdapter(cfg)
	assert.Error(t, err)
}

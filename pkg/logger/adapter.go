package logger

import (
	"context"
	"fmt"
	"os"

	"shopsample/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	_defaultMaxSize = 100
	_defaultMaxAge  = 30
)

var _ Logger = (*Adapter)(nil)

// Adapter implements Logger on top of zap. Output is JSON on stdout and,
// when a file name is configured, a lumberjack-rotated file.
type Adapter struct {
	zl    *zap.Logger
	level zapcore.Level
}

func NewAdapter(cfg *config.Config, opts ...Option) (*Adapter, error) {
	const op = "logger.NewAdapter"

	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("%s: parse level: %w", op, err)
	}

	s := &settings{
		level:      level,
		maxSize:    cfg.Logger.MaxSize,
		maxBackups: cfg.Logger.MaxBackups,
		maxAge:     cfg.Logger.MaxAge,
	}
	if s.maxSize == 0 {
		s.maxSize = _defaultMaxSize
	}
	if s.maxAge == 0 {
		s.maxAge = _defaultMaxAge
	}
	for _, opt := range opts {
		opt(s)
	}
	if err = s.validate(); err != nil {
		return nil, fmt.Errorf("%s: validation: %w", op, err)
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg.Logger.Filename != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    s.maxSize,
			MaxBackups: s.maxBackups,
			MaxAge:     s.maxAge,
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.NewMultiWriteSyncer(sinks...),
		s.level,
	)

	zl := zap.New(core,
		zap.Fields(
			zap.String("service", cfg.App.Name),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.Env),
		),
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)

	return &Adapter{zl: zl, level: s.level}, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		FunctionKey:   zapcore.OmitKey,
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
}

func (a *Adapter) derive(zl *zap.Logger) *Adapter {
	return &Adapter{zl: zl, level: a.level}
}

func (a *Adapter) Debugw(msg string, keysAndValues ...any) {
	a.zl.Sugar().Debugw(msg, keysAndValues...)
}

func (a *Adapter) Infow(msg string, keysAndValues ...any) {
	a.zl.Sugar().Infow(msg, keysAndValues...)
}

func (a *Adapter) Warnw(msg string, keysAndValues ...any) {
	a.zl.Sugar().Warnw(msg, keysAndValues...)
}

func (a *Adapter) Errorw(msg string, keysAndValues ...any) {
	a.zl.Sugar().Errorw(msg, keysAndValues...)
}

func (a *Adapter) Ctx(ctx context.Context) Logger {
	return a.derive(withRequestID(ctx, a.zl))
}

func (a *Adapter) With(keysAndValues ...any) Logger {
	return a.derive(a.zl.Sugar().With(keysAndValues...).Desugar())
}

func (a *Adapter) LogAttrs(ctx context.Context, level Level, msg string, attrs ...Attr) {
	zapLevel := toZapLevel(level)
	if !a.zl.Core().Enabled(zapLevel) {
		return
	}
	withRequestID(ctx, a.zl).Log(zapLevel, msg, toZapFields(attrs)...)
}

func (a *Adapter) Level() Level {
	return fromZapLevel(a.level)
}

func (a *Adapter) Sync() error {
	return a.zl.Sync()
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func fromZapLevel(level zapcore.Level) Level {
	switch level {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.WarnLevel:
		return WarnLevel
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func toZapFields(attrs []Attr) []zap.Field {
	fields := make([]zap.Field, 0, len(attrs))
	for _, a := range attrs {
		if err, ok := a.Value.(error); ok {
			fields = append(fields, zap.NamedError(a.Key, err))
			continue
		}
		fields = append(fields, zap.Any(a.Key, a.Value))
	}
	return fields
}

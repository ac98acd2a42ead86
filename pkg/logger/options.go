package logger

import (
	"errors"

	"go.uber.org/zap/zapcore"
)

type settings struct {
	level      zapcore.Level
	maxSize    int
	maxBackups int
	maxAge     int
}

type Option func(*settings)

// MaxSize is the rotation threshold of the log file in megabytes.
func MaxSize(size int) Option {
	return func(s *settings) {
		s.maxSize = size
	}
}

func MaxBackups(backups int) Option {
	return func(s *settings) {
		s.maxBackups = backups
	}
}

// MaxAge is how many days rotated files are kept.
func MaxAge(age int) Option {
	return func(s *settings) {
		s.maxAge = age
	}
}

func SetLevel(level zapcore.Level) Option {
	return func(s *settings) {
		s.level = level
	}
}

func (s *settings) validate() error {
	switch {
	case s.maxSize <= 0:
		return errors.New("max size must be > 0")
	case s.maxBackups < 0:
		return errors.New("max backups must be >= 0")
	case s.maxAge <= 0:
		return errors.New("max age must be > 0")
	}
	return nil
}

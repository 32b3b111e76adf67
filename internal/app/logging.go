package app

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig configures the application logger.
type LoggerConfig struct {
	// Level is debug, info, warn or error.
	Level string

	// File receives JSON logs. The terminal owns stderr while the demo
	// runs, so an empty File discards logs unless Stderr is set.
	File string

	// Stderr writes human readable logs to stderr.
	Stderr bool
}

// ParseLogLevel parses a level name. An empty string is info.
func ParseLogLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger builds a logger for cfg.
func NewLogger(cfg LoggerConfig) (*zap.Logger, error) {
	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch {
	case cfg.File != "":
		zc = zap.NewProductionConfig()
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
		zc.Sampling = nil
	case cfg.Stderr:
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
	default:
		return zap.NewNop(), nil
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// isIgnorableSyncError reports errors fsync returns for terminals and pipes.
func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EBADF)
}

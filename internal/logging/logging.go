// Package logging provides categorized file-based logging for slice.
// The TUI owns stdout and stderr, so all log output goes to the file
// named in the configuration. Each subsystem logs under its own
// category name so a single log file stays greppable.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"slice/internal/config"
)

// Log categories. One per subsystem.
const (
	CategoryBoot   = "boot"   // Startup, config resolution
	CategoryAPI    = "api"    // Pizza API calls
	CategoryGeo    = "geo"    // Reverse geocoding
	CategoryRouter = "router" // Navigation and loaders
	CategoryCart   = "cart"   // Cart mutations
	CategoryUI     = "ui"     // Screen transitions, key handling
)

// Init builds the root logger from the logging configuration. The log
// file's directory is created if needed. Callers derive per-category
// loggers with Get.
func Init(cfg config.Logging) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Get returns a sugared logger for the given category. A nil base
// yields a no-op logger, so call sites never need a nil check.
func Get(base *zap.Logger, category string) *zap.SugaredLogger {
	if base == nil {
		return zap.NewNop().Sugar()
	}
	return base.Named(category).Sugar()
}

// ParseLevel maps a config level string to a zap level. Unknown
// strings fall back to info.
func ParseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

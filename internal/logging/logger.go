// Package logging builds the zap logger. The terminal belongs to the UI, so
// logs only ever go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aastha/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Component names used with zap.Logger.Named.
const (
	ComponentRouter  = "router"
	ComponentCapture = "capture"
	ComponentCamera  = "camera"
	ComponentVoice   = "voice"
	ComponentConfig  = "config"
	ComponentUI      = "ui"
)

// New builds a JSON file logger from cfg. An empty file disables logging.
// verbose forces debug level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfg.Components != nil {
		logger = logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return &componentFilter{Core: c, enabled: cfg.ComponentEnabled}
		}))
	}
	return logger, nil
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// componentFilter drops entries from disabled components. The component is
// the first segment of the logger name.
type componentFilter struct {
	zapcore.Core
	enabled func(string) bool
}

func (f *componentFilter) With(fields []zapcore.Field) zapcore.Core {
	return &componentFilter{Core: f.Core.With(fields), enabled: f.enabled}
}

func (f *componentFilter) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	component, _, _ := strings.Cut(ent.LoggerName, ".")
	if component != "" && !f.enabled(component) {
		return ce
	}
	return f.Core.Check(ent, ce)
}

package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idilsaglam/bikerental/internal/config"
)

const service = "bikerental"

// New returns the debug logger described by cfg and a cleanup function to
// run before exit. Without a log file everything is discarded; the terminal
// belongs to the dashboard.
func New(cfg config.Log) (logr.Logger, func() error, error) {
	if cfg.File == "" {
		return logr.Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logr.Discard(), func() error { return nil }, fmt.Errorf("open log file: %w", err)
	}
	logger, sync := newJSON(f, cfg.Level)
	return logger, func() error {
		_ = sync()
		return f.Close()
	}, nil
}

// newJSON builds a JSON logger writing to sink. Verbosity v maps to zap
// level -v, so V(1) lines need level >= 1.
func newJSON(sink io.Writer, level int) (logr.Logger, func() error) {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(sink)),
		zap.NewAtomicLevelAt(zapcore.Level(-level)),
	)
	zl := zap.New(core)
	return zapr.NewLogger(zl).WithName(service), zl.Sync
}

func encoderConfig() zapcore.EncoderConfig {
	conf := zap.NewProductionEncoderConfig()
	conf.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	return conf
}

// Console is a human-readable logger for foreground processes such as the
// mock API, where the terminal is free.
func Console(sink io.Writer, level int) logr.Logger {
	conf := encoderConfig()
	conf.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(conf),
		zapcore.Lock(zapcore.AddSync(sink)),
		zap.NewAtomicLevelAt(zapcore.Level(-level)),
	)
	return zapr.NewLogger(zap.New(core)).WithName(service)
}

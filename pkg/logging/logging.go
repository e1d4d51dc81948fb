// Package logging builds the diagnostics logger. The logger is returned to the
// caller and injected; nothing here is global.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// New creates a zap logger from cfg. Level defaults to info, Format "json"
// selects the JSON encoder (anything else is console) and Output is stdout,
// stderr or a file path opened for append. The returned closer syncs the
// logger and releases the file, if any.
func New(cfg types.LoggingConfig) (*zap.Logger, func() error, error) {
	var ws zapcore.WriteSyncer
	closeOutput := func() error { return nil }
	switch cfg.Output {
	case "", "stderr":
		ws = zapcore.AddSync(os.Stderr)
	case "stdout":
		ws = zapcore.AddSync(os.Stdout)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening log file: %w", err)
		}
		ws = zapcore.AddSync(file)
		closeOutput = file.Close
	}
	logger := NewWithWriter(cfg, ws)
	return logger, func() error {
		// Sync em stderr falha em alguns terminais; ignorado
		_ = logger.Sync()
		return closeOutput()
	}, nil
}

// NewWithWriter is New writing to w.
func NewWithWriter(cfg types.LoggingConfig, w io.Writer) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller())
}

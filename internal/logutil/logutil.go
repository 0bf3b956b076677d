// Package logutil builds the loggers used by the command line tool.
package logutil

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to stderr at the given level
// ("debug", "info", "warn", "error"), encoded as "console" or "json".
func New(level, format string) (*zap.Logger, error) {
	return NewWithOutput(level, format, "stderr")
}

// NewWithOutput is like New but writes to the given paths, as accepted by
// zap.Config.OutputPaths.
func NewWithOutput(level, format string, paths ...string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	var enc zapcore.EncoderConfig
	switch format {
	case "", FormatConsole:
		format = FormatConsole
		enc = zap.NewDevelopmentEncoderConfig()
	case FormatJSON:
		enc = zap.NewProductionEncoderConfig()
	default:
		return nil, errors.Errorf("invalid log format %q", format)
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         format,
		EncoderConfig:    enc,
		OutputPaths:      paths,
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	return logger, nil
}

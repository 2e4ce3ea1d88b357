// Package logger configures the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options holds logger configuration.
type Options struct {
	Level       string
	Environment string
	ServiceName string
}

var log = zap.NewNop()

// Init builds the global logger. Production uses JSON with ISO8601 timestamps,
// every other environment a colored console encoder.
func Init(opts Options) (*zap.Logger, error) {
	level := parseLevel(opts.Level)

	var cfg zap.Config
	if opts.Environment == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	l, err := cfg.Build(zap.Fields(
		zap.String("service", opts.ServiceName),
		zap.String("environment", opts.Environment),
	))
	if err != nil {
		return nil, err
	}

	log = l
	zap.ReplaceGlobals(l)
	return l, nil
}

// Get returns the global logger. It is a no-op logger until Init succeeds.
func Get() *zap.Logger {
	return log
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

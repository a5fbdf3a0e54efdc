package app

import (
	"fmt"

	"github.com/mehtaruchit28/ips-ui/backend/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger from the observability settings
func NewLogger(cfg config.ObservabilityConfig, development bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewProductionConfig()
	if development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	switch cfg.LogFormat {
	case "json":
		zcfg.Encoding = "json"
	case "console", "text":
		zcfg.Encoding = "console"
	default:
		return nil, fmt.Errorf("invalid log format %q: use json or console", cfg.LogFormat)
	}

	return zcfg.Build()
}

// Package observability provides structured logging for the simulator.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/bankroll/internal/config"
)

// NewLogger builds the process logger, named "bankroll". The json format
// writes production-style lines and the console format human-readable ones.
// Sampling is off in both, so a traced trial logs every event.
//
// Precondition: cfg has passed config.Validate.
// Postcondition: Returns a logger enabled at cfg.Level and above, or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Sampling = nil
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building %s logger: %w", cfg.Format, err)
	}
	return logger.Named("bankroll"), nil
}

// WithRun returns a child logger tagging every entry with the run id and the
// base seed, so concurrent runs sharing a sink can be told apart.
func WithRun(logger *zap.Logger, runID uuid.UUID, seed uint64) *zap.Logger {
	return logger.With(zap.Stringer("run_id", runID), zap.Uint64("seed", seed))
}

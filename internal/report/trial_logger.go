package report

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/bankroll/internal/game/engine"
)

// TrialLogger logs every trial result at debug level. It satisfies
// montecarlo.TrialSink.
type TrialLogger struct {
	logger *zap.Logger
}

// NewTrialLogger returns a TrialLogger writing to logger.
//
// Precondition: logger must be non-nil.
func NewTrialLogger(logger *zap.Logger) *TrialLogger {
	return &TrialLogger{logger: logger}
}

// Trial logs one result.
func (t *TrialLogger) Trial(index int, res engine.TrialResult) {
	if !res.Terminated {
		t.logger.Debug("trial unterminated", zap.Int("trial", index), zap.Int("rounds", res.Rounds))
		return
	}
	t.logger.Debug("trial terminated",
		zap.Int("trial", index),
		zap.Stringer("terminator", res.Terminator),
		zap.Int("rounds", res.Rounds),
	)
}

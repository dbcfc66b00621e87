package dice

import "go.uber.org/zap"

// LoggedSource wraps a Source and logs every draw at debug level with the
// requested bound and the value produced. It is used for single-trial traces.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
	draws  int
}

// NewLoggedSource creates a LoggedSource drawing from src and logging to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Intn draws from the wrapped Source and logs the result.
//
// Precondition: n > 0.
func (l *LoggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.draws++
	l.logger.Debug("random draw",
		zap.Int("seq", l.draws),
		zap.Int("bound", n),
		zap.Int("value", v),
	)
	return v
}

// Draws returns how many values have been drawn so far.
func (l *LoggedSource) Draws() int {
	return l.draws
}

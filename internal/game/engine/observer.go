package engine

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/bankroll/internal/game/board"
	"github.com/cory-johannsen/bankroll/internal/game/player"
)

// EventType classifies an Event.
type EventType int

const (
	EventMove EventType = iota
	EventToll
	EventEffect
	EventTerminated
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventMove:
		return "move"
	case EventToll:
		return "toll"
	case EventEffect:
		return "effect"
	case EventTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Event is one diagnostic record from a trial.
type Event struct {
	Type  EventType
	Round int
	Actor player.Identity
	// Cell is the cell the event concerns: the move origin, the gate, or the
	// cell whose effect was applied.
	Cell int
	// Kind is set for EventEffect.
	Kind board.CellKind
	// To is the actor's position after the event.
	To      int
	Before  int
	After   int
	Lottery int
	Detail  string
}

// Observer receives trial events. Implementations must not mutate the game.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

type silent struct{}

func (silent) Observe(Event) {}

// Silent discards every event. It is the default.
var Silent Observer = silent{}

// LogObserver writes events to a zap logger at debug level.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver returns an Observer logging to logger.
//
// Precondition: logger must be non-nil.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Observe logs e.
func (o *LogObserver) Observe(e Event) {
	fields := []zap.Field{
		zap.Int("round", e.Round),
		zap.Stringer("participant", e.Actor),
		zap.Int("cell", e.Cell),
		zap.Int("position", e.To),
		zap.Int("money_before", e.Before),
		zap.Int("money_after", e.After),
	}
	if e.Type == EventEffect {
		fields = append(fields, zap.Stringer("kind", e.Kind))
	}
	if e.Type == EventEffect || e.Type == EventToll {
		fields = append(fields, zap.Int("lottery", e.Lottery))
	}
	if e.Detail != "" {
		fields = append(fields, zap.String("detail", e.Detail))
	}
	o.logger.Debug(e.Type.String(), fields...)
}

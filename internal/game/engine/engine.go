// Package engine runs one trial of the board game: it moves participants,
// applies cell effects, and stops at the first bankruptcy or the round cap.
package engine

import (
	"github.com/cory-johannsen/bankroll/internal/game/board"
	"github.com/cory-johannsen/bankroll/internal/game/dice"
	"github.com/cory-johannsen/bankroll/internal/game/player"
)

// Fixed amounts moved by the lottery and wealth-transfer rules.
const (
	// LotteryToll is charged for passing the lottery gate.
	LotteryToll = 5000
	// LotteryStake is charged on a PayIntoLottery cell and added to the pool.
	LotteryStake = 5000
	// TransferAmount is moved per payer by the wealth-transfer cells.
	TransferAmount = 5000
	// DefaultRoundCap bounds a trial that never sees a bankruptcy.
	DefaultRoundCap = 500
)

// TrialResult is the outcome of one played trial.
type TrialResult struct {
	// Terminated is false when the round cap was reached without a bankruptcy.
	Terminated bool
	// Terminator is the first participant found with money <= 0. Valid only if Terminated.
	Terminator player.Identity
	// Rounds is the round index at termination, or the round cap.
	Rounds int
}

// Game is the state of one trial. It is not safe for concurrent use and is
// never shared between trials.
type Game struct {
	Board   *board.Board
	Players []*player.Participant
	// Lottery is the pool paid out on a MoveToLottery cell.
	Lottery int
	// Round is the current round index, starting at 0.
	Round int

	src    dice.Source
	choose board.Chooser
	obs    Observer
}

// Option configures a Game.
type Option func(*Game)

// WithObserver sends trial events to obs.
func WithObserver(obs Observer) Option {
	return func(g *Game) { g.obs = obs }
}

// WithChooser replaces the branch decision heuristic.
func WithChooser(c board.Chooser) Option {
	return func(g *Game) { g.choose = c }
}

// NewGame creates a trial over b with the given participants in turn order.
//
// Precondition: b passes Validate; every participant's position is a cell of b;
// src is non-nil and owned by the caller's goroutine.
// Postcondition: Lottery == 0, Round == 0; the branch heuristic is
// board.PreferLowerDelta and the game is silent unless options say otherwise.
func NewGame(b *board.Board, players []*player.Participant, src dice.Source, opts ...Option) *Game {
	g := &Game{
		Board:   b,
		Players: players,
		src:     src,
		choose:  board.PreferLowerDelta,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.obs == Silent {
		g.obs = nil
	}
	return g
}

// participant returns the participant with the given identity, or nil.
func (g *Game) participant(id player.Identity) *player.Participant {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// firstBankrupt scans participants in turn order.
func (g *Game) firstBankrupt() (*player.Participant, bool) {
	for _, p := range g.Players {
		if p.Bankrupt() {
			return p, true
		}
	}
	return nil, false
}

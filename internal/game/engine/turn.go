package engine

import (
	"github.com/cory-johannsen/bankroll/internal/game/board"
	"github.com/cory-johannsen/bankroll/internal/game/dice"
	"github.com/cory-johannsen/bankroll/internal/game/player"
)

// Move rolls the movement dice for p, resolves branch navigation, and charges
// the lottery toll if the move crossed the lottery gate.
//
// Postcondition: p.Position == result.To.
func (g *Game) Move(p *player.Participant) board.Step {
	roll := dice.Roll(board.MovementDice, g.src)
	step := g.Board.Navigate(p.Position, roll.Total(), g.choose)
	p.Position = step.To

	if g.obs != nil {
		g.obs.Observe(Event{
			Type:   EventMove,
			Round:  g.Round,
			Actor:  p.ID,
			Cell:   step.From,
			To:     step.To,
			Before: p.Money,
			After:  p.Money,
			Detail: moveDetail(roll, step),
		})
	}

	if g.crossesGate(step.From, step.To) {
		before := p.Money
		p.Money -= LotteryToll
		g.Lottery += LotteryToll
		if g.obs != nil {
			g.obs.Observe(Event{
				Type:    EventToll,
				Round:   g.Round,
				Actor:   p.ID,
				Cell:    g.Board.LotteryGate,
				To:      step.To,
				Before:  before,
				After:   p.Money,
				Lottery: g.Lottery,
			})
		}
	}
	return step
}

// crossesGate reports whether a move from one cell to another passes the
// lottery gate from below. Spur cells count as their hub's loop index.
func (g *Game) crossesGate(from, to int) bool {
	gate := g.Board.LotteryGate
	return g.Board.LoopCoord(from) < gate && g.Board.LoopCoord(to) >= gate
}

// Turn plays one turn for p: move, then resolve the cell landed on.
func (g *Game) Turn(p *player.Participant) {
	g.Move(p)
	g.Resolve(p)
}

// Play runs rounds until a participant is bankrupt or roundCap rounds have
// been played. After every turn all participants are scanned in turn order;
// the first with money <= 0 ends the trial.
//
// Precondition: roundCap > 0; the game has not been played yet.
// Postcondition: if result.Terminated, the terminator's money is <= 0 and
// every participant before it in turn order has money > 0.
func (g *Game) Play(roundCap int) TrialResult {
	for g.Round = 0; g.Round < roundCap; g.Round++ {
		for _, p := range g.Players {
			g.Turn(p)
			if loser, ok := g.firstBankrupt(); ok {
				res := TrialResult{Terminated: true, Terminator: loser.ID, Rounds: g.Round}
				if g.obs != nil {
					g.obs.Observe(Event{
						Type:   EventTerminated,
						Round:  g.Round,
						Actor:  loser.ID,
						Cell:   loser.Position,
						Before: loser.Money,
						After:  loser.Money,
					})
				}
				return res
			}
		}
	}
	return TrialResult{Rounds: roundCap}
}

func moveDetail(roll dice.RollResult, step board.Step) string {
	s := roll.String()
	switch {
	case step.Branched:
		s += ", branched into " + step.Spur
	case step.Exited:
		s += ", left " + step.Spur
	}
	return s
}

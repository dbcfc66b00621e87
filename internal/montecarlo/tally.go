package montecarlo

import (
	"github.com/cory-johannsen/bankroll/internal/game/engine"
	"github.com/cory-johannsen/bankroll/internal/game/player"
)

// Tally aggregates trial results.
//
// Invariant: sum(Terminations) + Unterminated == Trials.
type Tally struct {
	Trials int
	// Terminations counts, per identity, the trials that participant terminated.
	Terminations [player.Count]int
	Unterminated int
	// RoundsSum and RoundsMax cover terminated trials only.
	RoundsSum int64
	RoundsMax int
}

// Add records one trial result.
func (t *Tally) Add(res engine.TrialResult) {
	t.Trials++
	if !res.Terminated {
		t.Unterminated++
		return
	}
	t.Terminations[res.Terminator]++
	t.RoundsSum += int64(res.Rounds)
	if res.Rounds > t.RoundsMax {
		t.RoundsMax = res.Rounds
	}
}

// Merge folds o into t.
func (t *Tally) Merge(o Tally) {
	t.Trials += o.Trials
	for i, n := range o.Terminations {
		t.Terminations[i] += n
	}
	t.Unterminated += o.Unterminated
	t.RoundsSum += o.RoundsSum
	if o.RoundsMax > t.RoundsMax {
		t.RoundsMax = o.RoundsMax
	}
}

// Terminated returns the number of trials that ended in a bankruptcy.
func (t Tally) Terminated() int {
	return t.Trials - t.Unterminated
}

// MeanRounds returns the mean termination round, or 0 when nothing terminated.
func (t Tally) MeanRounds() float64 {
	n := t.Terminated()
	if n == 0 {
		return 0
	}
	return float64(t.RoundsSum) / float64(n)
}

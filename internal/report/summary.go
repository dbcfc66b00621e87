// Package report turns a tally into a run summary and renders it as text,
// JSON or YAML.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cory-johannsen/bankroll/internal/game/player"
	"github.com/cory-johannsen/bankroll/internal/montecarlo"
)

var hundred = decimal.NewFromInt(100)

// RunInfo describes how a run was executed.
type RunInfo struct {
	Config  montecarlo.Config
	Seed    uint64
	Workers int
	Started time.Time
	Elapsed time.Duration
}

// Share is one participant's termination count and percentage of all trials.
type Share struct {
	Participant  string          `json:"participant" yaml:"participant"`
	Terminations int             `json:"terminations" yaml:"terminations"`
	Percent      decimal.Decimal `json:"percent" yaml:"percent"`
}

// Summary is the rendered result of a run.
type Summary struct {
	RunID         uuid.UUID `json:"run_id" yaml:"run_id"`
	StartedAt     time.Time `json:"started_at" yaml:"started_at"`
	ElapsedMillis int64     `json:"elapsed_ms" yaml:"elapsed_ms"`

	Trials        int    `json:"trials" yaml:"trials"`
	RoundCap      int    `json:"round_cap" yaml:"round_cap"`
	StartingMoney int    `json:"starting_money" yaml:"starting_money"`
	Workers       int    `json:"workers" yaml:"workers"`
	Seed          uint64 `json:"seed" yaml:"seed"`

	Shares              []Share         `json:"shares" yaml:"shares"`
	Unterminated        int             `json:"unterminated" yaml:"unterminated"`
	UnterminatedPercent decimal.Decimal `json:"unterminated_percent" yaml:"unterminated_percent"`
	MeanRounds          decimal.Decimal `json:"mean_rounds" yaml:"mean_rounds"`
	MaxRounds           int             `json:"max_rounds" yaml:"max_rounds"`

	// Tally is the raw aggregate the summary was built from.
	Tally montecarlo.Tally `json:"-" yaml:"-"`
}

// NewSummary builds a Summary with a fresh run id.
//
// Postcondition: Shares lists every identity in turn order; percentages are
// rounded to two places and are zero when no trial ran.
func NewSummary(info RunInfo, tally montecarlo.Tally) Summary {
	s := Summary{
		RunID:         uuid.New(),
		StartedAt:     info.Started,
		ElapsedMillis: info.Elapsed.Milliseconds(),
		Trials:        tally.Trials,
		RoundCap:      info.Config.RoundCap,
		StartingMoney: info.Config.StartingMoney,
		Workers:       info.Workers,
		Seed:          info.Seed,
		Shares:        make([]Share, 0, player.Count),
		Unterminated:  tally.Unterminated,
		MaxRounds:     tally.RoundsMax,
		Tally:         tally,
	}
	for _, id := range player.Identities {
		n := tally.Terminations[id]
		s.Shares = append(s.Shares, Share{
			Participant:  id.String(),
			Terminations: n,
			Percent:      percent(n, tally.Trials),
		})
	}
	s.UnterminatedPercent = percent(tally.Unterminated, tally.Trials)
	if n := tally.Terminated(); n > 0 {
		s.MeanRounds = decimal.NewFromInt(tally.RoundsSum).DivRound(decimal.NewFromInt(int64(n)), 2)
	}
	return s
}

// Elapsed returns the run duration.
func (s Summary) Elapsed() time.Duration {
	return time.Duration(s.ElapsedMillis) * time.Millisecond
}

func percent(n, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(n)).Mul(hundred).DivRound(decimal.NewFromInt(int64(total)), 2)
}

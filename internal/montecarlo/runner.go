// Package montecarlo runs many independent trials in parallel and aggregates
// how often each participant is the one to go bankrupt.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/bankroll/internal/game/board"
	"github.com/cory-johannsen/bankroll/internal/game/dice"
	"github.com/cory-johannsen/bankroll/internal/game/engine"
	"github.com/cory-johannsen/bankroll/internal/game/player"
)

// ErrInvalidConfig is wrapped by configuration errors returned from New.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config parameterizes a run.
type Config struct {
	Trials        int
	RoundCap      int
	StartingMoney int
	// Workers is the number of goroutines; 0 means GOMAXPROCS.
	Workers int
	// Seed is the base seed; 0 draws a random one.
	Seed      uint64
	Positions map[player.Identity]int
}

// TrialSink receives every trial result as it completes. It is called from
// worker goroutines concurrently and must be safe for concurrent use.
type TrialSink interface {
	Trial(index int, res engine.TrialResult)
}

// TrialSinkFunc adapts a function to TrialSink.
type TrialSinkFunc func(index int, res engine.TrialResult)

// Trial calls f(index, res).
func (f TrialSinkFunc) Trial(index int, res engine.TrialResult) { f(index, res) }

// Option configures a Runner.
type Option func(*Runner)

// WithTrialSink sends per-trial results to sink.
func WithTrialSink(sink TrialSink) Option {
	return func(r *Runner) { r.sink = sink }
}

// WithBoard replaces the board factory. The factory is called once per trial
// and must return a fresh board each time.
func WithBoard(newBoard func() *board.Board) Option {
	return func(r *Runner) { r.newBoard = newBoard }
}

// WithChooser replaces the branch heuristic used by every trial.
func WithChooser(c board.Chooser) Option {
	return func(r *Runner) { r.choose = c }
}

// Runner executes a configured batch of trials.
type Runner struct {
	cfg      Config
	seed     uint64
	logger   *zap.Logger
	newBoard func() *board.Board
	choose   board.Chooser
	sink     TrialSink
}

// New validates cfg and the board, and returns a Runner ready to Run.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Runner, or an error wrapping ErrInvalidConfig or
// board.ErrInvalidLayout. No trial is started when an error is returned.
func New(cfg Config, logger *zap.Logger, opts ...Option) (*Runner, error) {
	r := &Runner{
		cfg:      cfg,
		logger:   logger,
		newBoard: board.Standard,
		choose:   board.PreferLowerDelta,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cfg.Workers <= 0 {
		r.cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if r.cfg.Positions == nil {
		r.cfg.Positions = player.DefaultPositions
	}

	var errs []string
	if r.cfg.Trials < 0 {
		errs = append(errs, fmt.Sprintf("trials must be >= 0, got %d", r.cfg.Trials))
	}
	if r.cfg.RoundCap <= 0 {
		errs = append(errs, fmt.Sprintf("round cap must be > 0, got %d", r.cfg.RoundCap))
	}
	if r.cfg.StartingMoney <= 0 {
		errs = append(errs, fmt.Sprintf("starting money must be > 0, got %d", r.cfg.StartingMoney))
	}
	if err := player.ValidatePositions(r.cfg.Positions); err != nil {
		errs = append(errs, err.Error())
	}

	b := r.newBoard()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	for _, id := range player.Identities {
		if pos, ok := r.cfg.Positions[id]; ok && pos >= b.Len() {
			errs = append(errs, fmt.Sprintf("starting position %d for %s outside board of %d cells", pos, id, b.Len()))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}

	r.seed = r.cfg.Seed
	if r.seed == 0 {
		r.seed = dice.RandomSeed()
	}
	return r, nil
}

// Seed returns the base seed in effect, which reproduces the run when
// combined with the same worker count.
func (r *Runner) Seed() uint64 { return r.seed }

// Workers returns the number of worker goroutines Run will use at most.
func (r *Runner) Workers() int { return r.cfg.Workers }

// Run plays every trial and returns the merged tally.
//
// Trials are partitioned by stride: worker w plays trials w, w+W, w+2W, ...
// from its own random stream, so a fixed seed and worker count reproduce the
// same tally.
//
// Postcondition: on success the tally covers exactly cfg.Trials trials; when
// ctx is cancelled Run returns ctx's error and a zero Tally.
func (r *Runner) Run(ctx context.Context) (Tally, error) {
	workers := min(r.cfg.Workers, r.cfg.Trials)
	if workers == 0 {
		return Tally{}, ctx.Err()
	}

	start := time.Now()
	r.logger.Info("simulation starting",
		zap.Int("trials", r.cfg.Trials),
		zap.Int("workers", workers),
		zap.Uint64("seed", r.seed),
	)

	tallies := make([]Tally, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			return r.work(gctx, w, workers, &tallies[w])
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, err
	}

	var total Tally
	for _, t := range tallies {
		total.Merge(t)
	}
	r.logger.Info("simulation complete",
		zap.Int("trials", total.Trials),
		zap.Int("unterminated", total.Unterminated),
		zap.Duration("elapsed", time.Since(start)),
	)
	return total, nil
}

func (r *Runner) work(ctx context.Context, w, stride int, t *Tally) error {
	src := dice.NewSeededSource(dice.SplitMix(r.seed + uint64(w)))
	roster, err := player.NewRoster(r.cfg.StartingMoney, r.cfg.Positions)
	if err != nil {
		return err
	}

	for i := w; i < r.cfg.Trials; i += stride {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, p := range roster {
			p.Reset(r.cfg.StartingMoney, r.cfg.Positions[p.ID])
		}
		game := engine.NewGame(r.newBoard(), roster, src, engine.WithChooser(r.choose))
		res := game.Play(r.cfg.RoundCap)
		t.Add(res)
		if r.sink != nil {
			r.sink.Trial(i, res)
		}
	}
	r.logger.Debug("worker finished", zap.Int("worker", w), zap.Int("trials", t.Trials))
	return nil
}

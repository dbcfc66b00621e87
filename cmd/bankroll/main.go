// Package main runs the board game Monte Carlo simulation and reports how
// often each participant is the first to go bankrupt.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/cory-johannsen/bankroll/internal/config"
	"github.com/cory-johannsen/bankroll/internal/game/board"
	"github.com/cory-johannsen/bankroll/internal/game/dice"
	"github.com/cory-johannsen/bankroll/internal/game/engine"
	"github.com/cory-johannsen/bankroll/internal/game/player"
	"github.com/cory-johannsen/bankroll/internal/montecarlo"
	"github.com/cory-johannsen/bankroll/internal/observability"
	"github.com/cory-johannsen/bankroll/internal/report"
	"github.com/cory-johannsen/bankroll/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	trials := flag.Int("trials", 0, "number of trials (overrides simulation.trials)")
	workers := flag.Int("workers", 0, "worker goroutines, 0 = GOMAXPROCS (overrides simulation.workers)")
	seed := flag.Uint64("seed", 0, "base seed, 0 = random (overrides simulation.seed)")
	format := flag.String("format", "", "report format: text, json or yaml (overrides report.format)")
	output := flag.String("output", "", "report file, - for stdout (overrides report.output)")
	trace := flag.Bool("trace", false, "play a single traced trial (overrides simulation.trace)")
	recent := flag.Int("recent", 0, "print the N most recent stored runs and exit")
	flag.Parse()

	v := config.NewViper()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("reading config file: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trials":
			v.Set("simulation.trials", *trials)
		case "workers":
			v.Set("simulation.workers", *workers)
		case "seed":
			v.Set("simulation.seed", *seed)
		case "format":
			v.Set("report.format", *format)
		case "output":
			v.Set("report.output", *output)
		case "trace":
			v.Set("simulation.trace", *trace)
		}
	})

	cfg, err := config.LoadFromViper(v)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if cfg.Simulation.Trace {
		cfg.Logging.Level = "debug"
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting bankroll",
		zap.Int("trials", cfg.Simulation.Trials),
		zap.Int("round_cap", cfg.Simulation.RoundCap),
		zap.Bool("trace", cfg.Simulation.Trace),
		zap.Bool("history", cfg.History.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *recent > 0 {
		if err := printRecent(ctx, cfg, *recent); err != nil {
			logger.Fatal("listing stored runs", zap.Error(err))
		}
		return
	}

	var summary report.Summary
	if cfg.Simulation.Trace {
		summary, err = traceTrial(cfg, logger)
	} else {
		summary, err = simulate(ctx, cfg, logger)
	}
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	logger = observability.WithRun(logger, summary.RunID, summary.Seed)
	logger.Info("simulation finished",
		zap.Int("trials", summary.Trials),
		zap.Duration("elapsed", summary.Elapsed()),
	)

	if err := writeReport(cfg.Report, summary); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	if cfg.History.Enabled {
		if err := saveRun(ctx, cfg.Database, summary); err != nil {
			logger.Fatal("saving run history", zap.Error(err))
		}
		logger.Info("run saved")
	}
}

func runnerConfig(cfg config.Config) montecarlo.Config {
	return montecarlo.Config{
		Trials:        cfg.Simulation.Trials,
		RoundCap:      cfg.Simulation.RoundCap,
		StartingMoney: cfg.Simulation.StartingMoney,
		Workers:       cfg.Simulation.Workers,
		Seed:          cfg.Simulation.Seed,
		Positions:     cfg.Participants.Positions(),
	}
}

func simulate(ctx context.Context, cfg config.Config, logger *zap.Logger) (report.Summary, error) {
	var opts []montecarlo.Option
	if logger.Core().Enabled(zap.DebugLevel) {
		opts = append(opts, montecarlo.WithTrialSink(report.NewTrialLogger(logger.Named("trial"))))
	}

	rcfg := runnerConfig(cfg)
	runner, err := montecarlo.New(rcfg, logger, opts...)
	if err != nil {
		return report.Summary{}, err
	}

	start := time.Now()
	tally, err := runner.Run(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	return report.NewSummary(report.RunInfo{
		Config:  rcfg,
		Seed:    runner.Seed(),
		Workers: min(runner.Workers(), rcfg.Trials),
		Started: start,
		Elapsed: time.Since(start),
	}, tally), nil
}

// traceTrial plays one trial with every random draw and game event logged.
func traceTrial(cfg config.Config, logger *zap.Logger) (report.Summary, error) {
	rcfg := runnerConfig(cfg)
	rcfg.Trials = 1
	rcfg.Workers = 1

	b := board.Standard()
	if err := b.Validate(); err != nil {
		return report.Summary{}, err
	}
	roster, err := player.NewRoster(rcfg.StartingMoney, rcfg.Positions)
	if err != nil {
		return report.Summary{}, fmt.Errorf("building roster: %w", err)
	}
	for _, p := range roster {
		if p.Position >= b.Len() {
			return report.Summary{}, fmt.Errorf("%w: starting position %d for %s outside board of %d cells",
				montecarlo.ErrInvalidConfig, p.Position, p.ID, b.Len())
		}
	}

	seed := rcfg.Seed
	if seed == 0 {
		seed = dice.RandomSeed()
	}
	logger = logger.With(zap.Uint64("seed", seed))
	src := dice.NewLoggedSource(dice.NewSeededSource(seed), logger.Named("dice"))
	game := engine.NewGame(b, roster, src, engine.WithObserver(engine.NewLogObserver(logger.Named("engine"))))

	start := time.Now()
	res := game.Play(rcfg.RoundCap)
	logger.Info("trace complete",
		zap.Bool("terminated", res.Terminated),
		zap.Stringer("terminator", res.Terminator),
		zap.Int("rounds", res.Rounds),
		zap.Int("draws", src.Draws()),
	)

	var tally montecarlo.Tally
	tally.Add(res)
	return report.NewSummary(report.RunInfo{
		Config:  rcfg,
		Seed:    seed,
		Workers: 1,
		Started: start,
		Elapsed: time.Since(start),
	}, tally), nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating report file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func writeReport(rc config.ReportConfig, s report.Summary) error {
	w, err := report.NewWriter(rc.Format)
	if err != nil {
		return err
	}
	out, err := openOutput(rc.Output)
	if err != nil {
		return err
	}
	if err := w.Write(out, s); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func saveRun(ctx context.Context, dbCfg config.DatabaseConfig, s report.Summary) error {
	h, err := postgres.OpenHistory(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer h.Close()
	return h.Runs.Save(ctx, s)
}

func printRecent(ctx context.Context, cfg config.Config, n int) error {
	h, err := postgres.OpenHistory(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer h.Close()

	runs, err := h.Runs.Recent(ctx, n)
	if err != nil {
		return err
	}
	w, err := report.NewWriter(cfg.Report.Format)
	if err != nil {
		return err
	}
	for _, s := range runs {
		if err := w.Write(os.Stdout, s); err != nil {
			return err
		}
	}
	return nil
}

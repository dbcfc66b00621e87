package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/bankroll/internal/game/player"
	"github.com/cory-johannsen/bankroll/internal/montecarlo"
	"github.com/cory-johannsen/bankroll/internal/report"
)

// ErrRunNotFound is returned when a run lookup yields no results.
var ErrRunNotFound = errors.New("simulation run not found")

// ErrRunExists is returned when saving a run id that is already stored.
var ErrRunExists = errors.New("simulation run already exists")

// RunRepository stores run summaries. Only aggregate tallies are kept; no
// per-trial or game state is persisted.
type RunRepository struct {
	db *pgxpool.Pool
}

// NewRunRepository creates a RunRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewRunRepository(db *pgxpool.Pool) *RunRepository {
	return &RunRepository{db: db}
}

// Save inserts the run and its per-participant tallies in one transaction.
//
// Precondition: s.RunID must be set.
// Postcondition: Returns nil, ErrRunExists for a duplicate id, or a wrapped error.
func (r *RunRepository) Save(ctx context.Context, s report.Summary) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO simulation_runs
			(id, started_at, elapsed_ms, trials, round_cap, starting_money, workers,
			 seed, unterminated, rounds_sum, rounds_max)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.RunID, s.StartedAt, s.ElapsedMillis, s.Trials, s.RoundCap, s.StartingMoney, s.Workers,
		int64(s.Seed), s.Unterminated, s.Tally.RoundsSum, s.Tally.RoundsMax,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrRunExists
		}
		return fmt.Errorf("inserting run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, id := range player.Identities {
		batch.Queue(
			`INSERT INTO simulation_tallies (run_id, participant, terminations) VALUES ($1, $2, $3)`,
			s.RunID, id.String(), s.Tally.Terminations[id],
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting tallies: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

const runColumns = `
	r.id, r.started_at, r.elapsed_ms, r.trials, r.round_cap, r.starting_money, r.workers,
	r.seed, r.unterminated, r.rounds_sum, r.rounds_max, t.participant, t.terminations`

// Get retrieves one run by id.
//
// Postcondition: Returns the Summary or ErrRunNotFound.
func (r *RunRepository) Get(ctx context.Context, id uuid.UUID) (report.Summary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+runColumns+`
		FROM simulation_runs r
		LEFT JOIN simulation_tallies t ON t.run_id = r.id
		WHERE r.id = $1`,
		id,
	)
	if err != nil {
		return report.Summary{}, fmt.Errorf("querying run: %w", err)
	}
	runs, err := collectRuns(rows)
	if err != nil {
		return report.Summary{}, err
	}
	if len(runs) == 0 {
		return report.Summary{}, ErrRunNotFound
	}
	return runs[0], nil
}

// Recent returns up to limit runs, newest first.
//
// Precondition: limit must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *RunRepository) Recent(ctx context.Context, limit int) ([]report.Summary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+runColumns+`
		FROM (SELECT * FROM simulation_runs ORDER BY started_at DESC, id LIMIT $1) r
		LEFT JOIN simulation_tallies t ON t.run_id = r.id
		ORDER BY r.started_at DESC, r.id`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return collectRuns(rows)
}

// collectRuns folds joined run/tally rows into summaries, keeping row order.
func collectRuns(rows pgx.Rows) ([]report.Summary, error) {
	defer rows.Close()

	type stored struct {
		id      uuid.UUID
		info    report.RunInfo
		tally   montecarlo.Tally
		elapsed int64
	}
	var order []*stored
	byID := make(map[uuid.UUID]*stored)

	for rows.Next() {
		var (
			s           stored
			seed        int64
			trials      int64
			unterm      int64
			participant *string
			terms       *int64
		)
		if err := rows.Scan(
			&s.id, &s.info.Started, &s.elapsed, &trials, &s.info.Config.RoundCap,
			&s.info.Config.StartingMoney, &s.info.Workers, &seed, &unterm,
			&s.tally.RoundsSum, &s.tally.RoundsMax, &participant, &terms,
		); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}

		cur, ok := byID[s.id]
		if !ok {
			s.info.Seed = uint64(seed)
			s.info.Elapsed = time.Duration(s.elapsed) * time.Millisecond
			s.info.Config.Trials = int(trials)
			s.tally.Trials = int(trials)
			s.tally.Unterminated = int(unterm)
			cur = &s
			byID[s.id] = cur
			order = append(order, cur)
		}
		if participant == nil || terms == nil {
			continue
		}
		id, err := player.ParseIdentity(*participant)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", cur.id, err)
		}
		cur.tally.Terminations[id] = int(*terms)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading run rows: %w", err)
	}

	out := make([]report.Summary, 0, len(order))
	for _, s := range order {
		sum := report.NewSummary(s.info, s.tally)
		sum.RunID = s.id
		out = append(out, sum)
	}
	return out, nil
}

func isDuplicateKeyError(err error) bool {
	// SQLSTATE 23505 is unique_violation.
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}

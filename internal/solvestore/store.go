// Package solvestore persists finished solve runs to Postgres so puzzle
// results and throughput history can be queried later. The solver itself
// never touches this; callers save what GenerateAll returns.
package solvestore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/solver"
)

// ErrRunNotFound is returned when a run id has no row.
var ErrRunNotFound = errors.New("run not found")

// Run is one persisted solve run.
type Run struct {
	ID        uuid.UUID      `json:"id"`
	Letters   string         `json:"letters"`
	Required  string         `json:"required"`
	MinLength int            `json:"min_length"`
	MaxLength int            `json:"max_length"`
	Status    string         `json:"status"`
	Evaluated int64          `json:"evaluated"`
	Elapsed   time.Duration  `json:"elapsed"`
	Matches   []solver.Match `json:"matches"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store wraps a pgx pool.
type Store struct {
	dbPool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{dbPool: pool}
}

func toPGTimestamp(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Valid: true, Time: t}
}

// SaveRun inserts a run, assigning Run.ID and Run.CreatedAt.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	run.ID = uuid.New()
	run.CreatedAt = time.Now()
	matches, err := json.Marshal(run.Matches)
	if err != nil {
		return err
	}
	_, err = s.dbPool.Exec(ctx, `
		INSERT INTO solve_runs
			(id, letters, required_letter, min_length, max_length,
			 status, evaluated, elapsed_ms, matches, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		run.ID, run.Letters, run.Required, run.MinLength, run.MaxLength,
		run.Status, run.Evaluated, run.Elapsed.Milliseconds(), matches,
		toPGTimestamp(run.CreatedAt))
	if err != nil {
		return err
	}
	log.Debug().Str("id", run.ID.String()).Int("matches", len(run.Matches)).Msg("saved run")
	return nil
}

// GetRun loads one run by id.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.dbPool.QueryRow(ctx, `
		SELECT id, letters, required_letter, min_length, max_length,
		       status, evaluated, elapsed_ms, matches, created_at
		FROM solve_runs WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return run, err
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := s.dbPool.Query(ctx, `
		SELECT id, letters, required_letter, min_length, max_length,
		       status, evaluated, elapsed_ms, matches, created_at
		FROM solve_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(row pgx.Row) (*Run, error) {
	var (
		run       Run
		elapsedMs int64
		matches   []byte
		created   pgtype.Timestamptz
	)
	err := row.Scan(&run.ID, &run.Letters, &run.Required, &run.MinLength,
		&run.MaxLength, &run.Status, &run.Evaluated, &elapsedMs, &matches,
		&created)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(matches, &run.Matches); err != nil {
		return nil, err
	}
	run.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	run.CreatedAt = created.Time
	return &run, nil
}

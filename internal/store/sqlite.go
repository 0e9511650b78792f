// Package store persists completed GA results to SQLite, the persistence
// collaborator named in spec.md §1. pkg/genetic never imports this package;
// it is wired in only by internal/httpapi and cmd/server.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"
)

// RunRecord is one completed GA run, ready for persistence.
type RunRecord struct {
	ID          string
	Rule        string
	Lattice     string
	GridSize    int
	SeedWindow  int
	Iterations  int
	BestFitness float64
	BestGenome  string // JSON-encoded []Coord, opaque to this package
	CreatedAt   time.Time
}

// Store wraps a SQLite connection used to record GA runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a SQLite database at path and runs
// its migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			rule TEXT NOT NULL,
			lattice TEXT NOT NULL,
			grid_size INTEGER NOT NULL,
			seed_window INTEGER NOT NULL,
			iterations INTEGER NOT NULL,
			best_fitness REAL NOT NULL,
			best_genome TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_best_fitness ON runs(best_fitness DESC)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("store: migration failed: %w", err)
		}
	}
	return nil
}

// SaveRun inserts run, generating an ID if one was not already set.
// Writes are retried with exponential backoff on SQLITE_BUSY, since the GA
// driver and the HTTP API may both be writing concurrently.
func (s *Store) SaveRun(ctx context.Context, run RunRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	b := retry.NewExponential(20 * time.Millisecond)
	b = retry.WithMaxRetries(5, b)

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `INSERT INTO runs (
			id, rule, lattice, grid_size, seed_window, iterations,
			best_fitness, best_genome, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.Rule, run.Lattice, run.GridSize, run.SeedWindow,
			run.Iterations, run.BestFitness, run.BestGenome, run.CreatedAt,
		)
		if err != nil && isBusy(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("store: save run: %w", err)
	}
	return run.ID, nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (RunRecord, error) {
	var run RunRecord
	err := s.db.QueryRowContext(ctx, `SELECT id, rule, lattice, grid_size, seed_window,
		iterations, best_fitness, best_genome, created_at FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Rule, &run.Lattice, &run.GridSize, &run.SeedWindow,
			&run.Iterations, &run.BestFitness, &run.BestGenome, &run.CreatedAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("store: get run %s: %w", id, err)
	}
	return run, nil
}

// TopRuns returns the n runs with the highest best_fitness.
func (s *Store) TopRuns(ctx context.Context, n int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, rule, lattice, grid_size, seed_window,
		iterations, best_fitness, best_genome, created_at FROM runs
		ORDER BY best_fitness DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("store: top runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		if err := rows.Scan(&run.ID, &run.Rule, &run.Lattice, &run.GridSize, &run.SeedWindow,
			&run.Iterations, &run.BestFitness, &run.BestGenome, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func isBusy(err error) bool {
	return err != nil && strings.Contains(err.Error(), "SQLITE_BUSY")
}

// Package history records validation runs in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/HenryVilani/directory-lint/api"
)

// ErrRunNotFound is returned for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	root        TEXT NOT NULL,
	schema      TEXT NOT NULL,
	valid       INTEGER NOT NULL,
	errors      INTEGER NOT NULL,
	warnings    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE TABLE IF NOT EXISTS problems (
	run_id  TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq     INTEGER NOT NULL,
	kind    TEXT NOT NULL,
	path    TEXT NOT NULL,
	message TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Run summarizes one validation.
type Run struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Root      string        `json:"root"`
	Schema    string        `json:"schema"`
	Valid     bool          `json:"valid"`
	Errors    int           `json:"errors"`
	Warnings  int           `json:"warnings"`
}

// Store is a run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;" + schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores res and returns the new run ID.
func (s *Store) Record(ctx context.Context, schemaName string, started time.Time, res *api.ValidateResult) (string, error) {
	id := uuid.NewString()
	duration := time.Since(started)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, duration_ms, root, schema, valid, errors, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, started.UnixMilli(), duration.Milliseconds(), res.Root, schemaName,
		boolInt(res.Valid), len(res.Errors), len(res.Warnings))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO problems (run_id, seq, kind, path, message) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()
	for i, p := range res.Errors {
		if _, err := stmt.ExecContext(ctx, id, i, string(p.Kind), p.Path, p.Message); err != nil {
			return "", fmt.Errorf("insert problem: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// List returns the most recent runs first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, root, schema, valid, errors, warnings
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns one run and its problems.
func (s *Store) Get(ctx context.Context, id string) (Run, []api.Problem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, duration_ms, root, schema, valid, errors, warnings FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, path, message FROM problems WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return Run{}, nil, err
	}
	defer rows.Close()
	problems := []api.Problem{}
	for rows.Next() {
		var p api.Problem
		var kind string
		if err := rows.Scan(&kind, &p.Path, &p.Message); err != nil {
			return Run{}, nil, err
		}
		p.Kind = api.ProblemKind(kind)
		problems = append(problems, p)
	}
	return run, problems, rows.Err()
}

// Prune deletes all but the newest keep runs.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r              Run
		started, durMS int64
		valid          int
	)
	if err := sc.Scan(&r.ID, &started, &durMS, &r.Root, &r.Schema, &valid, &r.Errors, &r.Warnings); err != nil {
		return Run{}, err
	}
	r.StartedAt = time.UnixMilli(started)
	r.Duration = time.Duration(durMS) * time.Millisecond
	r.Valid = valid != 0
	return r, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

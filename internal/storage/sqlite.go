package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/HenryVilani/directory-lint/api"
)

const (
	kindFile = 0
	kindDir  = 1
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	path    TEXT PRIMARY KEY,
	parent  TEXT NOT NULL,
	name    TEXT NOT NULL,
	kind    INTEGER NOT NULL,
	content BLOB,
	mtime   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_parent ON entries(parent, name);
INSERT OR IGNORE INTO entries (path, parent, name, kind, mtime) VALUES ('/', '', '/', 1, 0);
`

// SQLite stores a whole tree in one database file. Paths are absolute and
// slash-separated inside the database; relative paths are taken from "/".
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) a tree database at dbPath.
func OpenSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// A single connection keeps ":memory:" databases coherent across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite %s: %w", dbPath, err)
	}
	return &SQLite{db: db, path: dbPath}, nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) ListEntries(ctx context.Context, path string) ([]api.DirEntry, error) {
	p := cleanPath(path)
	kind, err := s.kindOf(ctx, p)
	if err != nil {
		return nil, err
	}
	if kind != kindDir {
		return nil, fmt.Errorf("readdir %s: not a directory", p)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name, kind FROM entries WHERE parent = ? ORDER BY name", p)
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %w", p, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []api.DirEntry
	for rows.Next() {
		var name string
		var k int
		if err := rows.Scan(&name, &k); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		typ := api.FileType
		if k == kindDir {
			typ = api.DirectoryType
		}
		entries = append(entries, api.DirEntry{Name: name, Type: typ})
	}
	return entries, rows.Err()
}

func (s *SQLite) ReadContent(ctx context.Context, path string) ([]byte, error) {
	p := cleanPath(path)
	var kind int
	var content []byte
	err := s.db.QueryRowContext(ctx, "SELECT kind, content FROM entries WHERE path = ?", p).Scan(&kind, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read %s: %w", p, api.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	if kind == kindDir {
		return nil, fmt.Errorf("read %s: is a directory", p)
	}
	if content == nil {
		content = []byte{}
	}
	return content, nil
}

func (s *SQLite) WriteContent(ctx context.Context, path string, content []byte) error {
	p := cleanPath(path)
	parent := filepath.ToSlash(filepath.Dir(p))
	if kind, err := s.kindOf(ctx, parent); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	} else if kind != kindDir {
		return fmt.Errorf("write %s: parent is not a directory", p)
	}

	kind, err := s.kindOf(ctx, p)
	switch {
	case err == nil && kind == kindDir:
		return fmt.Errorf("write %s: is a directory", p)
	case err != nil && !errors.Is(err, api.ErrNotFound):
		return err
	}

	if content == nil {
		content = []byte{}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (path, parent, name, kind, content, mtime) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET content = excluded.content, mtime = excluded.mtime`,
		p, parent, filepath.Base(p), kindFile, content, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

func (s *SQLite) CreateDirectory(ctx context.Context, path string, recursive bool) error {
	p := cleanPath(path)
	kind, err := s.kindOf(ctx, p)
	if err == nil {
		if kind != kindDir {
			return fmt.Errorf("mkdir %s: file exists", p)
		}
		return nil
	}
	if !errors.Is(err, api.ErrNotFound) {
		return err
	}

	parent := filepath.ToSlash(filepath.Dir(p))
	if _, err := s.kindOf(ctx, parent); err != nil {
		if !recursive || !errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("mkdir %s: %w", p, err)
		}
		if err := s.CreateDirectory(ctx, parent, true); err != nil {
			return err
		}
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO entries (path, parent, name, kind, mtime) VALUES (?, ?, ?, ?, ?)",
		p, parent, filepath.Base(p), kindDir, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", p, err)
	}
	return nil
}

func (s *SQLite) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.kindOf(ctx, cleanPath(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, api.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *SQLite) kindOf(ctx context.Context, p string) (int, error) {
	var kind int
	err := s.db.QueryRowContext(ctx, "SELECT kind FROM entries WHERE path = ?", p).Scan(&kind)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", p, api.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup %s: %w", p, err)
	}
	return kind, nil
}

// cleanPath normalizes a path to a clean absolute slash path.
func cleanPath(path string) string {
	return filepath.ToSlash(filepath.Clean("/" + path))
}

var _ api.Backend = (*SQLite)(nil)

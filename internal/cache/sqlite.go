package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"newswire/internal/story"
)

// SQLite keeps entries in a key/value table of a local database file.
type SQLite struct {
	base
	db *sql.DB
}

func OpenSQLite(dbPath string, opts ...Option) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLite{base: newBase(opts), db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Read(ctx context.Context) ([]story.Story, bool) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM cache_entries WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		s.logf("cache: sqlite read %q failed: %v", s.key, err)
		return nil, false
	}
	return s.serve([]byte(value))
}

func (s *SQLite) Write(ctx context.Context, stories []story.Story) error {
	data, err := s.encode(stories)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, s.key, string(data), s.now().UTC())
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", s.key, err)
	}
	return nil
}

// Package storage handles payload persistence.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store is a single-slot payload store. Exactly one of the durable and
// ephemeral stores holds a copy at a time; writing to one clears the other.
type Store interface {
	// Read returns the stored payload body, or ok=false when nothing is stored.
	Read(ctx context.Context) (body string, ok bool, err error)
	// Write replaces the stored payload body.
	Write(ctx context.Context, body string) error
	// Clear removes the stored payload, if any.
	Clear(ctx context.Context) error
}

// SQLiteStore persists the payload durably in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the SQLite database and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS payload (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			body TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context) (string, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM payload WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return body, true, nil
}

// Write implements Store. The payload occupies a single row that is replaced
// wholesale on every save.
func (s *SQLiteStore) Write(ctx context.Context, body string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payload (id, body, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		body, time.Now().Format(time.RFC3339Nano))
	return err
}

// Clear implements Store.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM payload WHERE id = 1`)
	return err
}

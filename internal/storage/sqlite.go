// Package storage provides the SQLite persistence layer for fieldnote.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldnote/fieldnote/internal/common"

	"github.com/mattn/go-sqlite3"
)

// Store implements persistence over a single SQLite database. A single
// connection is used; callers share one Store handle and the database path
// is fixed at construction, never ambient state.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates a new Store at the given path, creating the parent
// directory if needed and applying migrations.
func Open(dbPath string) (*Store, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and the single
	// connection also enforces the one-operation-at-a-time discipline.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the resolved database path.
func (s *Store) Path() string {
	return s.dbPath
}

// wrapInsertErr maps primary-key violations to common.ErrDuplicateEntry so
// callers can distinguish an ID collision from other storage failures.
func wrapInsertErr(err error, table, id string) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %s %s", common.ErrDuplicateEntry, table, id)
	}
	return fmt.Errorf("failed to insert into %s: %w", table, err)
}

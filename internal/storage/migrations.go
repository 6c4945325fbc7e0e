package storage

import "fmt"

// migrations are applied in order on every Open. Each statement is
// idempotent, so re-running against an existing database is a no-op.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		client TEXT,
		amount REAL,
		status TEXT,
		description TEXT,
		client_phone TEXT,
		client_company TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		description TEXT,
		status TEXT,
		created_at TEXT,
		due_date TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		name TEXT,
		phone TEXT,
		company TEXT,
		created_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		merchant TEXT,
		amount REAL,
		category TEXT,
		date TEXT,
		image_path TEXT,
		status TEXT
	)`,
}

func (s *Store) migrate() error {
	for i, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}

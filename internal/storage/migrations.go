package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// migrations are applied in order; each entry runs at most once.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS custom_rules (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pattern TEXT NOT NULL,
		folder TEXT NOT NULL,
		priority INTEGER NOT NULL DEFAULT -1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		total_files INTEGER NOT NULL,
		folders_created INTEGER NOT NULL,
		files_moved INTEGER NOT NULL,
		errors INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS run_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		file_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		folder TEXT NOT NULL,
		confidence TEXT NOT NULL,
		source TEXT NOT NULL,
		reasoning TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_results_run_id ON run_results(run_id)`,
}

// Migrate creates or upgrades the schema.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	slog.Debug("database migrated", "migrations", len(migrations))
	return nil
}

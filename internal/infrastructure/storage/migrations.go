package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up:      migration001InitialSchema,
	},
	{
		Version: 2,
		Name:    "add_pair_key_indexes",
		Up:      migration002AddPairKeyIndexes,
	},
}

// runMigrations executes all pending migrations
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		log.Printf("Running migration %d: %s", migration.Version, migration.Name)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec(`
			INSERT INTO schema_migrations (version, name) VALUES (?, ?)
		`, migration.Version, migration.Name)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// Amounts are stored as decimal strings: SQLite floats would reopen
// the rounding problems decimal exists to avoid. Dates are ISO-8601
// strings, empty for unknown.
func migration001InitialSchema(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS bank_transactions (
			id TEXT PRIMARY KEY,
			source_file TEXT NOT NULL,
			bank_code TEXT NOT NULL DEFAULT '',
			bank_name TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			amount TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			payment_type TEXT NOT NULL DEFAULT '',
			reconciled INTEGER NOT NULL DEFAULT 0,
			disabled INTEGER NOT NULL DEFAULT 0,
			pair_key TEXT NOT NULL DEFAULT '',
			invoice_numbers TEXT NOT NULL DEFAULT '[]',
			cp_name TEXT NOT NULL DEFAULT '',
			cp_document TEXT NOT NULL DEFAULT '',
			cp_type TEXT NOT NULL DEFAULT '',
			cp_date TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS ledger_entries (
			id TEXT PRIMARY KEY,
			source_file TEXT NOT NULL,
			direction TEXT NOT NULL DEFAULT '',
			client TEXT NOT NULL DEFAULT '',
			document TEXT NOT NULL DEFAULT '',
			amount TEXT NOT NULL,
			date TEXT NOT NULL DEFAULT '',
			invoice_number TEXT NOT NULL DEFAULT '',
			salesperson TEXT NOT NULL DEFAULT '',
			raw_type TEXT NOT NULL DEFAULT '',
			reconciled INTEGER NOT NULL DEFAULT 0,
			disabled INTEGER NOT NULL DEFAULT 0,
			pair_key TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS imported_files (
			name TEXT NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('statement', 'report')),
			position INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (name, kind)
		);
	`)
	return err
}

func migration002AddPairKeyIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bank_pair_key ON bank_transactions(pair_key);
		CREATE INDEX IF NOT EXISTS idx_ledger_pair_key ON ledger_entries(pair_key);
		CREATE INDEX IF NOT EXISTS idx_bank_source_file ON bank_transactions(source_file);
		CREATE INDEX IF NOT EXISTS idx_ledger_source_file ON ledger_entries(source_file);
	`)
	return err
}

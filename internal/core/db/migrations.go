package db

import (
	"fmt"
)

// migrate applies schema migrations for databases created by older builds
func (db *DB) migrate() error {
	// Migration 1: import_log gained a per-kind items count
	if err := db.migration001ImportLogItems(); err != nil {
		return fmt.Errorf("migration 001: %w", err)
	}

	// Migration 2: app_state gained an updated_at column
	if err := db.migration002StateTimestamps(); err != nil {
		return fmt.Errorf("migration 002: %w", err)
	}

	return nil
}

// migration001ImportLogItems adds the items_imported column to import_log
func (db *DB) migration001ImportLogItems() error {
	var hasColumn bool
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('import_log')
		WHERE name='items_imported'
	`).Scan(&hasColumn)
	if err != nil {
		return err
	}

	if !hasColumn {
		_, err = db.conn.Exec(`ALTER TABLE import_log ADD COLUMN items_imported INTEGER;`)
		if err != nil {
			return fmt.Errorf("add items_imported column: %w", err)
		}
	}

	return nil
}

// migration002StateTimestamps adds the updated_at column to app_state
func (db *DB) migration002StateTimestamps() error {
	var hasColumn bool
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('app_state')
		WHERE name='updated_at'
	`).Scan(&hasColumn)
	if err != nil {
		return err
	}

	if !hasColumn {
		// SQLite cannot ALTER ADD a column with a non-constant default
		_, err = db.conn.Exec(`ALTER TABLE app_state ADD COLUMN updated_at DATETIME;`)
		if err != nil {
			return fmt.Errorf("add updated_at column: %w", err)
		}
	}

	return nil
}

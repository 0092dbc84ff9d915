package storage

import (
	"database/sql"
	"fmt"
)

// DSN builds the modernc sqlite connection string with the pragmas every store expects.
func DSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
}

// InitDB initializes the workshop detail schema.
// PRE: db is a valid database connection
// POST: All tables exist; calling it again is a no-op
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS workshop_detail (
		workshop_id INTEGER PRIMARY KEY,
		visibility TEXT NOT NULL DEFAULT 'public',
		content_kind TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workshop_facilitator (
		workshop_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (workshop_id, position),
		FOREIGN KEY (workshop_id) REFERENCES workshop_detail(workshop_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS problem_statement (
		workshop_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		id INTEGER NOT NULL,
		owner_id INTEGER NOT NULL,
		owner_role TEXT NOT NULL DEFAULT '',
		title_phrase TEXT NOT NULL DEFAULT '',
		counter_phrase TEXT NOT NULL DEFAULT '',
		reason_phrase TEXT NOT NULL DEFAULT '',
		emotion_phrase TEXT NOT NULL DEFAULT '',
		related_items TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (workshop_id, position),
		FOREIGN KEY (workshop_id) REFERENCES workshop_detail(workshop_id) ON DELETE CASCADE
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

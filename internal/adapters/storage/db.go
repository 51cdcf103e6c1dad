package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. users.email joins participants.email by value, not by
	// foreign key: a participant can exist without a login and vice versa.
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE COLLATE NOCASE,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'U',
		password_change_required INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS participants (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE COLLATE NOCASE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		dob TEXT,
		phone TEXT,
		city TEXT,
		state TEXT,
		zip TEXT,
		school_or_employer TEXT,
		field_of_interest TEXT,
		participant_role TEXT NOT NULL DEFAULT 'participant',
		total_donations REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS event_templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS event_occurrences (
		id TEXT PRIMARY KEY,
		template_id TEXT NOT NULL,
		name TEXT NOT NULL,
		starts_at TEXT NOT NULL,
		ends_at TEXT,
		location TEXT,
		capacity INTEGER NOT NULL DEFAULT 0,
		registration_deadline TEXT,
		FOREIGN KEY (template_id) REFERENCES event_templates(id)
	);

	CREATE TABLE IF NOT EXISTS registrations (
		id TEXT PRIMARY KEY,
		participant_id TEXT NOT NULL,
		occurrence_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Registered',
		attended INTEGER,
		checked_in_at TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (participant_id) REFERENCES participants(id),
		FOREIGN KEY (occurrence_id) REFERENCES event_occurrences(id)
	);

	CREATE TABLE IF NOT EXISTS donations (
		id TEXT PRIMARY KEY,
		participant_id TEXT NOT NULL,
		amount REAL NOT NULL,
		donated_at TEXT NOT NULL,
		FOREIGN KEY (participant_id) REFERENCES participants(id)
	);

	CREATE TABLE IF NOT EXISTS surveys (
		id TEXT PRIMARY KEY,
		registration_id TEXT NOT NULL,
		satisfaction INTEGER NOT NULL,
		organization INTEGER NOT NULL,
		content INTEGER NOT NULL,
		recommend INTEGER NOT NULL,
		overall REAL NOT NULL,
		comments TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (registration_id) REFERENCES registrations(id)
	);

	CREATE TABLE IF NOT EXISTS milestones (
		id TEXT PRIMARY KEY,
		participant_id TEXT NOT NULL,
		title TEXT NOT NULL,
		achieved_on TEXT NOT NULL,
		FOREIGN KEY (participant_id) REFERENCES participants(id)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

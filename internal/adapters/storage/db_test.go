package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after InitDB.
var expectedTables = []string{
	"donations",
	"event_occurrences",
	"event_templates",
	"milestones",
	"participants",
	"registrations",
	"surveys",
	"users",
}

// TestInitDB_CreatesAllTables verifies InitDB creates the full schema.
func TestInitDB_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("got %d tables %v, want %d %v", len(got), got, len(expectedTables), expectedTables)
	}
	for i, name := range expectedTables {
		if got[i] != name {
			t.Errorf("table[%d] = %q, want %q", i, got[i], name)
		}
	}
}

// TestInitDB_Idempotent verifies InitDB can run twice without error.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB: %v", err)
	}
}

// TestInitDB_EmailUniqueCaseInsensitive verifies the users email column
// rejects duplicates that differ only by case.
func TestInitDB_EmailUniqueCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	insert := "INSERT INTO users (id, email, username, password_hash, first_name, last_name, role, password_change_required, created_at) VALUES (?, ?, ?, ?, '', '', 'U', 0, '')"
	if _, err := db.Exec(insert, "u1", "Ava@example.com", "ava", "x"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.Exec(insert, "u2", "ava@EXAMPLE.com", "ava2", "x"); err == nil {
		t.Error("expected unique violation for case-variant email, got nil")
	}
}

// TestInitDB_ParticipantTotalDefaultsZero verifies total_donations defaults.
func TestInitDB_ParticipantTotalDefaultsZero(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	_, err := db.Exec("INSERT INTO participants (id, email, first_name, last_name) VALUES ('p1', 'a@b.c', 'A', 'B')")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	var total float64
	if err := db.QueryRow("SELECT total_donations FROM participants WHERE id = 'p1'").Scan(&total); err != nil {
		t.Fatalf("select: %v", err)
	}
	if total != 0 {
		t.Errorf("total_donations = %v, want 0", total)
	}
}

package donation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"ellarises/internal/adapters/storage"
	domain "ellarises/internal/domain/donation"
)

func openTestStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	_, err = db.Exec("INSERT INTO participants (id, email, first_name, last_name) VALUES ('p1', 'ava@example.com', 'Ava', 'Rises')")
	if err != nil {
		t.Fatalf("seed participant: %v", err)
	}
	return NewSQLiteStore(db), db
}

func participantTotal(t *testing.T, db *sql.DB) float64 {
	t.Helper()
	var total float64
	if err := db.QueryRow("SELECT total_donations FROM participants WHERE id = 'p1'").Scan(&total); err != nil {
		t.Fatalf("read total: %v", err)
	}
	return total
}

// TestSaveWithTotal verifies the insert and the running total move together.
func TestSaveWithTotal(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()

	err := store.SaveWithTotal(ctx, domain.Donation{
		ID: "d1", ParticipantID: "p1", Amount: 25.50, DonatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("SaveWithTotal: %v", err)
	}
	if got := participantTotal(t, db); got != 25.50 {
		t.Errorf("total = %v, want 25.50", got)
	}

	err = store.SaveWithTotal(ctx, domain.Donation{
		ID: "d2", ParticipantID: "p1", Amount: 10, DonatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("second SaveWithTotal: %v", err)
	}
	if got := participantTotal(t, db); got != 35.50 {
		t.Errorf("total = %v, want 35.50", got)
	}
}

// TestSaveWithTotal_RollsBackOnBadParticipant verifies a failed insert does
// not move any total.
func TestSaveWithTotal_RollsBackOnBadParticipant(t *testing.T) {
	store, db := openTestStore(t)

	err := store.SaveWithTotal(context.Background(), domain.Donation{
		ID: "d1", ParticipantID: "missing", Amount: 25, DonatedAt: time.Now(),
	})
	if err == nil {
		t.Fatal("expected foreign key error, got nil")
	}
	if got := participantTotal(t, db); got != 0 {
		t.Errorf("total = %v, want 0 after rollback", got)
	}
	var count int
	db.QueryRow("SELECT COUNT(*) FROM donations").Scan(&count)
	if count != 0 {
		t.Errorf("donation count = %d, want 0", count)
	}
}

// TestUpdateAmountWithTotal verifies the total shifts by the amount delta.
func TestUpdateAmountWithTotal(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveWithTotal(ctx, domain.Donation{ID: "d1", ParticipantID: "p1", Amount: 40, DonatedAt: time.Now()}); err != nil {
		t.Fatalf("SaveWithTotal: %v", err)
	}
	if err := store.UpdateAmountWithTotal(ctx, "d1", 15, time.Now()); err != nil {
		t.Fatalf("UpdateAmountWithTotal: %v", err)
	}
	if got := participantTotal(t, db); got != 15 {
		t.Errorf("total = %v, want 15", got)
	}

	d, err := store.GetByID(ctx, "d1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if d.Amount != 15 {
		t.Errorf("amount = %v, want 15", d.Amount)
	}
}

// TestDeleteWithTotal verifies the total drops by the removed amount.
func TestDeleteWithTotal(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()

	store.SaveWithTotal(ctx, domain.Donation{ID: "d1", ParticipantID: "p1", Amount: 40, DonatedAt: time.Now()})
	store.SaveWithTotal(ctx, domain.Donation{ID: "d2", ParticipantID: "p1", Amount: 5, DonatedAt: time.Now()})

	if err := store.DeleteWithTotal(ctx, "d1"); err != nil {
		t.Fatalf("DeleteWithTotal: %v", err)
	}
	if got := participantTotal(t, db); got != 5 {
		t.Errorf("total = %v, want 5", got)
	}

	// Deleting a missing donation is a no-op.
	if err := store.DeleteWithTotal(ctx, "gone"); err != nil {
		t.Fatalf("DeleteWithTotal missing: %v", err)
	}
	if got := participantTotal(t, db); got != 5 {
		t.Errorf("total = %v, want 5 after no-op delete", got)
	}
}

// TestListByEmail verifies ordering newest first and case-insensitive match.
func TestListByEmail(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	older := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	store.SaveWithTotal(ctx, domain.Donation{ID: "d1", ParticipantID: "p1", Amount: 10, DonatedAt: older})
	store.SaveWithTotal(ctx, domain.Donation{ID: "d2", ParticipantID: "p1", Amount: 20, DonatedAt: newer})

	list, err := store.ListByEmail(ctx, "AVA@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("ListByEmail: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != "d2" || list[1].ID != "d1" {
		t.Errorf("order = [%s %s], want [d2 d1]", list[0].ID, list[1].ID)
	}
}

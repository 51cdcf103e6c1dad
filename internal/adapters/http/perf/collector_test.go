package perf

import (
	"fmt"
	"testing"
	"time"
)

// TestRecordAndSnapshot tests basic aggregation.
func TestRecordAndSnapshot(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Path: "GET /events", StatusCode: 200, DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "GET /events", StatusCode: 200, DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "POST /donate", StatusCode: 303, DurationMs: 50, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Path: "QueryContext", DurationMs: 5, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)

	if snap.TotalRequests != 4 {
		t.Errorf("TotalRequests = %d, want 4", snap.TotalRequests)
	}
	if len(snap.SlowestRoutes) != 2 {
		t.Fatalf("SlowestRoutes = %d entries, want 2", len(snap.SlowestRoutes))
	}
	// POST /donate has the higher average and sorts first
	if snap.SlowestRoutes[0].Path != "POST /donate" {
		t.Errorf("slowest route = %q, want POST /donate", snap.SlowestRoutes[0].Path)
	}
	if got := snap.SlowestRoutes[1].AvgMs; got != 20 {
		t.Errorf("GET /events avg = %v, want 20", got)
	}
	if len(snap.SlowestQueries) != 1 {
		t.Errorf("SlowestQueries = %d entries, want 1", len(snap.SlowestQueries))
	}
}

// TestRingOverwrite tests that the buffer wraps without growing.
func TestRingOverwrite(t *testing.T) {
	c := NewCollector(4)
	now := time.Now()
	for i := 0; i < 10; i++ {
		c.Record(Entry{Kind: KindRequest, Path: fmt.Sprintf("GET /p%d", i), DurationMs: 1, Timestamp: now})
	}
	if c.TotalRecorded() != 10 {
		t.Errorf("TotalRecorded = %d, want 10", c.TotalRecorded())
	}
	snap := c.Snapshot(now.Add(-time.Minute), 100)
	if len(snap.SlowestRoutes) != 4 {
		t.Errorf("retained routes = %d, want 4 (ring size)", len(snap.SlowestRoutes))
	}
}

// TestSnapshotSinceFilter tests the time filter.
func TestSnapshotSinceFilter(t *testing.T) {
	c := NewCollector(10)
	old := time.Now().Add(-2 * time.Hour)
	c.Record(Entry{Kind: KindRequest, Path: "GET /old", DurationMs: 1, Timestamp: old})

	snap := c.Snapshot(time.Now().Add(-time.Hour), 10)
	if len(snap.SlowestRoutes) != 0 {
		t.Errorf("expected old entries filtered out, got %d", len(snap.SlowestRoutes))
	}
}

package storage

import (
	"testing"
	"time"
)

func TestSaveAndRecentTurns(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for _, q := range []string{"price of tcs", "compare tcs and infosys", "rsi of hdfc"} {
		if err := store.SaveTurn("s1", q, "snapshot", "answer", 120*time.Millisecond); err != nil {
			t.Fatalf("SaveTurn(%q): %v", q, err)
		}
	}
	if err := store.SaveTurn("s2", "other session", "ipo", "answer", time.Second); err != nil {
		t.Fatalf("SaveTurn: %v", err)
	}

	turns, err := store.RecentTurns("s1", 2)
	if err != nil {
		t.Fatalf("RecentTurns: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	// Newest two, returned oldest first.
	if turns[0].Query != "compare tcs and infosys" || turns[1].Query != "rsi of hdfc" {
		t.Errorf("unexpected order: %q, %q", turns[0].Query, turns[1].Query)
	}
	for _, turn := range turns {
		if turn.SessionID != "s1" {
			t.Errorf("leaked turn from session %q", turn.SessionID)
		}
		if turn.LatencyMS != 120 {
			t.Errorf("latency = %dms, want 120", turn.LatencyMS)
		}
	}
}

func TestRecentTurnsEmptySession(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	turns, err := store.RecentTurns("nobody", 10)
	if err != nil {
		t.Fatalf("RecentTurns: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("expected no turns, got %d", len(turns))
	}
}

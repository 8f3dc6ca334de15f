package store

import (
	"path/filepath"
	"testing"

	"github.com/ndelorme/certtrack/internal/plan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory(nil)
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "certtrack.db")

	s, err := New(path, nil)
	if err != nil {
		t.Fatalf("new store with nested path: %v", err)
	}
	defer s.Close()

	// Re-opening must not re-run migrations destructively.
	s.Close()
	s2, err := New(path, nil)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	s2.Close()
}

// ============================================================
// Progress document
// ============================================================

func TestLoadEmpty(t *testing.T) {
	s := newTestStore(t)

	p := s.Load()
	if p == nil {
		t.Fatal("load should never return nil")
	}
	if len(p) != 0 {
		t.Fatalf("fresh store should load empty progress, got %d entries", len(p))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	saved := plan.Progress{
		"2025-09-13": {
			{ID: "2025-09-13-1-0", Completed: true},
			{ID: "2025-09-13-1-1", Completed: false},
		},
		"2025-09-14": {
			{ID: "2025-09-14-1-0", Completed: true},
		},
	}
	if err := s.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := s.Load()
	if len(loaded) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(loaded))
	}
	for date, states := range saved {
		got := loaded[date]
		if len(got) != len(states) {
			t.Fatalf("date %s: expected %d records, got %d", date, len(states), len(got))
		}
		for i := range states {
			if got[i] != states[i] {
				t.Fatalf("date %s record %d: expected %+v, got %+v", date, i, states[i], got[i])
			}
		}
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	s.Save(plan.Progress{"2025-09-13": {{ID: "a", Completed: true}}})
	s.Save(plan.Progress{"2025-09-14": {{ID: "b", Completed: true}}})

	loaded := s.Load()
	if len(loaded) != 1 {
		t.Fatalf("second save should replace the document, got %d dates", len(loaded))
	}
	if _, ok := loaded["2025-09-14"]; !ok {
		t.Fatal("latest save missing")
	}
}

func TestLoadCorruptDocumentFailsOpen(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)`,
		progressKey, "{not json",
	)
	if err != nil {
		t.Fatalf("inject corrupt row: %v", err)
	}

	p := s.Load()
	if len(p) != 0 {
		t.Fatalf("corrupt document should load as empty, got %d entries", len(p))
	}
}

func TestLoadNullDocument(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)`,
		progressKey, "null",
	); err != nil {
		t.Fatalf("inject null row: %v", err)
	}

	p := s.Load()
	if p == nil {
		t.Fatal("JSON null should still load as a usable empty map")
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)

	s.Save(plan.Progress{"2025-09-13": {{ID: "a", Completed: true}}})
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if p := s.Load(); len(p) != 0 {
		t.Fatalf("clear should leave empty progress, got %d entries", len(p))
	}
}

func TestClearWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.Clear(); err != nil {
		t.Fatalf("clear on empty store should be a no-op: %v", err)
	}
}

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ndelorme/certtrack/internal/plan"
)

// progressKey is the single row the whole progress document lives
// under, mirroring the one storage key of the original tracker.
const progressKey = "curriculum-progress"

// Save serializes the progress document and upserts it under the
// progress key.
func (s *Store) Save(p plan.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		progressKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Load reads the progress document. It fails open: a missing row, an
// unreadable row or a corrupt document all come back as empty progress
// with the failure logged, never as an error. Losing unreadable state
// beats refusing to start.
func (s *Store) Load() plan.Progress {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM progress WHERE key = ?`, progressKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return plan.Progress{}
	}
	if err != nil {
		s.log.Warn("progress read failed, starting empty", "error", err)
		return plan.Progress{}
	}

	var p plan.Progress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn("progress document corrupt, starting empty", "error", err)
		return plan.Progress{}
	}
	if p == nil {
		p = plan.Progress{}
	}
	return p
}

// Clear removes the persisted progress entirely, as if nothing had
// ever been saved.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM progress WHERE key = ?`, progressKey); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

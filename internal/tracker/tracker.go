// Package tracker is the state controller: it owns the one
// authoritative day-plan slice, applies toggle/reset intents and keeps
// the progress store in sync. Persistence and the current date are
// injected so tests can run against a fake store and a fixed clock.
package tracker

import (
	"log/slog"
	"sort"
	"time"

	"github.com/ndelorme/certtrack/internal/curriculum"
	"github.com/ndelorme/certtrack/internal/plan"
	"github.com/ndelorme/certtrack/internal/stats"
)

// ProgressStore is the persistence port. *store.Store satisfies it.
type ProgressStore interface {
	Load() plan.Progress
	Save(plan.Progress) error
	Clear() error
}

// Clock supplies the current time. One injection point instead of
// time.Now calls scattered across streak and schedule classification.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock Clock used outside tests.
func SystemClock() Clock { return systemClock{} }

// Tracker holds the in-memory schedule. All mutation goes through
// Toggle and Reset, which replace the plan slice wholesale and write
// the store before returning.
type Tracker struct {
	store ProgressStore
	clock Clock
	log   *slog.Logger
	plans []plan.DayPlan
}

// New generates the schedule from the given phases, overlays whatever
// the store has saved, and returns a ready controller. logger receives
// swallowed persistence-write failures; nil means discard.
func New(phases []curriculum.Phase, store ProgressStore, clock Clock, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	generated := plan.Generate(phases)
	return &Tracker{
		store: store,
		clock: clock,
		log:   logger,
		plans: plan.Merge(generated, store.Load()),
	}
}

// Plans returns the authoritative schedule in ascending date order.
// Callers treat it as read-only.
func (t *Tracker) Plans() []plan.DayPlan {
	return t.plans
}

// Today returns the current calendar date from the injected clock.
func (t *Tracker) Today() string {
	return t.clock.Now().Format(curriculum.DateLayout)
}

// TodayPlan returns the plan for the current date, or nil when today
// falls outside every phase. With overlapping phases it returns the
// first (earliest-phase) plan for the date.
func (t *Tracker) TodayPlan() *plan.DayPlan {
	today := t.Today()
	for i := range t.plans {
		if t.plans[i].Date == today {
			return &t.plans[i]
		}
	}
	return nil
}

// Stats recomputes the aggregate statistics for the current schedule.
func (t *Tracker) Stats() stats.ProgressStats {
	return stats.Compute(t.plans, t.Today())
}

// Toggle flips one task's completion flag and saves the full resulting
// progress. It reports the toggled task and whether the id matched
// anything. Save failures are logged and swallowed; the in-memory
// state is already updated and stays usable.
func (t *Tracker) Toggle(id string) (*plan.Task, bool) {
	plans, task := plan.Toggle(t.plans, id)
	if task == nil {
		return nil, false
	}
	t.plans = plans
	if err := t.store.Save(plan.Snapshot(t.plans)); err != nil {
		t.log.Warn("progress save failed", "task", id, "error", err)
	}
	return task, true
}

// Reset marks every task not completed and clears the persisted
// record entirely.
func (t *Tracker) Reset() {
	t.plans = plan.ResetAll(t.plans)
	if err := t.store.Clear(); err != nil {
		t.log.Warn("progress clear failed", "error", err)
	}
}

// Upcoming returns up to n plans dated today or later, soonest first.
func (t *Tracker) Upcoming(n int) []plan.DayPlan {
	today := t.Today()
	var out []plan.DayPlan
	for _, d := range t.plans {
		if d.Date >= today {
			out = append(out, d)
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Recent returns up to n plans dated before today, most recent first.
// The canonical slice keeps its ascending order; this is a display
// partition only.
func (t *Tracker) Recent(n int) []plan.DayPlan {
	today := t.Today()
	var out []plan.DayPlan
	for _, d := range t.plans {
		if d.Date < today {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

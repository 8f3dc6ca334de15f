// Package stats derives aggregate progress figures from a plan slice.
// Compute is pure and cheap (linear in task count), so callers rerun
// it after every change instead of maintaining incremental state.
package stats

import (
	"sort"

	"github.com/ndelorme/certtrack/internal/plan"
)

// ProgressStats is the read model shown on the dashboard.
type ProgressStats struct {
	TotalHours     float64
	CompletedHours float64
	TotalDays      int
	CompletedDays  int
	// Streak counts consecutive fully-completed days walking backward
	// from today inclusive.
	Streak int
	// PhaseProgress maps phase id to its percentage of fully-completed
	// days, 0 for phases with no days.
	PhaseProgress map[int]float64
}

// Compute derives the stats for the given plans. today is a calendar
// date in curriculum.DateLayout, injected by the caller so the result
// is deterministic under test.
func Compute(plans []plan.DayPlan, today string) ProgressStats {
	s := ProgressStats{
		TotalDays:     len(plans),
		PhaseProgress: make(map[int]float64),
	}

	phaseTotal := make(map[int]int)
	phaseDone := make(map[int]int)

	for _, day := range plans {
		s.TotalHours += day.Hours()
		s.CompletedHours += day.CompletedHours()

		phaseTotal[day.Phase]++
		if day.Completed() {
			s.CompletedDays++
			phaseDone[day.Phase]++
		}
	}

	for id, total := range phaseTotal {
		s.PhaseProgress[id] = float64(phaseDone[id]) / float64(total) * 100
	}

	s.Streak = streak(plans, today)
	return s
}

// streak walks the days at or before today from most recent backward,
// counting while each day is fully completed. Days after today never
// count, even if somehow checked off in advance.
func streak(plans []plan.DayPlan, today string) int {
	past := make([]plan.DayPlan, 0, len(plans))
	for _, day := range plans {
		if day.Date <= today {
			past = append(past, day)
		}
	}
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].Date > past[j].Date
	})

	n := 0
	for _, day := range past {
		if !day.Completed() {
			break
		}
		n++
	}
	return n
}

// Package plan turns the static curriculum into a dated task schedule
// and reconciles it with persisted completion state. Everything here is
// a pure function over value data; the caller owns the authoritative
// plan slice and persistence happens elsewhere.
package plan

import (
	"fmt"

	"github.com/ndelorme/certtrack/internal/curriculum"
)

// Task is one concrete unit of work on one day, instantiated from a
// phase task template.
type Task struct {
	ID        string
	Name      string
	Hours     float64
	Category  curriculum.Category
	Completed bool
}

// DayPlan is the schedule for a single calendar date.
type DayPlan struct {
	Date  string // curriculum.DateLayout
	Phase int
	Tasks []Task
}

// TaskState is the persisted projection of a Task: just its identity
// and completion flag. Names, hours and categories are reconstructible
// from the curriculum and are deliberately not stored.
type TaskState struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// Progress maps a calendar date to the ordered task states recorded
// for that date. This is the exact shape written to and read from the
// progress store.
type Progress map[string][]TaskState

// TaskID derives the stable identifier of a task instance from its
// date, phase and template position. Re-generating an unchanged
// curriculum always reproduces the same ids, which is what makes
// persisted progress survive restarts.
func TaskID(date string, phaseID, index int) string {
	return fmt.Sprintf("%s-%d-%d", date, phaseID, index)
}

// Completed reports whether the day counts as done: at least one task,
// all of them completed. A day with no tasks is never "completed".
func (d DayPlan) Completed() bool {
	if len(d.Tasks) == 0 {
		return false
	}
	for _, t := range d.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// Hours is the planned workload of the day.
func (d DayPlan) Hours() float64 {
	var sum float64
	for _, t := range d.Tasks {
		sum += t.Hours
	}
	return sum
}

// CompletedHours is the workload of the day's completed tasks.
func (d DayPlan) CompletedHours() float64 {
	var sum float64
	for _, t := range d.Tasks {
		if t.Completed {
			sum += t.Hours
		}
	}
	return sum
}

// clone deep-copies a plan slice so mutating operations can return a
// fresh structure without touching their input.
func clone(plans []DayPlan) []DayPlan {
	out := make([]DayPlan, len(plans))
	for i, d := range plans {
		tasks := make([]Task, len(d.Tasks))
		copy(tasks, d.Tasks)
		out[i] = DayPlan{Date: d.Date, Phase: d.Phase, Tasks: tasks}
	}
	return out
}

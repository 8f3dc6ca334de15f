package plan

import (
	"testing"
	"time"

	"github.com/ndelorme/certtrack/internal/curriculum"
)

// testPhases returns a small two-phase curriculum: 3 days x 2 templates
// and 2 days x 1 template.
func testPhases(t *testing.T) []curriculum.Phase {
	t.Helper()
	return []curriculum.Phase{
		{
			ID:    1,
			Name:  "Alpha",
			Color: "#7AA2F7",
			Start: mustTime(t, "2025-09-01"),
			End:   mustTime(t, "2025-09-03"),
			Templates: []curriculum.TaskTemplate{
				{Name: "Reading", Hours: 2, Category: curriculum.CategoryML},
				{Name: "Labs", Hours: 1, Category: curriculum.CategoryLab},
			},
		},
		{
			ID:    2,
			Name:  "Beta",
			Color: "#F39C12",
			Start: mustTime(t, "2025-09-04"),
			End:   mustTime(t, "2025-09-05"),
			Templates: []curriculum.TaskTemplate{
				{Name: "Mocks", Hours: 3, Category: curriculum.CategoryRevision},
			},
		},
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(curriculum.DateLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return parsed
}

// ============================================================
// Generate
// ============================================================

func TestGenerateTaskCount(t *testing.T) {
	plans := Generate(testPhases(t))

	// 3 days for phase 1, 2 days for phase 2.
	if len(plans) != 5 {
		t.Fatalf("expected 5 day plans, got %d", len(plans))
	}

	tasks := 0
	for _, d := range plans {
		tasks += len(d.Tasks)
	}
	// (end-start+1) x |templates| per phase: 3x2 + 2x1.
	if tasks != 8 {
		t.Fatalf("expected 8 tasks, got %d", tasks)
	}
}

func TestGenerateAscendingDates(t *testing.T) {
	plans := Generate(testPhases(t))
	for i := 1; i < len(plans); i++ {
		if plans[i-1].Date > plans[i].Date {
			t.Fatalf("plans out of order: %s before %s", plans[i-1].Date, plans[i].Date)
		}
	}
}

func TestGenerateIDsUnique(t *testing.T) {
	plans := Generate(testPhases(t))
	seen := make(map[string]bool)
	for _, d := range plans {
		for _, task := range d.Tasks {
			if seen[task.ID] {
				t.Fatalf("duplicate task id %q", task.ID)
			}
			seen[task.ID] = true
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(testPhases(t))
	b := Generate(testPhases(t))
	if len(a) != len(b) {
		t.Fatalf("plan lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		for j := range a[i].Tasks {
			if a[i].Tasks[j].ID != b[i].Tasks[j].ID {
				t.Fatalf("regeneration changed id: %q vs %q", a[i].Tasks[j].ID, b[i].Tasks[j].ID)
			}
		}
	}
}

func TestGenerateTaskFields(t *testing.T) {
	plans := Generate(testPhases(t))

	first := plans[0]
	if first.Date != "2025-09-01" {
		t.Fatalf("expected first date 2025-09-01, got %s", first.Date)
	}
	if first.Phase != 1 {
		t.Fatalf("expected phase 1, got %d", first.Phase)
	}
	task := first.Tasks[0]
	if task.ID != "2025-09-01-1-0" {
		t.Fatalf("unexpected id %q", task.ID)
	}
	if task.Name != "Reading" || task.Hours != 2 || task.Category != curriculum.CategoryML {
		t.Fatalf("template fields not copied: %+v", task)
	}
	if task.Completed {
		t.Fatal("tasks must start uncompleted")
	}
}

func TestGenerateTemplateOrderPreserved(t *testing.T) {
	plans := Generate(testPhases(t))
	for _, d := range plans {
		if d.Phase != 1 {
			continue
		}
		if d.Tasks[0].Name != "Reading" || d.Tasks[1].Name != "Labs" {
			t.Fatalf("template order not preserved on %s: %+v", d.Date, d.Tasks)
		}
	}
}

func TestGenerateEmptyRange(t *testing.T) {
	phases := testPhases(t)
	// Invert phase 2's range: it must contribute zero days, not error.
	phases[1].Start, phases[1].End = phases[1].End, phases[1].Start

	plans := Generate(phases)
	if len(plans) != 3 {
		t.Fatalf("inverted range should yield only phase 1 days, got %d", len(plans))
	}
}

func TestGenerateOverlappingPhases(t *testing.T) {
	phases := testPhases(t)
	// Make phase 2 start on phase 1's last day.
	phases[1].Start = phases[0].End

	plans := Generate(phases)
	count := 0
	for _, d := range plans {
		if d.Date == "2025-09-03" {
			count++
		}
	}
	// Overlapping dates are not deduplicated: one plan per phase.
	if count != 2 {
		t.Fatalf("expected 2 plans for the shared date, got %d", count)
	}
}

// ============================================================
// Merge
// ============================================================

func TestMergeEmptyProgressIsNoop(t *testing.T) {
	plans := Generate(testPhases(t))
	merged := Merge(plans, Progress{})
	for _, d := range merged {
		for _, task := range d.Tasks {
			if task.Completed {
				t.Fatalf("task %q completed after merging empty progress", task.ID)
			}
		}
	}
}

func TestMergeAppliesSavedFlags(t *testing.T) {
	plans := Generate(testPhases(t))
	saved := Progress{
		"2025-09-01": {
			{ID: "2025-09-01-1-0", Completed: true},
			{ID: "2025-09-01-1-1", Completed: false},
		},
	}

	merged := Merge(plans, saved)
	if !merged[0].Tasks[0].Completed {
		t.Fatal("saved completed flag not applied")
	}
	if merged[0].Tasks[1].Completed {
		t.Fatal("saved false flag should keep task uncompleted")
	}
	// Untouched days stay default.
	if merged[1].Tasks[0].Completed {
		t.Fatal("day without saved entry should stay uncompleted")
	}
}

func TestMergeIgnoresStaleIDs(t *testing.T) {
	plans := Generate(testPhases(t))
	saved := Progress{
		"2025-09-01": {
			{ID: "2025-09-01-9-7", Completed: true}, // removed template
		},
	}

	merged := Merge(plans, saved)
	for _, task := range merged[0].Tasks {
		if task.Completed {
			t.Fatalf("stale id should not mark %q completed", task.ID)
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	plans := Generate(testPhases(t))
	saved := Progress{
		"2025-09-02": {{ID: "2025-09-02-1-1", Completed: true}},
	}

	once := Merge(plans, saved)
	twice := Merge(once, saved)

	for i := range once {
		for j := range once[i].Tasks {
			if once[i].Tasks[j] != twice[i].Tasks[j] {
				t.Fatalf("merge not idempotent at %d/%d", i, j)
			}
		}
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	plans := Generate(testPhases(t))
	saved := Progress{
		"2025-09-01": {{ID: "2025-09-01-1-0", Completed: true}},
	}

	Merge(plans, saved)
	if plans[0].Tasks[0].Completed {
		t.Fatal("merge mutated its input")
	}
}

// ============================================================
// Snapshot round-trip
// ============================================================

func TestSnapshotMergeRoundTrip(t *testing.T) {
	plans := Generate(testPhases(t))
	plans, _ = Toggle(plans, "2025-09-01-1-0")
	plans, _ = Toggle(plans, "2025-09-04-2-0")

	restored := Merge(Generate(testPhases(t)), Snapshot(plans))

	for i := range plans {
		for j := range plans[i].Tasks {
			if plans[i].Tasks[j].Completed != restored[i].Tasks[j].Completed {
				t.Fatalf("round trip lost flag for %q", plans[i].Tasks[j].ID)
			}
		}
	}
}

// ============================================================
// Toggle / ResetAll
// ============================================================

func TestToggleFlipsExactlyOne(t *testing.T) {
	plans := Generate(testPhases(t))
	toggled, task := Toggle(plans, "2025-09-02-1-1")
	if task == nil {
		t.Fatal("toggle should report the task")
	}
	if !task.Completed {
		t.Fatal("toggled task should be completed")
	}

	flipped := 0
	for _, d := range toggled {
		for _, tk := range d.Tasks {
			if tk.Completed {
				flipped++
			}
		}
	}
	if flipped != 1 {
		t.Fatalf("expected exactly 1 completed task, got %d", flipped)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	plans := Generate(testPhases(t))
	once, _ := Toggle(plans, "2025-09-02-1-1")
	twice, task := Toggle(once, "2025-09-02-1-1")
	if task == nil || task.Completed {
		t.Fatal("double toggle should restore uncompleted")
	}
	for i := range plans {
		for j := range plans[i].Tasks {
			if plans[i].Tasks[j] != twice[i].Tasks[j] {
				t.Fatalf("double toggle changed state at %d/%d", i, j)
			}
		}
	}
}

func TestToggleUnknownID(t *testing.T) {
	plans := Generate(testPhases(t))
	out, task := Toggle(plans, "nope")
	if task != nil {
		t.Fatal("unknown id should report nil task")
	}
	for _, d := range out {
		for _, tk := range d.Tasks {
			if tk.Completed {
				t.Fatal("unknown id should change nothing")
			}
		}
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	plans := Generate(testPhases(t))
	Toggle(plans, "2025-09-01-1-0")
	if plans[0].Tasks[0].Completed {
		t.Fatal("toggle mutated its input")
	}
}

func TestResetAll(t *testing.T) {
	plans := Generate(testPhases(t))
	plans, _ = Toggle(plans, "2025-09-01-1-0")
	plans, _ = Toggle(plans, "2025-09-03-1-1")

	reset := ResetAll(plans)
	for _, d := range reset {
		for _, tk := range d.Tasks {
			if tk.Completed {
				t.Fatalf("reset left %q completed", tk.ID)
			}
		}
	}
	// Input untouched.
	if !hasCompleted(plans) {
		t.Fatal("reset mutated its input")
	}
}

func hasCompleted(plans []DayPlan) bool {
	for _, d := range plans {
		for _, tk := range d.Tasks {
			if tk.Completed {
				return true
			}
		}
	}
	return false
}

// ============================================================
// TaskID / DayPlan helpers
// ============================================================

func TestTaskID(t *testing.T) {
	if got := TaskID("2025-09-13", 1, 0); got != "2025-09-13-1-0" {
		t.Fatalf("unexpected task id %q", got)
	}
}

func TestDayPlanCompleted(t *testing.T) {
	day := DayPlan{Date: "2025-09-01", Phase: 1, Tasks: []Task{
		{ID: "a", Completed: true},
		{ID: "b", Completed: true},
	}}
	if !day.Completed() {
		t.Fatal("all-completed day should count as completed")
	}

	day.Tasks[1].Completed = false
	if day.Completed() {
		t.Fatal("partially completed day should not count")
	}
}

func TestEmptyDayNeverCompleted(t *testing.T) {
	day := DayPlan{Date: "2025-09-01", Phase: 1}
	if day.Completed() {
		t.Fatal("a day with no tasks must not count as completed")
	}
}

func TestDayPlanHours(t *testing.T) {
	day := DayPlan{Tasks: []Task{
		{Hours: 2, Completed: true},
		{Hours: 1.5},
	}}
	if day.Hours() != 3.5 {
		t.Fatalf("expected 3.5 planned hours, got %g", day.Hours())
	}
	if day.CompletedHours() != 2 {
		t.Fatalf("expected 2 completed hours, got %g", day.CompletedHours())
	}
}

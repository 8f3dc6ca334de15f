package plan

// Snapshot projects a plan slice down to the persisted shape: per date,
// the ordered {id, completed} pairs of its tasks.
func Snapshot(plans []DayPlan) Progress {
	p := make(Progress, len(plans))
	for _, day := range plans {
		states := make([]TaskState, len(day.Tasks))
		for i, t := range day.Tasks {
			states[i] = TaskState{ID: t.ID, Completed: t.Completed}
		}
		p[day.Date] = states
	}
	return p
}

// Merge overlays saved completion flags onto freshly generated plans,
// matching tasks by identifier. Tasks with no saved record keep their
// default false; saved records matching no current task are ignored.
// That asymmetry is what lets an edited curriculum pick up old
// progress without any migration step. The input is not mutated.
func Merge(plans []DayPlan, saved Progress) []DayPlan {
	merged := clone(plans)
	if len(saved) == 0 {
		return merged
	}

	for di := range merged {
		states, ok := saved[merged[di].Date]
		if !ok {
			continue
		}
		byID := make(map[string]bool, len(states))
		for _, s := range states {
			byID[s.ID] = s.Completed
		}
		for ti := range merged[di].Tasks {
			if completed, ok := byID[merged[di].Tasks[ti].ID]; ok {
				merged[di].Tasks[ti].Completed = completed
			}
		}
	}
	return merged
}

// Toggle flips the completion flag of the task with the given id and
// returns the new plan slice plus the task as it now stands, or nil if
// no task has that id. The input is not mutated.
func Toggle(plans []DayPlan, id string) ([]DayPlan, *Task) {
	out := clone(plans)
	for di := range out {
		for ti := range out[di].Tasks {
			if out[di].Tasks[ti].ID == id {
				out[di].Tasks[ti].Completed = !out[di].Tasks[ti].Completed
				t := out[di].Tasks[ti]
				return out, &t
			}
		}
	}
	return out, nil
}

// ResetAll returns a copy of the plans with every task marked not
// completed.
func ResetAll(plans []DayPlan) []DayPlan {
	out := clone(plans)
	for di := range out {
		for ti := range out[di].Tasks {
			out[di].Tasks[ti].Completed = false
		}
	}
	return out
}

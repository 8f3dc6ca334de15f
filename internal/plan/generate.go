package plan

import (
	"sort"

	"github.com/ndelorme/certtrack/internal/curriculum"
)

// Generate expands the curriculum phases into one DayPlan per covered
// calendar date, in ascending date order. All date arithmetic is plain
// calendar stepping on UTC-midnight values; no timezone is involved.
//
// A phase whose end date precedes its start date contributes no days.
// If two phases cover the same date each produces its own DayPlan;
// nothing deduplicates (the shipped curriculum has disjoint ranges).
func Generate(phases []curriculum.Phase) []DayPlan {
	var plans []DayPlan

	for _, phase := range phases {
		for d := phase.Start; !d.After(phase.End); d = d.AddDate(0, 0, 1) {
			date := d.Format(curriculum.DateLayout)

			tasks := make([]Task, len(phase.Templates))
			for i, tpl := range phase.Templates {
				tasks[i] = Task{
					ID:       TaskID(date, phase.ID, i),
					Name:     tpl.Name,
					Hours:    tpl.Hours,
					Category: tpl.Category,
				}
			}

			plans = append(plans, DayPlan{
				Date:  date,
				Phase: phase.ID,
				Tasks: tasks,
			})
		}
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].Date < plans[j].Date
	})
	return plans
}

package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ndelorme/certtrack/internal/plan"
)

// ToCSV writes the full schedule, one row per task, to path.
func ToCSV(plans []plan.DayPlan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Phase", "Task", "Category", "Hours", "Completed"}); err != nil {
		return err
	}

	for _, day := range plans {
		for _, t := range day.Tasks {
			completed := "no"
			if t.Completed {
				completed = "yes"
			}
			row := []string{
				day.Date,
				fmt.Sprintf("%d", day.Phase),
				t.Name,
				string(t.Category),
				formatHours(t.Hours),
				completed,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func formatHours(h float64) string {
	return fmt.Sprintf("%g", h)
}

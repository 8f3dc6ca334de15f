package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ndelorme/certtrack/internal/plan"
)

type jsonExport struct {
	ExportedAt     string    `json:"exported_at"`
	Days           int       `json:"days"`
	TotalHours     float64   `json:"total_hours"`
	CompletedHours float64   `json:"completed_hours"`
	Schedule       []jsonDay `json:"schedule"`
}

type jsonDay struct {
	Date  string     `json:"date"`
	Phase int        `json:"phase"`
	Tasks []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Hours     float64 `json:"hours"`
	Completed bool    `json:"completed"`
}

// ToJSON writes the full schedule with summary totals to path.
func ToJSON(plans []plan.DayPlan, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Days:       len(plans),
	}

	for _, day := range plans {
		export.TotalHours += day.Hours()
		export.CompletedHours += day.CompletedHours()

		jd := jsonDay{Date: day.Date, Phase: day.Phase}
		for _, t := range day.Tasks {
			jd.Tasks = append(jd.Tasks, jsonTask{
				ID:        t.ID,
				Name:      t.Name,
				Category:  string(t.Category),
				Hours:     t.Hours,
				Completed: t.Completed,
			})
		}
		export.Schedule = append(export.Schedule, jd)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ndelorme/certtrack/internal/curriculum"
	"github.com/ndelorme/certtrack/internal/plan"
)

func testPlans() []plan.DayPlan {
	return []plan.DayPlan{
		{
			Date: "2025-09-01", Phase: 1,
			Tasks: []plan.Task{
				{ID: "2025-09-01-1-0", Name: "Machine Learning", Hours: 2, Category: curriculum.CategoryML, Completed: true},
				{ID: "2025-09-01-1-1", Name: "Terraform", Hours: 1, Category: curriculum.CategoryTerraform},
			},
		},
		{
			Date: "2025-09-02", Phase: 1,
			Tasks: []plan.Task{
				{ID: "2025-09-02-1-0", Name: "Machine Learning", Hours: 2, Category: curriculum.CategoryML},
			},
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := ToCSV(testPlans(), path); err != nil {
		t.Fatalf("export csv: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	// Header + one row per task.
	if len(records) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(records))
	}
	if records[0][0] != "Date" || records[0][5] != "Completed" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][2] != "Machine Learning" || records[1][5] != "yes" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][3] != "terraform" || records[2][5] != "no" {
		t.Fatalf("unexpected second row: %v", records[2])
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(testPlans(), filepath.Join(t.TempDir(), "missing", "export.csv"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if !strings.Contains(err.Error(), "create csv file") {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ToJSON(testPlans(), path); err != nil {
		t.Fatalf("export json: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc jsonExport
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse export: %v", err)
	}

	if doc.Days != 2 {
		t.Fatalf("expected 2 days, got %d", doc.Days)
	}
	if doc.TotalHours != 5 {
		t.Fatalf("expected 5 total hours, got %g", doc.TotalHours)
	}
	if doc.CompletedHours != 2 {
		t.Fatalf("expected 2 completed hours, got %g", doc.CompletedHours)
	}
	if len(doc.Schedule) != 2 {
		t.Fatalf("expected 2 schedule days, got %d", len(doc.Schedule))
	}
	first := doc.Schedule[0]
	if first.Date != "2025-09-01" || len(first.Tasks) != 2 {
		t.Fatalf("unexpected first day: %+v", first)
	}
	if !first.Tasks[0].Completed || first.Tasks[0].ID != "2025-09-01-1-0" {
		t.Fatalf("unexpected first task: %+v", first.Tasks[0])
	}
	if doc.ExportedAt == "" {
		t.Fatal("exported_at should be set")
	}
}

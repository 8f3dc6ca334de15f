package curriculum

import "time"

// Category classifies a daily task template.
type Category string

const (
	CategoryML        Category = "ml"
	CategoryAWS       Category = "aws"
	CategoryTerraform Category = "terraform"
	CategoryRevision  Category = "revision"
	CategoryLab       Category = "lab"
)

// TaskTemplate defines one kind of daily task repeated on every day of
// its phase.
type TaskTemplate struct {
	Name     string
	Hours    float64
	Category Category
}

// Phase is a block of the curriculum: an inclusive calendar date range
// and the task templates instantiated on each covered day.
type Phase struct {
	ID          int
	Name        string
	Description string
	Color       string
	Start       time.Time
	End         time.Time
	Templates   []TaskTemplate
}

// DateLayout is the calendar-date format used everywhere: phase ranges,
// day plan keys and persisted progress records.
const DateLayout = "2006-01-02"

// mustDate parses a calendar date literal. The curriculum is compiled
// in, so a malformed literal is a programming error and panics at init.
func mustDate(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		panic("curriculum: bad date literal " + s + ": " + err.Error())
	}
	return t
}

var phases = []Phase{
	{
		ID:          1,
		Name:        "Fondamentaux",
		Description: "Machine Learning, AWS Architect et Terraform",
		Color:       "#7AA2F7",
		Start:       mustDate("2025-09-13"),
		End:         mustDate("2025-09-30"),
		Templates: []TaskTemplate{
			{Name: "Machine Learning", Hours: 2, Category: CategoryML},
			{Name: "AWS Architect", Hours: 2, Category: CategoryAWS},
			{Name: "Terraform", Hours: 1, Category: CategoryTerraform},
			{Name: "Révisions/Exercices", Hours: 1, Category: CategoryRevision},
		},
	},
	{
		ID:          2,
		Name:        "Spécialisation AWS ML",
		Description: "AWS ML Specialty et ML Engineer",
		Color:       "#F39C12",
		Start:       mustDate("2025-10-01"),
		End:         mustDate("2025-10-25"),
		Templates: []TaskTemplate{
			{Name: "AWS ML Specialty", Hours: 3, Category: CategoryAWS},
			{Name: "AWS ML Engineer", Hours: 2, Category: CategoryAWS},
			{Name: "Labo/Pratique", Hours: 1, Category: CategoryLab},
		},
	},
	{
		ID:          3,
		Name:        "Approfondissement",
		Description: "Stanford ML/AI et révisions complètes",
		Color:       "#2EC4B6",
		Start:       mustDate("2025-10-26"),
		End:         mustDate("2025-11-15"),
		Templates: []TaskTemplate{
			{Name: "Fiches Stanford ML/AI", Hours: 2, Category: CategoryML},
			{Name: "Révisions/Mocks AWS", Hours: 2, Category: CategoryRevision},
			{Name: "Révisions ML", Hours: 1, Category: CategoryRevision},
			{Name: "Terraform", Hours: 1, Category: CategoryTerraform},
		},
	},
}

// Phases returns the fixed curriculum in display order. Callers must
// not mutate the returned slice.
func Phases() []Phase {
	return phases
}

// TotalHours is the planned daily workload of a phase.
func (p Phase) TotalHours() float64 {
	var sum float64
	for _, t := range p.Templates {
		sum += t.Hours
	}
	return sum
}

// Days is the number of calendar days the phase covers, zero when the
// range is empty (end before start).
func (p Phase) Days() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/ndelorme/certtrack/internal/curriculum"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewSchedule
	viewPhases
	viewReports
)

var viewNames = []string{"Dashboard", "Schedule", "Phases", "Reports"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type taskToggledMsg struct {
	name      string
	hours     float64
	completed bool
}

type progressResetMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatHours(h float64) string {
	return fmt.Sprintf("%gh", h)
}

// categoryGlyph is the terminal stand-in for the original's emoji
// icons, one per task category.
func categoryGlyph(c curriculum.Category) string {
	switch c {
	case curriculum.CategoryML:
		return "◆"
	case curriculum.CategoryAWS:
		return "☁"
	case curriculum.CategoryTerraform:
		return "▲"
	case curriculum.CategoryRevision:
		return "✎"
	case curriculum.CategoryLab:
		return "⚗"
	}
	return "•"
}

func categoryStyle(c curriculum.Category) lipgloss.Style {
	switch c {
	case curriculum.CategoryML:
		return lipgloss.NewStyle().Foreground(colorML)
	case curriculum.CategoryAWS:
		return lipgloss.NewStyle().Foreground(colorAWS)
	case curriculum.CategoryTerraform:
		return lipgloss.NewStyle().Foreground(colorTerraform)
	case curriculum.CategoryRevision:
		return lipgloss.NewStyle().Foreground(colorRevision)
	case curriculum.CategoryLab:
		return lipgloss.NewStyle().Foreground(colorLab)
	}
	return mutedStyle
}

// renderBar draws a fixed-width percent bar like the original's phase
// progress bars.
func renderBar(percent float64, width int, style lipgloss.Style) string {
	if width < 1 {
		width = 1
	}
	filled := int(percent/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return style.Render(bar)
}

func checkbox(done bool) string {
	if done {
		return successStyle.Render("[x]")
	}
	return mutedStyle.Render("[ ]")
}

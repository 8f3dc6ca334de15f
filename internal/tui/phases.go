package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ndelorme/certtrack/internal/curriculum"
	"github.com/ndelorme/certtrack/internal/tracker"
)

// phasesModel lists the curriculum phases with their date ranges,
// daily templates and completion percentage.
type phasesModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int
}

func newPhasesModel(t *tracker.Tracker) phasesModel {
	return phasesModel{tracker: t}
}

func (p *phasesModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p phasesModel) update(msg tea.Msg) (phasesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(curriculum.Phases())-1 {
				p.cursor++
			}
		}
	}
	return p, nil
}

func (p phasesModel) view() string {
	if p.width < 20 {
		return "Terminal too small"
	}
	w := p.width - 4

	progress := p.tracker.Stats().PhaseProgress

	var cards []string
	for i, phase := range curriculum.Phases() {
		cards = append(cards, p.renderPhaseCard(phase, progress[phase.ID], i == p.cursor, w))
	}
	cards = append(cards, mutedStyle.Render("  ↑/↓: move"))

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (p phasesModel) renderPhaseCard(phase curriculum.Phase, percent float64, selected bool, w int) string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(phase.Color)).Render("●")
	header := fmt.Sprintf("%s %s  %s",
		dot,
		titleStyle.Render(phase.Name),
		mutedStyle.Render(fmt.Sprintf("%s → %s  (%d days, %s/day)",
			phase.Start.Format(curriculum.DateLayout),
			phase.End.Format(curriculum.DateLayout),
			phase.Days(),
			formatHours(phase.TotalHours()),
		)),
	)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, mutedStyle.Render("  "+phase.Description))
	rows = append(rows, "")

	for _, tpl := range phase.Templates {
		glyph := categoryStyle(tpl.Category).Render(categoryGlyph(tpl.Category))
		rows = append(rows, fmt.Sprintf("  %s %-28s %s", glyph, tpl.Name, mutedStyle.Render(formatHours(tpl.Hours))))
	}

	rows = append(rows, "")
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(phase.Color))
	rows = append(rows, fmt.Sprintf("  %s %s",
		renderBar(percent, min(w-14, 40), barStyle),
		highlightStyle.Render(fmt.Sprintf("%.0f%%", percent)),
	))

	style := panelStyle
	if selected {
		style = activePanelStyle
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

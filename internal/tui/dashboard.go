package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ndelorme/certtrack/internal/tracker"
)

// dashboardModel shows the aggregate stats panel and today's tasks.
type dashboardModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int
}

func newDashboardModel(t *tracker.Tracker) dashboardModel {
	return dashboardModel{tracker: t}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		today := d.tracker.TodayPlan()

		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if today != nil && d.cursor < len(today.Tasks)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if today == nil || d.cursor >= len(today.Tasks) {
				return d, nil
			}
			id := today.Tasks[d.cursor].ID
			task, ok := d.tracker.Toggle(id)
			if !ok {
				return d, nil
			}
			return d, func() tea.Msg {
				return taskToggledMsg{name: task.Name, hours: task.Hours, completed: task.Completed}
			}
		}
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	statsPanel := d.renderStatsPanel(contentWidth)
	todayPanel := d.renderTodayPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, statsPanel, todayPanel)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	st := d.tracker.Stats()

	hoursPct := 0.0
	if st.TotalHours > 0 {
		hoursPct = st.CompletedHours / st.TotalHours * 100
	}

	hoursLine := fmt.Sprintf("%s %s / %s  (%.0f%%)",
		titleStyle.Render("Hours"),
		statValueStyle.Render(formatHours(st.CompletedHours)),
		formatHours(st.TotalHours),
		hoursPct,
	)
	hoursBar := "  " + renderBar(hoursPct, min(w-10, 40), highlightStyle)

	daysLine := fmt.Sprintf("%s %s / %d fully completed",
		titleStyle.Render("Days "),
		statValueStyle.Render(fmt.Sprintf("%d", st.CompletedDays)),
		st.TotalDays,
	)

	streakLine := fmt.Sprintf("%s %s",
		titleStyle.Render("Streak"),
		warningStyle.Render(fmt.Sprintf("✻ %d consecutive days", st.Streak)),
	)
	if st.Streak == 0 {
		streakLine = fmt.Sprintf("%s %s",
			titleStyle.Render("Streak"),
			mutedStyle.Render("none yet — finish today to start one"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		hoursLine,
		hoursBar,
		"",
		daysLine,
		streakLine,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	today := d.tracker.TodayPlan()

	title := titleStyle.Render("Today") + "  " + mutedStyle.Render(d.tracker.Today())

	if today == nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No session planned today. See the Schedule tab for what's next."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, t := range today.Tasks {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		glyph := categoryStyle(t.Category).Render(categoryGlyph(t.Category))
		name := t.Name
		if t.Completed {
			name = mutedStyle.Strikethrough(true).Render(name)
		} else {
			name = style.Render(name)
		}
		rows = append(rows, fmt.Sprintf("%s%s %s %s %s",
			cursor, checkbox(t.Completed), glyph, name, mutedStyle.Render(formatHours(t.Hours)),
		))
	}

	if today.Completed() {
		rows = append(rows, "")
		rows = append(rows, successStyle.Render("  All done for today ✔"))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  ↑/↓: move"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

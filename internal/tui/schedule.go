package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ndelorme/certtrack/internal/plan"
	"github.com/ndelorme/certtrack/internal/tracker"
)

// scheduleWindow is how many upcoming and how many recent days are
// shown, matching the original dashboard's 7+7 card layout.
const scheduleWindow = 7

// scheduleModel shows the next and the most recent day cards. ←/→
// move between days, ↑/↓ between the selected day's tasks.
type scheduleModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	dayCursor  int
	taskCursor int
}

func newScheduleModel(t *tracker.Tracker) scheduleModel {
	return scheduleModel{tracker: t}
}

func (s *scheduleModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// visibleDays is the navigable day list: upcoming days soonest first,
// then recent days most recent first.
func (s scheduleModel) visibleDays() []plan.DayPlan {
	days := s.tracker.Upcoming(scheduleWindow)
	return append(days, s.tracker.Recent(scheduleWindow)...)
}

func (s scheduleModel) update(msg tea.Msg) (scheduleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		days := s.visibleDays()
		if s.dayCursor >= len(days) {
			s.dayCursor = max(0, len(days)-1)
			s.taskCursor = 0
		}

		switch {
		case key.Matches(msg, keys.Left):
			if s.dayCursor > 0 {
				s.dayCursor--
				s.taskCursor = 0
			}
		case key.Matches(msg, keys.Right):
			if s.dayCursor < len(days)-1 {
				s.dayCursor++
				s.taskCursor = 0
			}
		case key.Matches(msg, keys.Up):
			if s.taskCursor > 0 {
				s.taskCursor--
			}
		case key.Matches(msg, keys.Down):
			if len(days) > 0 && s.taskCursor < len(days[s.dayCursor].Tasks)-1 {
				s.taskCursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if len(days) == 0 {
				return s, nil
			}
			day := days[s.dayCursor]
			if s.taskCursor >= len(day.Tasks) {
				return s, nil
			}
			task, ok := s.tracker.Toggle(day.Tasks[s.taskCursor].ID)
			if !ok {
				return s, nil
			}
			return s, func() tea.Msg {
				return taskToggledMsg{name: task.Name, hours: task.Hours, completed: task.Completed}
			}
		}
	}
	return s, nil
}

func (s scheduleModel) view() string {
	if s.width < 20 {
		return "Terminal too small"
	}
	w := s.width - 4

	upcoming := s.tracker.Upcoming(scheduleWindow)
	recent := s.tracker.Recent(scheduleWindow)

	if len(upcoming) == 0 && len(recent) == 0 {
		return panelStyle.Width(w).Render(mutedStyle.Render("The schedule is empty."))
	}

	var sections []string
	if len(upcoming) > 0 {
		sections = append(sections, titleStyle.Render("Upcoming"))
		sections = append(sections, s.renderDayRows(upcoming, 0, w))
	}
	if len(recent) > 0 {
		sections = append(sections, titleStyle.Render("Previous"))
		sections = append(sections, s.renderDayRows(recent, len(upcoming), w))
	}
	sections = append(sections, mutedStyle.Render("  ←/→: day  ↑/↓: task  space: toggle"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDayRows renders one card per day. offset is the index of the
// section's first day within visibleDays, so the cursor lines up.
func (s scheduleModel) renderDayRows(days []plan.DayPlan, offset, w int) string {
	var cards []string
	for i, day := range days {
		selected := offset+i == s.dayCursor
		cards = append(cards, s.renderDayCard(day, selected, w))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (s scheduleModel) renderDayCard(day plan.DayPlan, selected bool, w int) string {
	today := s.tracker.Today()

	header := titleStyle.Render(day.Date)
	if day.Date == today {
		header += "  " + highlightStyle.Render("today")
	}
	header += "  " + mutedStyle.Render(fmt.Sprintf("phase %d", day.Phase))
	if day.Completed() {
		header += "  " + successStyle.Render("✔ complete")
	}

	var rows []string
	rows = append(rows, header)
	for ti, t := range day.Tasks {
		cursor := "  "
		style := normalItemStyle
		if selected && ti == s.taskCursor {
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

	style := panelStyle
	if selected {
		style = activePanelStyle
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

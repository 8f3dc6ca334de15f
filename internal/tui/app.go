package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ndelorme/certtrack/internal/export"
	"github.com/ndelorme/certtrack/internal/tracker"
)

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	resetActive  bool
	resetForm    *huh.Form
	resetConfirm *bool

	dashboard dashboardModel
	schedule  scheduleModel
	phases    phasesModel
	reports   reportsModel

	help   help.Model
	status string
}

func NewApp(t *tracker.Tracker) App {
	h := help.New()
	h.ShowAll = false

	confirm := false
	return App{
		tracker:      t,
		activeView:   viewDashboard,
		resetConfirm: &confirm,
		dashboard:    newDashboardModel(t),
		schedule:     newScheduleModel(t),
		phases:       newPhasesModel(t),
		reports:      newReportsModel(t),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.schedule.setSize(a.width, contentHeight)
		a.phases.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.resetActive {
			return a.updateResetForm(msg)
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Reset):
			return a.showResetForm()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewSchedule
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewPhases
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewReports
			a.reports.rebuild()
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			if a.activeView == viewReports {
				a.reports.rebuild()
			}
			return a, nil
		}

	case taskToggledMsg:
		if msg.completed {
			a.status = fmt.Sprintf("Done: %s (%s)", msg.name, formatHours(msg.hours))
		} else {
			a.status = fmt.Sprintf("Unchecked: %s", msg.name)
		}
		a.reports.rebuild()
		return a, nil

	case progressResetMsg:
		a.status = "Progress reset — every task is unchecked again"
		a.reports.rebuild()
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewSchedule:
		a.schedule, cmd = a.schedule.update(msg)
	case viewPhases:
		a.phases, cmd = a.phases.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	}
	return a, cmd
}

// --- Reset confirmation ---

func (a App) showResetForm() (tea.Model, tea.Cmd) {
	*a.resetConfirm = false
	a.resetForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all progress?").
				Description("Every task will be unchecked and the saved record deleted.").
				Affirmative("Reset").
				Negative("Keep").
				Value(a.resetConfirm),
		),
	).WithShowHelp(true).WithShowErrors(true)

	a.resetActive = true
	return a, a.resetForm.Init()
}

func (a App) updateResetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			a.resetActive = false
			a.resetForm = nil
			return a, nil
		}
	}

	form, cmd := a.resetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.resetForm = f
	}

	if a.resetForm.State == huh.StateCompleted {
		a.resetActive = false
		a.resetForm = nil
		if *a.resetConfirm {
			a.tracker.Reset()
			return a, func() tea.Msg { return progressResetMsg{} }
		}
		return a, nil
	}

	return a, cmd
}

// --- View ---

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewSchedule:
		content = a.schedule.view()
	case viewPhases:
		content = a.phases.view()
	case viewReports:
		content = a.reports.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.resetActive && a.resetForm != nil {
		content = a.renderResetForm()
	} else if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("certtrack")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Streak indicator in footer
	streakInfo := ""
	if st := a.tracker.Stats(); st.Streak > 0 {
		streakInfo = warningStyle.Render(fmt.Sprintf(" ✻ %d day streak", st.Streak))
	}

	left := footerStyle.Render(helpView)
	right := streakInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderResetForm() string {
	title := titleStyle.Render("Reset Progress")
	formView := a.resetForm.View()
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
	return activePanelStyle.Width(a.width - 4).Render(content)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		plans := a.tracker.Plans()

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("certtrack-export-%s.csv", dateStr))
			if err := export.ToCSV(plans, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("certtrack-export-%s.json", dateStr))
			if err := export.ToJSON(plans, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}

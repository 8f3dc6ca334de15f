package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ndelorme/certtrack/internal/curriculum"
	"github.com/ndelorme/certtrack/internal/plan"
	"github.com/ndelorme/certtrack/internal/tracker"
)

// reportsModel charts completed versus planned hours for a 7-day
// window, with ←/→ paging backward through the schedule.
type reportsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	offset int // 7-day blocks back from the current window (0 = current)

	chart barchart.Model
}

func newReportsModel(t *tracker.Tracker) reportsModel {
	return reportsModel{
		tracker: t,
		chart:   barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.rebuild()
}

// dateRange is the half-open [from, to) window currently charted.
func (r reportsModel) dateRange() (time.Time, time.Time) {
	today, err := time.ParseInLocation(curriculum.DateLayout, r.tracker.Today(), time.UTC)
	if err != nil {
		today = time.Now().UTC().Truncate(24 * time.Hour)
	}
	end := today.AddDate(0, 0, 1-7*r.offset)
	start := end.AddDate(0, 0, -7)
	return start, end
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			r.rebuild()
			return r, nil
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			r.rebuild()
			return r, nil
		}
	}
	return r, nil
}

// windowDays returns the plans falling inside the charted window.
func (r reportsModel) windowDays() []plan.DayPlan {
	from, to := r.dateRange()
	fromStr := from.Format(curriculum.DateLayout)
	toStr := to.Format(curriculum.DateLayout)

	var out []plan.DayPlan
	for _, d := range r.tracker.Plans() {
		if d.Date >= fromStr && d.Date < toStr {
			out = append(out, d)
		}
	}
	return out
}

func (r *reportsModel) rebuild() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()
	days := r.windowDays()

	byDate := make(map[string]plan.DayPlan, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(curriculum.DateLayout)
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		if day, ok := byDate[dateStr]; ok {
			done := day.CompletedHours()
			remaining := day.Hours() - done
			if done > 0 {
				values = append(values, barchart.BarValue{
					Name:  "done",
					Value: done,
					Style: lipgloss.NewStyle().Foreground(colorSuccess),
				})
			}
			if remaining > 0 {
				values = append(values, barchart.BarValue{
					Name:  "planned",
					Value: remaining,
					Style: lipgloss.NewStyle().Foreground(colorSubtle),
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", dateLabel,
	)

	chartView := r.chart.View()
	tableView := r.renderWeekTable(w)
	legend := fmt.Sprintf("  %s done  %s planned",
		successStyle.Render("■"),
		lipgloss.NewStyle().Foreground(colorSubtle).Render("■"),
	)
	nav := mutedStyle.Render("  ←/→: navigate")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderWeekTable(w int) string {
	days := r.windowDays()
	if len(days) == 0 {
		return mutedStyle.Render("  No scheduled days in this period")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %-7s %10s %10s %8s", "Date", "Phase", "Done", "Planned", "Day"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 52))))

	for _, d := range days {
		state := mutedStyle.Render("open")
		if d.Completed() {
			state = successStyle.Render("✔ done")
		}
		rows = append(rows, fmt.Sprintf("  %-12s %-7d %10s %10s %8s",
			d.Date, d.Phase, formatHours(d.CompletedHours()), formatHours(d.Hours()), state,
		))
	}

	return strings.Join(rows, "\n")
}

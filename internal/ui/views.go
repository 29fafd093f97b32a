package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jcalgo/jcal/internal/grid"
	"github.com/jcalgo/jcal/internal/render"
	"github.com/jcalgo/jcal/internal/strftime"
)

func (m *Model) viewCalendar() string {
	months := m.renderMonths()

	body := months
	info := m.renderDayInfo()
	if lipgloss.Width(months)+lipgloss.Width(info)+2 <= m.width {
		body = lipgloss.JoinHorizontal(lipgloss.Top, months, "  ", info)
	} else if m.months == 1 {
		body = lipgloss.JoinVertical(lipgloss.Left, months, "", info)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(m.keys))
	gap := m.height - lipgloss.Height(content) - 1
	if gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m *Model) renderMonths() string {
	var opts []grid.Option
	if m.weekNumbers {
		opts = append(opts, grid.WithWeekNumbers())
	}

	anchors := grid.Span(m.selected, m.months, true)
	grids := make([]grid.MonthGrid, 0, len(anchors))
	for _, a := range anchors {
		g, err := grid.BuildMonth(a.System(), a.Year(), a.Month(), m.weekStart, opts...)
		if err != nil {
			m.logger.Warnw("cannot build month", "month", a, "error", err)
			continue
		}
		grids = append(grids, g)
	}

	out := m.renderer.Calendar(grids, render.Options{
		WeekNumbers:  m.weekNumbers,
		Columns:      len(grids),
		YearInHeader: true,
		Today:        m.today,
		Selected:     m.selected,
	})
	return strings.TrimRight(out, "\n")
}

func (m *Model) viewHelp() string {
	h := m.help
	h.ShowAll = true

	help := []string{
		m.styles.Header.Render("jcal Help"),
		"",
		h.View(m.keys),
		"",
		m.styles.Help.Render("In the go-to prompt: a date such as 1403-01-01, today, in 3 days, next friday"),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) viewGoto() string {
	var sections []string

	header := m.styles.Header.Render("Go to date")
	sections = append(sections, header)
	sections = append(sections, "")

	prompt := m.styles.Normal.Render(fmt.Sprintf("Enter a %s date (e.g. '1403-12-29', 'tomorrow', 'next friday'):", m.system))
	sections = append(sections, prompt)

	// Show input with cursor
	input := string(m.inputBuffer[:m.cursorPos]) + "█" + string(m.inputBuffer[m.cursorPos:])

	inputLine := m.styles.Selected.Render(input)
	sections = append(sections, inputLine)
	sections = append(sections, "")

	help := m.styles.Help.Render("Enter to go, Esc to cancel")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf(" %s | %s", strftime.Format("%a %F", m.selected), m.system)

	right := "? for help | q to quit"

	if m.message != "" {
		right = m.message
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Status.Render(left + middle + right)
}

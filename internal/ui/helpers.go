package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/grid"
	"github.com/jcalgo/jcal/internal/strftime"
)

const infoBoxWidth = 34

var borderStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("238"))

// otherSystem returns the calendar that is not sys.
func otherSystem(sys calendar.System) calendar.System {
	if sys == calendar.Jalali {
		return calendar.Gregorian
	}
	return calendar.Jalali
}

// dayInfoLines describes the selected day: its date in both calendars, its
// position in the year and its distance from today.
func (m *Model) dayInfoLines() []string {
	d := m.selected
	lines := []string{
		fmt.Sprintf("%s: %s", d.System(), strftime.Format("%-d %B %Y", d)),
	}

	if other, err := calendar.Convert(d, otherSystem(d.System())); err == nil {
		lines = append(lines, fmt.Sprintf("%s: %s", other.System(), strftime.Format("%-d %B %Y", other)))
	} else {
		lines = append(lines, fmt.Sprintf("%s: out of range", otherSystem(d.System())))
	}

	lines = append(lines, fmt.Sprintf("Day %d of %d", d.DayOfYear(), calendar.YearLength(d.System(), d.Year())))

	if week, err := grid.WeekOf(d, m.weekStart); err == nil {
		total, _ := grid.WeeksInYear(d.System(), d.Year(), m.weekStart)
		lines = append(lines, fmt.Sprintf("Week %d of %d (from %s)", week, total, calendar.WeekdayName(m.weekStart)))
	}

	if !m.today.IsZero() {
		lines = append(lines, relativeDays(int(d.EpochDay()-m.today.EpochDay())))
	}
	return lines
}

func relativeDays(n int) string {
	switch {
	case n == 0:
		return "Today"
	case n == 1:
		return "Tomorrow"
	case n == -1:
		return "Yesterday"
	case n > 0:
		return fmt.Sprintf("In %d days", n)
	default:
		return fmt.Sprintf("%d days ago", -n)
	}
}

// renderDayInfo renders the details of the selected day in a box.
func (m *Model) renderDayInfo() string {
	var lines []string

	// Wrap the header to fit within the box width
	header := strftime.Format("%A, %-d %B %Y", m.selected)
	lines = append(lines, m.styles.Header.Render(wordwrap.String(header, infoBoxWidth-2)))
	lines = append(lines, "")

	for _, line := range m.dayInfoLines() {
		lines = append(lines, m.styles.Normal.Render(wordwrap.String(line, infoBoxWidth-2)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return borderStyle.Width(infoBoxWidth).Render(content)
}

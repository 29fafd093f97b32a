package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/grid"
)

const (
	cellDelimiter  = " "
	monthDelimiter = "   "
	weekNumWidth   = 2
	bodyRows       = 6
)

// Options control the text layout of a run of months.
type Options struct {
	WeekNumbers bool
	// Ordinal shows the day of the year instead of the day of the month.
	Ordinal  bool
	Vertical bool
	// Columns is the number of months per line; values below 1 mean one.
	Columns int
	// YearInHeader appends the year to every month title.
	YearInHeader bool
	// YearHeader prints the year once, centered above all months.
	YearHeader bool
	Today      calendar.Date
	Selected   calendar.Date
	// HighlightWeek marks the days of the week with this number.
	HighlightWeek int
}

func (o Options) cellWidth() int {
	if o.Ordinal {
		return 3
	}
	return 2
}

func (o Options) columns() int {
	if o.Columns < 1 {
		return 1
	}
	return o.Columns
}

// BlockWidth is the visible width of one month block.
func BlockWidth(opts Options) int {
	cw := opts.cellWidth()
	if opts.Vertical {
		return bodyRows*cw + bodyRows - 1
	}
	w := grid.DaysPerWeek*cw + grid.DaysPerWeek - 1
	if opts.WeekNumbers {
		w += weekNumWidth + len(cellDelimiter)
	}
	return w
}

func prefixWidth(opts Options) int {
	if !opts.Vertical {
		return 0
	}
	return opts.cellWidth() + len(cellDelimiter)
}

// ColumnsInWidth returns how many month blocks fit side by side in width
// terminal columns. At least one is always returned.
func ColumnsInWidth(width int, opts Options) int {
	bw := BlockWidth(opts)
	avail := width - prefixWidth(opts) - bw
	if avail < 0 {
		return 1
	}
	return 1 + avail/(bw+len(monthDelimiter))
}

// Renderer lays out month grids as styled text.
type Renderer struct {
	styles Styles
}

func New(r *lipgloss.Renderer) *Renderer {
	return &Renderer{styles: DefaultStyles(r)}
}

func (r *Renderer) SetStyles(s Styles) { r.styles = s }

func (r *Renderer) Styles() Styles { return r.styles }

// Calendar lays out months in rows of opts.Columns blocks. Trailing blanks are
// trimmed from every line.
func (r *Renderer) Calendar(months []grid.MonthGrid, opts Options) string {
	if len(months) == 0 {
		return ""
	}

	var b strings.Builder
	cols := opts.columns()
	if cols > len(months) {
		cols = len(months)
	}

	if opts.YearHeader {
		total := prefixWidth(opts) + cols*BlockWidth(opts) + (cols-1)*len(monthDelimiter)
		title := fmt.Sprintf("%04d", months[0].Year)
		writeLine(&b, r.styles.Header.Render(center(title, total)))
		b.WriteString("\n")
	}

	for start := 0; start < len(months); start += cols {
		if start > 0 {
			b.WriteString("\n")
		}
		end := min(start+cols, len(months))

		blocks := make([][]string, 0, end-start)
		for _, g := range months[start:end] {
			blocks = append(blocks, r.Block(g, opts))
		}
		prefixes := r.prefixes(months[start], len(blocks[0]), opts)

		for i := range blocks[0] {
			parts := make([]string, len(blocks))
			for j, block := range blocks {
				parts[j] = block[i]
			}
			writeLine(&b, prefixes[i]+strings.Join(parts, monthDelimiter))
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(strings.TrimRight(line, " "))
	b.WriteString("\n")
}

// prefixes returns the weekday labels that lead each line in vertical mode.
func (r *Renderer) prefixes(g grid.MonthGrid, n int, opts Options) []string {
	out := make([]string, n)
	if !opts.Vertical {
		return out
	}
	cw := opts.cellWidth()
	blank := strings.Repeat(" ", cw+len(cellDelimiter))
	for i := range out {
		out[i] = blank
	}
	for i, wd := range g.Weekdays() {
		label := fmt.Sprintf("%-*s", cw, calendar.WeekdayAbbr(wd, 2))
		out[i+1] = r.styles.Weekday.Render(label) + cellDelimiter
	}
	return out
}

// Block returns the lines of a single month, each padded to BlockWidth.
func (r *Renderer) Block(g grid.MonthGrid, opts Options) []string {
	if opts.Vertical {
		return r.verticalBlock(g, opts)
	}
	return r.horizontalBlock(g, opts)
}

func (r *Renderer) title(g grid.MonthGrid, opts Options) string {
	title := g.Title()
	if opts.YearInHeader {
		title = fmt.Sprintf("%s %04d", title, g.Year)
	}
	return r.styles.Header.Render(center(title, BlockWidth(opts)))
}

func (r *Renderer) horizontalBlock(g grid.MonthGrid, opts Options) []string {
	cw := opts.cellWidth()
	width := BlockWidth(opts)
	lines := make([]string, 0, bodyRows+2)
	lines = append(lines, r.title(g, opts))

	var wnPrefix string
	if opts.WeekNumbers {
		wnPrefix = strings.Repeat(" ", weekNumWidth) + cellDelimiter
	}

	labels := make([]string, 0, grid.DaysPerWeek)
	for _, wd := range g.Weekdays() {
		labels = append(labels, fmt.Sprintf("%*s", cw, calendar.WeekdayAbbr(wd, 2)))
	}
	lines = append(lines, wnPrefix+r.styles.Weekday.Render(strings.Join(labels, cellDelimiter)))

	for i := 0; i < bodyRows; i++ {
		var row grid.WeekRow
		if i < len(g.Rows) {
			row = g.Rows[i]
		}
		cells := make([]string, 0, grid.DaysPerWeek)
		for _, cell := range row.Cells {
			cells = append(cells, r.cell(cell, row.Week, opts))
		}
		line := strings.Join(cells, cellDelimiter)
		if opts.WeekNumbers {
			line = r.weekNumber(g, row, opts) + cellDelimiter + line
		}
		lines = append(lines, padding.String(line, uint(width)))
	}
	return lines
}

func (r *Renderer) verticalBlock(g grid.MonthGrid, opts Options) []string {
	width := BlockWidth(opts)
	lines := make([]string, 0, grid.DaysPerWeek+2)
	lines = append(lines, r.title(g, opts))

	rows := make([]grid.WeekRow, bodyRows)
	copy(rows, g.Rows)

	for day := 0; day < grid.DaysPerWeek; day++ {
		cells := make([]string, 0, bodyRows)
		for _, row := range rows {
			cells = append(cells, r.cell(row.Cells[day], row.Week, opts))
		}
		lines = append(lines, padding.String(strings.Join(cells, cellDelimiter), uint(width)))
	}

	if opts.WeekNumbers {
		nums := make([]string, 0, bodyRows)
		for _, row := range rows {
			nums = append(nums, strings.Repeat(" ", opts.cellWidth()-weekNumWidth)+r.weekNumber(g, row, opts))
		}
		lines = append(lines, padding.String(strings.Join(nums, cellDelimiter), uint(width)))
	}
	return lines
}

// weekNumber labels a row. The leading partial row of a year (week 0) shows
// the last week number of the previous year instead.
func (r *Renderer) weekNumber(g grid.MonthGrid, row grid.WeekRow, opts Options) string {
	if !row.HasDays() {
		return strings.Repeat(" ", weekNumWidth)
	}
	week := row.Week
	if week == 0 {
		week = carriedWeek(g)
	}
	text := fmt.Sprintf("%*d", weekNumWidth, week)
	if highlighted(week, opts) {
		return r.styles.Today.Render(text)
	}
	return r.styles.WeekNumber.Render(text)
}

func carriedWeek(g grid.MonthGrid) int {
	n, err := grid.WeeksInYear(g.System, g.Year-1, g.WeekStart)
	if err != nil {
		return 0
	}
	return n
}

func highlighted(week int, opts Options) bool {
	return opts.HighlightWeek > 0 && week == opts.HighlightWeek
}

func (r *Renderer) cell(cell grid.Cell, week int, opts Options) string {
	cw := opts.cellWidth()
	if cell.IsEmpty() {
		return strings.Repeat(" ", cw)
	}
	d := cell.Date()
	n := d.Day()
	if opts.Ordinal {
		n = d.DayOfYear()
	}
	text := fmt.Sprintf("%*d", cw, n)

	switch {
	case sameDay(d, opts.Selected):
		return r.styles.Selected.Render(text)
	case sameDay(d, opts.Today), highlighted(week, opts):
		return r.styles.Today.Render(text)
	case IsWeekend(d.System(), d.Weekday()):
		return r.styles.Weekend.Render(text)
	}
	return r.styles.Normal.Render(text)
}

func sameDay(d, other calendar.Date) bool {
	return !other.IsZero() && d.Compare(other) == 0
}

// IsWeekend reports whether wd is a rest day: Friday in the Jalali calendar,
// Saturday and Sunday in the Gregorian one.
func IsWeekend(sys calendar.System, wd time.Weekday) bool {
	if sys == calendar.Jalali {
		return wd == time.Friday
	}
	return wd == time.Saturday || wd == time.Sunday
}

// center pads s on both sides to width, putting the odd blank on the right.
func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return padding.String(strings.Repeat(" ", left)+s, uint(width))
}

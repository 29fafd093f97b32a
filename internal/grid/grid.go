// Package grid lays out months and years as rows of seven cells starting at
// a configurable day of the week, and numbers the weeks of a year.
package grid

import (
	"fmt"
	"time"

	"github.com/jcalgo/jcal/internal/calendar"
)

// DaysPerWeek is the width of every row.
const DaysPerWeek = 7

// Cell is either empty padding or a day. The zero Cell is empty.
type Cell struct {
	date calendar.Date
}

func DayCell(d calendar.Date) Cell { return Cell{date: d} }

func (c Cell) IsEmpty() bool { return c.date.IsZero() }

// Date returns the day held by c, or the zero Date for empty cells.
func (c Cell) Date() calendar.Date { return c.date }

// WeekRow is one line of a grid. Week is 0 when the row is unnumbered.
type WeekRow struct {
	Cells [DaysPerWeek]Cell
	Week  int
}

// IsFull reports whether the row has no empty cells.
func (r WeekRow) IsFull() bool {
	for _, c := range r.Cells {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

// HasDays reports whether at least one cell holds a day.
func (r WeekRow) HasDays() bool {
	for _, c := range r.Cells {
		if !c.IsEmpty() {
			return true
		}
	}
	return false
}

// FirstDay returns the earliest day in the row.
func (r WeekRow) FirstDay() (calendar.Date, bool) {
	for _, c := range r.Cells {
		if !c.IsEmpty() {
			return c.date, true
		}
	}
	return calendar.Date{}, false
}

// Contains reports whether d appears in the row.
func (r WeekRow) Contains(d calendar.Date) bool {
	for _, c := range r.Cells {
		if !c.IsEmpty() && c.date == d {
			return true
		}
	}
	return false
}

type MonthGrid struct {
	System    calendar.System
	Year      int
	Month     int
	WeekStart time.Weekday
	Rows      []WeekRow
}

// Title is the month name, e.g. "Esfand".
func (g MonthGrid) Title() string {
	return calendar.MonthName(g.System, g.Month)
}

// Weekdays lists the column weekdays in order, starting at WeekStart.
func (g MonthGrid) Weekdays() [DaysPerWeek]time.Weekday {
	return Weekdays(g.WeekStart)
}

// Days returns every day of the month in grid order.
func (g MonthGrid) Days() []calendar.Date {
	var days []calendar.Date
	for _, r := range g.Rows {
		for _, c := range r.Cells {
			if !c.IsEmpty() {
				days = append(days, c.date)
			}
		}
	}
	return days
}

type YearGrid struct {
	System    calendar.System
	Year      int
	WeekStart time.Weekday
	Months    [calendar.MonthsPerYear]MonthGrid
}

// Weekdays lists the seven days of the week beginning at start.
func Weekdays(start time.Weekday) [DaysPerWeek]time.Weekday {
	var out [DaysPerWeek]time.Weekday
	for i := range out {
		out[i] = time.Weekday((int(start) + i) % DaysPerWeek)
	}
	return out
}

type options struct {
	weekNumbers bool
}

// Option configures BuildMonth and BuildYear.
type Option func(*options)

// WithWeekNumbers numbers every row from the year it belongs to.
func WithWeekNumbers() Option {
	return func(o *options) { o.weekNumbers = true }
}

// leadingBlanks is the number of empty cells before a day falling on wd.
func leadingBlanks(wd, weekStart time.Weekday) int {
	return (int(wd) - int(weekStart) + DaysPerWeek) % DaysPerWeek
}

func checkWeekStart(weekStart time.Weekday) error {
	_, err := calendar.ValidateWeekStart(int(weekStart))
	return err
}

// BuildMonth lays out a month. The first row is padded with empty cells up
// to the weekday of day 1, the last row is padded to seven cells, and the
// result has between four and six rows.
func BuildMonth(sys calendar.System, year, month int, weekStart time.Weekday, opts ...Option) (MonthGrid, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkWeekStart(weekStart); err != nil {
		return MonthGrid{}, err
	}
	first, err := calendar.Validate(sys, year, month, 1)
	if err != nil {
		return MonthGrid{}, err
	}

	g := MonthGrid{System: sys, Year: year, Month: month, WeekStart: weekStart}
	g.Rows = fill(first, first.MonthLength(), weekStart)

	if o.weekNumbers {
		numbered, err := numberedYear(sys, year, weekStart)
		if err != nil {
			return MonthGrid{}, err
		}
		applyWeeks(&g, numbered)
	}
	return g, nil
}

// BuildYear lays out all twelve months of a year with the same week start.
func BuildYear(sys calendar.System, year int, weekStart time.Weekday, opts ...Option) (YearGrid, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkWeekStart(weekStart); err != nil {
		return YearGrid{}, err
	}
	if _, err := calendar.Validate(sys, year, 1, 1); err != nil {
		return YearGrid{}, err
	}

	var numbered []WeekRow
	if o.weekNumbers {
		var err error
		if numbered, err = numberedYear(sys, year, weekStart); err != nil {
			return YearGrid{}, err
		}
	}

	yg := YearGrid{System: sys, Year: year, WeekStart: weekStart}
	for m := 1; m <= calendar.MonthsPerYear; m++ {
		first := calendar.MustDate(sys, year, m, 1)
		g := MonthGrid{System: sys, Year: year, Month: m, WeekStart: weekStart}
		g.Rows = fill(first, first.MonthLength(), weekStart)
		if numbered != nil {
			applyWeeks(&g, numbered)
		}
		yg.Months[m-1] = g
	}
	return yg, nil
}

// fill lays n consecutive days starting at first into rows.
func fill(first calendar.Date, n int, weekStart time.Weekday) []WeekRow {
	lead := leadingBlanks(first.Weekday(), weekStart)
	rows := make([]WeekRow, (lead+n+DaysPerWeek-1)/DaysPerWeek)
	start := first.EpochDay()
	for i := 0; i < n; i++ {
		d, err := calendar.FromEpochDay(first.System(), start+calendar.EpochDay(i))
		if err != nil {
			panic(fmt.Sprintf("grid: day %d after %s: %v", i, first, err))
		}
		pos := lead + i
		rows[pos/DaysPerWeek].Cells[pos%DaysPerWeek] = DayCell(d)
	}
	return rows
}

func numberedYear(sys calendar.System, year int, weekStart time.Weekday) ([]WeekRow, error) {
	rows, err := YearWeeks(sys, year, weekStart)
	if err != nil {
		return nil, err
	}
	return NumberWeeks(rows), nil
}

// applyWeeks copies week numbers from the numbered year rows onto the rows
// of g, matching each month row by the year row holding its first day.
func applyWeeks(g *MonthGrid, year []WeekRow) {
	for i := range g.Rows {
		d, ok := g.Rows[i].FirstDay()
		if !ok {
			continue
		}
		g.Rows[i].Week = year[yearRowIndex(d, g.WeekStart)].Week
	}
}

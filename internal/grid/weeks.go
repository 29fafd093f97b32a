package grid

import (
	"fmt"
	"time"

	"github.com/jcalgo/jcal/internal/calendar"
)

// YearWeeks lays the whole year out as one continuous run of rows. Only the
// first row (before day 1 of month 1) and the last row (after the final day
// of month 12) can contain empty cells.
func YearWeeks(sys calendar.System, year int, weekStart time.Weekday) ([]WeekRow, error) {
	if err := checkWeekStart(weekStart); err != nil {
		return nil, err
	}
	first, err := calendar.Validate(sys, year, 1, 1)
	if err != nil {
		return nil, err
	}
	return fill(first, calendar.YearLength(sys, year), weekStart), nil
}

// NumberWeeks returns a copy of rows with week numbers assigned. The first
// row without empty cells is week 1, rows before it are week 0, and every
// later row, including a partial last row, counts up from there.
func NumberWeeks(rows []WeekRow) []WeekRow {
	out := make([]WeekRow, len(rows))
	copy(out, rows)

	week := 0
	for i := range out {
		if week == 0 && out[i].IsFull() {
			week = 1
		} else if week > 0 {
			week++
		}
		out[i].Week = week
	}
	return out
}

// yearRowIndex is the index of the YearWeeks row holding d.
func yearRowIndex(d calendar.Date, weekStart time.Weekday) int {
	jan1, _ := d.WithDayOfYear(1)
	lead := leadingBlanks(jan1.Weekday(), weekStart)
	return (lead + d.DayOfYear() - 1) / DaysPerWeek
}

// weekAtRow mirrors NumberWeeks for a single row: row 0 is week 1 when the
// year starts exactly on weekStart and week 0 otherwise.
func weekAtRow(row int, jan1 calendar.Date, weekStart time.Weekday) int {
	if leadingBlanks(jan1.Weekday(), weekStart) == 0 {
		return row + 1
	}
	return row
}

// WeekOf returns the week number of d within its own year.
func WeekOf(d calendar.Date, weekStart time.Weekday) (int, error) {
	if err := checkWeekStart(weekStart); err != nil {
		return 0, err
	}
	if d.IsZero() {
		return 0, fmt.Errorf("week of zero date: %w", calendar.ErrOutOfRange)
	}
	jan1, _ := d.WithDayOfYear(1)
	return weekAtRow(yearRowIndex(d, weekStart), jan1, weekStart), nil
}

// WeeksInYear returns the number of the last week of year.
func WeeksInYear(sys calendar.System, year int, weekStart time.Weekday) (int, error) {
	first, err := calendar.Validate(sys, year, calendar.MonthsPerYear, 1)
	if err != nil {
		return 0, err
	}
	return WeekOf(first.LastOfMonth(), weekStart)
}

// FirstDayOfWeek returns the first day of year that falls in week n. Week 0
// exists only when the year does not begin on weekStart.
func FirstDayOfWeek(sys calendar.System, year, n int, weekStart time.Weekday) (calendar.Date, error) {
	if err := checkWeekStart(weekStart); err != nil {
		return calendar.Date{}, err
	}
	jan1, err := calendar.Validate(sys, year, 1, 1)
	if err != nil {
		return calendar.Date{}, err
	}
	lead := leadingBlanks(jan1.Weekday(), weekStart)
	row := n
	minWeek := 0
	if lead == 0 {
		row = n - 1
		minWeek = 1
	}
	maxWeek, err := WeeksInYear(sys, year, weekStart)
	if err != nil {
		return calendar.Date{}, err
	}
	if n < minWeek || n > maxWeek {
		return calendar.Date{}, &calendar.RangeError{System: sys, Field: "week", Value: n, Min: minWeek, Max: maxWeek}
	}
	if row == 0 {
		return jan1, nil
	}
	return jan1.WithDayOfYear(row*DaysPerWeek - lead + 1)
}

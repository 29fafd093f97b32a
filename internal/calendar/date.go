package calendar

import (
	"fmt"
	"time"
)

// Date is a validated day in one calendar system. The zero Date is not a
// valid day; obtain values from Validate, FromEpochDay, Convert or FromTime.
type Date struct {
	sys   System
	year  int
	month int
	day   int
}

// Validate checks year, month and day against sys and returns the Date. The
// day bound is leap-year sensitive. Nothing is clamped.
func Validate(sys System, year, month, day int) (Date, error) {
	if !sys.Valid() {
		return Date{}, fmt.Errorf("unknown calendar system: %d", int(sys))
	}
	if year < MinYear || year > MaxYear {
		return Date{}, rangeErr(sys, "year", year, MinYear, MaxYear)
	}
	if month < 1 || month > MonthsPerYear {
		return Date{}, rangeErr(sys, "month", month, 1, MonthsPerYear)
	}
	if n := MonthLength(sys, year, month); day < 1 || day > n {
		return Date{}, rangeErr(sys, "day", day, 1, n)
	}
	return Date{sys: sys, year: year, month: month, day: day}, nil
}

// MustDate is Validate for constants known to be valid. It panics otherwise.
func MustDate(sys System, year, month, day int) Date {
	d, err := Validate(sys, year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromEpochDay returns the date of e in sys. Days whose year in sys falls
// outside [MinYear, MaxYear] are reported as out of range.
func FromEpochDay(sys System, e EpochDay) (Date, error) {
	if !sys.Valid() {
		return Date{}, fmt.Errorf("unknown calendar system: %d", int(sys))
	}
	year, month, day, ok := fromEpoch(sys, e)
	if !ok || year < MinYear || year > MaxYear {
		first, last := Bounds(sys)
		return Date{}, fmt.Errorf("epoch day %d not representable in %s calendar [%d, %d]: %w",
			e, sys, first, last, ErrOutOfRange)
	}
	return Date{sys: sys, year: int(year), month: month, day: day}, nil
}

// Convert returns the same day expressed in target.
func Convert(d Date, target System) (Date, error) {
	if d.sys == target {
		return d, nil
	}
	out, err := FromEpochDay(target, d.EpochDay())
	if err != nil {
		return Date{}, fmt.Errorf("convert %s %s to %s: %w", d.sys, d, target, err)
	}
	return out, nil
}

// FromTime returns the calendar day of t, in t's location, expressed in sys.
func FromTime(t time.Time, sys System) (Date, error) {
	g, err := Validate(Gregorian, t.Year(), int(t.Month()), t.Day())
	if err != nil {
		return Date{}, err
	}
	return Convert(g, sys)
}

// Today is FromTime(time.Now(), sys).
func Today(sys System) (Date, error) {
	return FromTime(time.Now(), sys)
}

func (d Date) System() System { return d.sys }
func (d Date) Year() int      { return d.year }
func (d Date) Month() int     { return d.month }
func (d Date) Day() int       { return d.day }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.year == 0 }

func (d Date) EpochDay() EpochDay {
	return toEpoch(d.sys, d.year, d.month, d.day)
}

// Weekday derives the day of the week from the epoch day; 1970-01-01 was a
// Thursday.
func (d Date) Weekday() time.Weekday {
	return WeekdayOf(d.EpochDay())
}

// WeekdayOf returns the day of the week of e.
func WeekdayOf(e EpochDay) time.Weekday {
	return time.Weekday(floorMod(int64(e)+4, 7))
}

func (d Date) DayOfYear() int {
	return DayOfYear(d.sys, d.year, d.month, d.day)
}

func (d Date) IsLeapYear() bool {
	return IsLeap(d.sys, d.year)
}

func (d Date) MonthLength() int {
	return MonthLength(d.sys, d.year, d.month)
}

// AddDays moves d by n days, staying in the same system.
func (d Date) AddDays(n int) (Date, error) {
	return FromEpochDay(d.sys, d.EpochDay()+EpochDay(n))
}

// AddMonths moves d by n months. The day saturates at the length of the
// target month, so Farvardin 31 plus six months is Mehr 30.
func (d Date) AddMonths(n int) (Date, error) {
	total := int64(d.year)*MonthsPerYear + int64(d.month-1) + int64(n)
	year := floorDiv(total, MonthsPerYear)
	month := int(floorMod(total, MonthsPerYear)) + 1
	if year < MinYear || year > MaxYear {
		return Date{}, rangeErr(d.sys, "year", int(year), MinYear, MaxYear)
	}
	day := min(d.day, MonthLength(d.sys, int(year), month))
	return Date{sys: d.sys, year: int(year), month: month, day: day}, nil
}

// AddYears is AddMonths(12*n); Esfand 30 in a leap year becomes Esfand 29.
func (d Date) AddYears(n int) (Date, error) {
	return d.AddMonths(n * MonthsPerYear)
}

func (d Date) FirstOfMonth() Date {
	return Date{sys: d.sys, year: d.year, month: d.month, day: 1}
}

// LastOfMonth returns the last day of d's month.
func (d Date) LastOfMonth() Date {
	return Date{sys: d.sys, year: d.year, month: d.month, day: d.MonthLength()}
}

// WithDayOfYear returns the n-th day of d's year.
func (d Date) WithDayOfYear(n int) (Date, error) {
	if n < 1 || n > YearLength(d.sys, d.year) {
		return Date{}, rangeErr(d.sys, "day of year", n, 1, YearLength(d.sys, d.year))
	}
	start := toEpoch(d.sys, d.year, 1, 1)
	return FromEpochDay(d.sys, start+EpochDay(n-1))
}

// Compare orders dates by the day they denote, so dates of different
// systems compare meaningfully.
func (d Date) Compare(o Date) int {
	a, b := d.EpochDay(), o.EpochDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Time returns midnight UTC of d. It is meant for interop with the time
// package; the calendar core never looks at time of day.
func (d Date) Time() time.Time {
	return time.Unix(int64(d.EpochDay())*86400, 0).UTC()
}

// String formats d as YYYY-MM-DD in its own system.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

package calendar

// Jalali leap years follow the 33-year arithmetic cycle: a year is leap when
// (25*year + 11) mod 33 < 8. Every cycle of 33 years holds 8 leap years, so
// the number of leap years in [1, n] is floor((8n + 29) / 33). The rule agrees
// with the astronomical (vernal equinox at Tehran) table for 1178-1634 AP.
const (
	jalaliCycleYears = 33
	jalaliCycleDays  = 33*365 + 8
)

var gregorianMonthDays = [MonthsPerYear]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Jalali: six months of 31 days, five of 30, and Esfand with 29 (30 in leap years).
var jalaliMonthDays = [MonthsPerYear]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}

// IsLeap reports whether year has an intercalary day in sys.
func IsLeap(sys System, year int) bool {
	switch sys {
	case Jalali:
		return floorMod(25*int64(year)+11, jalaliCycleYears) < 8
	default:
		return year%4 == 0 && (year%100 != 0 || year%400 == 0)
	}
}

// MonthLength returns the number of days in month of year. The month must
// already be in [1, 12]; callers validating user input go through Validate.
func MonthLength(sys System, year, month int) int {
	switch sys {
	case Jalali:
		if month == 12 && IsLeap(Jalali, year) {
			return 30
		}
		return jalaliMonthDays[month-1]
	default:
		if month == 2 && IsLeap(Gregorian, year) {
			return 29
		}
		return gregorianMonthDays[month-1]
	}
}

// YearLength is 366 for leap years and 365 otherwise, in both calendars.
func YearLength(sys System, year int) int {
	if IsLeap(sys, year) {
		return 366
	}
	return 365
}

// DayOfYear returns the 1-based ordinal of the given day within its year.
func DayOfYear(sys System, year, month, day int) int {
	if sys == Jalali {
		return jalaliDaysBeforeMonth(month) + day
	}
	n := day
	for m := 1; m < month; m++ {
		n += MonthLength(Gregorian, year, m)
	}
	return n
}

func jalaliDaysBeforeMonth(month int) int {
	if month <= 7 {
		return 31 * (month - 1)
	}
	return 186 + 30*(month-7)
}

// jalaliLeapsBefore counts leap years in [1, year-1].
func jalaliLeapsBefore(year int64) int64 {
	n := year - 1
	if n <= 0 {
		return 0
	}
	return (8*n + 29) / jalaliCycleYears
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

package calendar

import "time"

var monthNames = map[System][MonthsPerYear]string{
	Gregorian: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	Jalali: {
		"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
		"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
	},
}

var monthAbbrs = map[System][MonthsPerYear]string{
	Gregorian: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Jalali:    {"Far", "Ord", "Kho", "Tir", "Mor", "Sha", "Meh", "Aba", "Aza", "Dey", "Bah", "Esf"},
}

// MonthName returns the English name (or transliteration) of month.
func MonthName(sys System, month int) string {
	if month < 1 || month > MonthsPerYear {
		return ""
	}
	return monthNames[sys][month-1]
}

func MonthAbbr(sys System, month int) string {
	if month < 1 || month > MonthsPerYear {
		return ""
	}
	return monthAbbrs[sys][month-1]
}

// MonthNames lists the twelve month names of sys in order.
func MonthNames(sys System) []string {
	names := monthNames[sys]
	return names[:]
}

func WeekdayName(w time.Weekday) string {
	return w.String()
}

// WeekdayAbbr returns the first n letters of the weekday name.
func WeekdayAbbr(w time.Weekday, n int) string {
	name := w.String()
	if n <= 0 || n >= len(name) {
		return name
	}
	return name[:n]
}

// ValidateWeekStart accepts 0 (Sunday) through 6 (Saturday).
func ValidateWeekStart(n int) (time.Weekday, error) {
	if n < int(time.Sunday) || n > int(time.Saturday) {
		return 0, &WeekStartError{Value: n}
	}
	return time.Weekday(n), nil
}

// DefaultWeekStart is Saturday for the Jalali calendar and Sunday otherwise.
func DefaultWeekStart(sys System) time.Weekday {
	if sys == Jalali {
		return time.Saturday
	}
	return time.Sunday
}

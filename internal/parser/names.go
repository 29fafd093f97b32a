package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jcalgo/jcal/internal/calendar"
)

// Alternate spellings seen in the wild for Jalali months.
var jalaliAliases = map[string]int{
	"amordad":   5,
	"shahriver": 6,
	"day":       10,
}

// ParseMonth accepts a month number or a case-insensitive prefix of a month
// name of sys. A prefix matching more than one month is rejected.
func ParseMonth(sys calendar.System, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty month")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > calendar.MonthsPerYear {
			return 0, &calendar.RangeError{System: sys, Field: "month", Value: n, Min: 1, Max: calendar.MonthsPerYear}
		}
		return n, nil
	}

	lower := strings.ToLower(s)
	if sys == calendar.Jalali {
		if m, ok := jalaliAliases[lower]; ok {
			return m, nil
		}
	}
	m, err := prefixMatch(lower, calendar.MonthNames(sys))
	if err != nil {
		return 0, fmt.Errorf("%s month %q: %w", sys, s, err)
	}
	return m + 1, nil
}

// ParseWeekday accepts 0 (Sunday) through 6 or a unique prefix of an English
// weekday name.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return calendar.ValidateWeekStart(n)
	}
	names := make([]string, 7)
	for i := range names {
		names[i] = time.Weekday(i).String()
	}
	i, err := prefixMatch(strings.ToLower(s), names)
	if err != nil {
		return 0, fmt.Errorf("weekday %q: %w", s, err)
	}
	return time.Weekday(i), nil
}

// prefixMatch returns the index of the only name starting with s. An exact
// match always wins.
func prefixMatch(s string, names []string) (int, error) {
	if s == "" {
		return -1, fmt.Errorf("empty name")
	}
	found := -1
	for i, name := range names {
		name = strings.ToLower(name)
		if name == s {
			return i, nil
		}
		if strings.HasPrefix(name, s) {
			if found >= 0 {
				return -1, fmt.Errorf("ambiguous, matches %s and %s", names[found], names[i])
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("unknown name")
	}
	return found, nil
}

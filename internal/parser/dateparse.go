package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jcalgo/jcal/internal/calendar"
)

var (
	numericDateRe = regexp.MustCompile(`^(\d{1,4})[-/.](\d{1,2})[-/.](\d{1,2})$`)
	dayMonthRe    = regexp.MustCompile(`^(\d{1,2})\s+([a-z]+)(?:,?\s+(\d{1,4}))?$`)
	monthDayRe    = regexp.MustCompile(`^([a-z]+)\s+(\d{1,2})(?:,?\s+(\d{1,4}))?$`)
	weekdayRe     = regexp.MustCompile(`^(next|this|last)\s+([a-z]+)$`)
	inRe          = regexp.MustCompile(`^in\s+(\d+)\s+(day|days|week|weeks|month|months|year|years)$`)
	agoRe         = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months|year|years)\s+(ago|from now)$`)
)

// DateParser turns user input into a calendar.Date of one system. Relative
// words resolve against now in the parser's location.
type DateParser struct {
	system   calendar.System
	now      time.Time
	location *time.Location
}

func NewDateParser(sys calendar.System) *DateParser {
	return &DateParser{
		system:   sys,
		now:      time.Now(),
		location: time.Local,
	}
}

func (p *DateParser) SetNow(now time.Time) {
	p.now = now
}

func (p *DateParser) SetLocation(loc *time.Location) {
	p.location = loc
}

func (p *DateParser) System() calendar.System {
	return p.system
}

// ParseDate parses s as a date of sys relative to the current time.
func ParseDate(sys calendar.System, s string) (calendar.Date, error) {
	return NewDateParser(sys).Parse(s)
}

// Parse accepts YYYY-MM-DD (also with / or . separators), "DD Month [YYYY]",
// "Month DD[, YYYY]", @UNIX timestamps and a few relative expressions:
// today, tomorrow, yesterday, next/this/last WEEKDAY, in N units,
// N units ago and N units from now.
func (p *DateParser) Parse(input string) (calendar.Date, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return calendar.Date{}, fmt.Errorf("empty date")
	}

	if strings.HasPrefix(s, "@") {
		return p.parseTimestamp(s[1:])
	}
	if d, ok, err := p.parseRelative(s); ok || err != nil {
		return d, err
	}
	if d, ok, err := p.parseAbsolute(s); ok || err != nil {
		return d, err
	}
	return calendar.Date{}, fmt.Errorf("unrecognised date %q", input)
}

// Today is the current date in the parser's system and location.
func (p *DateParser) Today() (calendar.Date, error) {
	return calendar.FromTime(p.now.In(p.location), p.system)
}

func (p *DateParser) parseTimestamp(s string) (calendar.Date, error) {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return calendar.FromTime(time.Unix(secs, 0).In(p.location), p.system)
}

func (p *DateParser) parseRelative(s string) (calendar.Date, bool, error) {
	today, err := p.Today()
	if err != nil {
		return calendar.Date{}, true, err
	}

	switch s {
	case "today", "now":
		return today, true, nil
	case "tomorrow", "tmrw":
		d, err := today.AddDays(1)
		return d, true, err
	case "yesterday":
		d, err := today.AddDays(-1)
		return d, true, err
	}

	if m := weekdayRe.FindStringSubmatch(s); m != nil {
		wd, err := ParseWeekday(m[2])
		if err != nil {
			return calendar.Date{}, true, err
		}
		d, err := findWeekday(today, wd, m[1])
		return d, true, err
	}

	if m := inRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		d, err := shift(today, n, m[2])
		return d, true, err
	}

	if m := agoRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if m[3] == "ago" {
			n = -n
		}
		d, err := shift(today, n, m[2])
		return d, true, err
	}

	return calendar.Date{}, false, nil
}

func (p *DateParser) parseAbsolute(s string) (calendar.Date, bool, error) {
	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		d, err := calendar.Validate(p.system, year, month, day)
		return d, true, err
	}

	var day, year int
	var monthName, yearText string
	if m := dayMonthRe.FindStringSubmatch(s); m != nil {
		day, _ = strconv.Atoi(m[1])
		monthName, yearText = m[2], m[3]
	} else if m := monthDayRe.FindStringSubmatch(s); m != nil {
		day, _ = strconv.Atoi(m[2])
		monthName, yearText = m[1], m[3]
	} else {
		return calendar.Date{}, false, nil
	}

	month, err := ParseMonth(p.system, monthName)
	if err != nil {
		return calendar.Date{}, true, err
	}
	if yearText != "" {
		year, _ = strconv.Atoi(yearText)
	} else {
		today, err := p.Today()
		if err != nil {
			return calendar.Date{}, true, err
		}
		year = today.Year()
	}
	d, err := calendar.Validate(p.system, year, month, day)
	return d, true, err
}

func shift(d calendar.Date, n int, unit string) (calendar.Date, error) {
	switch {
	case strings.HasPrefix(unit, "day"):
		return d.AddDays(n)
	case strings.HasPrefix(unit, "week"):
		return d.AddDays(7 * n)
	case strings.HasPrefix(unit, "month"):
		return d.AddMonths(n)
	default:
		return d.AddYears(n)
	}
}

// findWeekday resolves "this", "next" and "last" WEEKDAY. "this" is the
// next occurrence including today, "next" skips today, "last" looks back.
func findWeekday(today calendar.Date, target time.Weekday, which string) (calendar.Date, error) {
	diff := (int(target) - int(today.Weekday()) + 7) % 7
	switch which {
	case "next":
		if diff == 0 {
			diff = 7
		}
	case "last":
		diff -= 7
	}
	return today.AddDays(diff)
}

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcalgo/jcal/internal/calendar"
)

// CalArgs is the result of the positional arguments of the cal command:
// [[[DAY] MONTH] YEAR], MONTH or @TIMESTAMP.
type CalArgs struct {
	// Date is the anchor: the given day, or the first of the given month,
	// or today when nothing was given.
	Date calendar.Date

	YearGiven  bool
	MonthGiven bool
	DayGiven   bool
	Timestamp  bool
}

// YearOnly reports whether only a year was given, which selects the whole
// year display.
func (a CalArgs) YearOnly() bool {
	return a.YearGiven && !a.MonthGiven
}

// Highlight reports whether the given day should be marked.
func (a CalArgs) Highlight() bool {
	return a.DayGiven || a.Timestamp
}

// ParseCalArgs interprets the positional arguments of the cal command in
// the parser's calendar system.
func (p *DateParser) ParseCalArgs(args []string) (CalArgs, error) {
	today, err := p.Today()
	if err != nil {
		return CalArgs{}, err
	}
	out := CalArgs{Date: today}

	switch len(args) {
	case 0:
		return out, nil
	case 1:
		arg := strings.TrimSpace(args[0])
		if strings.HasPrefix(arg, "@") {
			d, err := p.parseTimestamp(arg[1:])
			if err != nil {
				return CalArgs{}, err
			}
			out.Date, out.Timestamp = d, true
			return out, nil
		}
		if year, err := strconv.Atoi(arg); err == nil {
			d, err := calendar.Validate(p.system, year, 1, 1)
			if err != nil {
				return CalArgs{}, err
			}
			out.Date, out.YearGiven = d, true
			return out, nil
		}
		month, err := ParseMonth(p.system, arg)
		if err != nil {
			return CalArgs{}, fmt.Errorf("either give a @TIMESTAMP, a MONTH or [[DAY] MONTH] YEAR: %w", err)
		}
		d, err := calendar.Validate(p.system, today.Year(), month, 1)
		if err != nil {
			return CalArgs{}, err
		}
		out.Date, out.MonthGiven = d, true
		return out, nil
	case 2, 3:
		for _, a := range args {
			if strings.HasPrefix(a, "@") {
				return CalArgs{}, fmt.Errorf("given a @TIMESTAMP, no other date arguments can be used")
			}
		}
		year, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return CalArgs{}, fmt.Errorf("year %q is invalid", args[len(args)-1])
		}
		month, err := ParseMonth(p.system, args[len(args)-2])
		if err != nil {
			return CalArgs{}, err
		}
		day := 1
		if len(args) == 3 {
			if day, err = strconv.Atoi(args[0]); err != nil {
				return CalArgs{}, fmt.Errorf("day %q is invalid", args[0])
			}
			out.DayGiven = true
		}
		d, err := calendar.Validate(p.system, year, month, day)
		if err != nil {
			return CalArgs{}, err
		}
		out.Date, out.YearGiven, out.MonthGiven = d, true, true
		return out, nil
	default:
		return CalArgs{}, fmt.Errorf("too many arguments: %d", len(args))
	}
}

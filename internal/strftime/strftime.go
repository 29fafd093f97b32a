// Package strftime formats calendar dates with date(1) style directives.
// Month and weekday names follow the calendar system of the date.
package strftime

import (
	"strconv"
	"strings"
	"time"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/grid"
)

// DefaultLayout mirrors the output of date(1) without a format argument.
const DefaultLayout = "%a %b %e %H:%M:%S %Z %Y"

type spec struct {
	flag  byte
	width int
	upper bool
	verb  byte
}

type formatter struct {
	date  calendar.Date
	clock *time.Time
}

// Format expands the directives of layout for d. Directives that need a
// time of day, and unknown ones, are copied to the output unchanged.
func Format(layout string, d calendar.Date) string {
	return formatter{date: d}.run(layout)
}

// FormatTime is Format with time-of-day directives (%H %M %S %I %p %Z %z %s
// %T %R) taken from t. The date part still comes from d.
func FormatTime(layout string, d calendar.Date, t time.Time) string {
	return formatter{date: d, clock: &t}.run(layout)
}

func (f formatter) run(layout string) string {
	var b strings.Builder
	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		start := i
		s, end, ok := scan(layout, i+1)
		if !ok {
			b.WriteString(layout[start:])
			break
		}
		i = end
		if out, ok := f.expand(s); ok {
			b.WriteString(out)
		} else {
			b.WriteString(layout[start : end+1])
		}
	}
	return b.String()
}

// scan reads flags, width and the conversion letter after a '%'. It
// returns the index of the conversion letter.
func scan(layout string, i int) (spec, int, bool) {
	var s spec
	for ; i < len(layout); i++ {
		switch layout[i] {
		case '-', '_', '0':
			s.flag = layout[i]
			continue
		case '^':
			s.upper = true
			continue
		case '#':
			continue
		}
		break
	}
	j := i
	for j < len(layout) && layout[j] >= '0' && layout[j] <= '9' {
		j++
	}
	if j > i {
		s.width, _ = strconv.Atoi(layout[i:j])
	}
	if j >= len(layout) {
		return s, 0, false
	}
	s.verb = layout[j]
	return s, j, true
}

func (f formatter) expand(s spec) (string, bool) {
	d := f.date
	switch s.verb {
	case '%':
		return "%", true
	case 'n':
		return "\n", true
	case 't':
		return "\t", true
	case 'Y':
		return num(s, d.Year(), 0, '0'), true
	case 'C':
		return num(s, d.Year()/100, 2, '0'), true
	case 'y':
		return num(s, d.Year()%100, 2, '0'), true
	case 'm':
		return num(s, d.Month(), 2, '0'), true
	case 'd':
		return num(s, d.Day(), 2, '0'), true
	case 'e':
		return num(s, d.Day(), 2, ' '), true
	case 'j':
		return num(s, d.DayOfYear(), 3, '0'), true
	case 'u':
		wd := int(d.Weekday())
		if wd == 0 {
			wd = 7
		}
		return num(s, wd, 1, '0'), true
	case 'w':
		return num(s, int(d.Weekday()), 1, '0'), true
	case 'U':
		w, _ := grid.WeekOf(d, time.Sunday)
		return num(s, w, 2, '0'), true
	case 'W':
		w, _ := grid.WeekOf(d, time.Monday)
		return num(s, w, 2, '0'), true
	case 'B':
		return text(s, calendar.MonthName(d.System(), d.Month())), true
	case 'b', 'h':
		return text(s, calendar.MonthAbbr(d.System(), d.Month())), true
	case 'A':
		return text(s, calendar.WeekdayName(d.Weekday())), true
	case 'a':
		return text(s, calendar.WeekdayAbbr(d.Weekday(), 3)), true
	case 'F':
		return f.run("%Y-%m-%d"), true
	case 'D', 'x':
		return f.run("%m/%d/%y"), true
	}
	if f.clock != nil {
		return f.expandClock(s)
	}
	return "", false
}

func (f formatter) expandClock(s spec) (string, bool) {
	t := *f.clock
	switch s.verb {
	case 'H':
		return num(s, t.Hour(), 2, '0'), true
	case 'I':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return num(s, h, 2, '0'), true
	case 'M':
		return num(s, t.Minute(), 2, '0'), true
	case 'S':
		return num(s, t.Second(), 2, '0'), true
	case 'p':
		if t.Hour() < 12 {
			return text(s, "AM"), true
		}
		return text(s, "PM"), true
	case 'Z':
		name, _ := t.Zone()
		return text(s, name), true
	case 'z':
		return t.Format("-0700"), true
	case 's':
		return strconv.FormatInt(t.Unix(), 10), true
	case 'T':
		return f.run("%H:%M:%S"), true
	case 'R':
		return f.run("%H:%M"), true
	}
	return "", false
}

func num(s spec, v, width int, pad byte) string {
	if s.width > 0 {
		width = s.width
	}
	switch s.flag {
	case '-':
		width = 0
	case '_':
		pad = ' '
	case '0':
		pad = '0'
	}
	out := strconv.Itoa(v)
	if len(out) >= width {
		return out
	}
	return strings.Repeat(string(pad), width-len(out)) + out
}

func text(s spec, v string) string {
	if s.upper {
		v = strings.ToUpper(v)
	}
	if s.width > len(v) {
		pad := " "
		if s.flag == '0' {
			pad = "0"
		}
		v = strings.Repeat(pad, s.width-len(v)) + v
	}
	return v
}

package calendar

import (
	"fmt"
	"strings"
)

// System identifies a calendar.
type System int

const (
	Gregorian System = iota
	Jalali
)

// MonthsPerYear is the same for both supported calendars.
const MonthsPerYear = 12

// Supported year range, shared by both calendars.
const (
	MinYear = 1
	MaxYear = 9999
)

func (s System) String() string {
	switch s {
	case Gregorian:
		return "gregorian"
	case Jalali:
		return "jalali"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// Valid reports whether s is one of the known systems.
func (s System) Valid() bool {
	return s == Gregorian || s == Jalali
}

// ParseSystem accepts the common spellings of both calendar names.
func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gregorian", "g", "greg", "iso", "proleptic":
		return Gregorian, nil
	case "jalali", "j", "persian", "shamsi", "solar-hijri":
		return Jalali, nil
	}
	return 0, fmt.Errorf("unknown calendar system: %q", name)
}

func (s System) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown calendar system: %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *System) UnmarshalText(text []byte) error {
	v, err := ParseSystem(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every error reporting a year, month or day
	// outside its valid range, including conversions that cannot be
	// represented in the target calendar.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidWeekStart is matched by errors for week starts outside 0-6.
	ErrInvalidWeekStart = errors.New("invalid week start")
)

// RangeError describes a single field that failed validation.
type RangeError struct {
	System System
	Field  string
	Value  int
	Min    int
	Max    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s %d out of range [%d, %d]", e.System, e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

func rangeErr(sys System, field string, value, min, max int) error {
	return &RangeError{System: sys, Field: field, Value: value, Min: min, Max: max}
}

// WeekStartError reports a week start that is not a day of the week.
type WeekStartError struct {
	Value int
}

func (e *WeekStartError) Error() string {
	return fmt.Sprintf("week start %d is not in [0, 6]", e.Value)
}

func (e *WeekStartError) Unwrap() error { return ErrInvalidWeekStart }

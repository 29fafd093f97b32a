package parser

import (
	"testing"

	"github.com/jcalgo/jcal/internal/calendar"
)

func TestParseCalArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		want      calendar.Date
		yearOnly  bool
		highlight bool
		monthSet  bool
	}{
		{"none", nil, calendar.MustDate(calendar.Jalali, 1403, 1, 1), false, false, false},
		{"year", []string{"1402"}, calendar.MustDate(calendar.Jalali, 1402, 1, 1), true, false, false},
		{"month name", []string{"esfand"}, calendar.MustDate(calendar.Jalali, 1403, 12, 1), false, false, true},
		{"month year", []string{"12", "1399"}, calendar.MustDate(calendar.Jalali, 1399, 12, 1), false, false, true},
		{"day month year", []string{"30", "esf", "1403"}, calendar.MustDate(calendar.Jalali, 1403, 12, 30), false, true, true},
		{"timestamp", []string{"@1710936000"}, calendar.MustDate(calendar.Jalali, 1403, 1, 1), false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestParser(calendar.Jalali).ParseCalArgs(tt.args)
			if err != nil {
				t.Fatalf("ParseCalArgs failed: %v", err)
			}
			if got.Date != tt.want {
				t.Errorf("date = %s, want %s", got.Date, tt.want)
			}
			if got.YearOnly() != tt.yearOnly {
				t.Errorf("YearOnly = %v", got.YearOnly())
			}
			if got.Highlight() != tt.highlight {
				t.Errorf("Highlight = %v", got.Highlight())
			}
			if got.MonthGiven != tt.monthSet {
				t.Errorf("MonthGiven = %v", got.MonthGiven)
			}
		})
	}
}

func TestParseCalArgsErrors(t *testing.T) {
	tests := [][]string{
		{"@12", "1403"},
		{"30", "esfand", "1402"},
		{"13", "1403"},
		{"1", "2", "3", "4"},
		{"nonsense"},
		{"10000"},
		{"1", "x"},
	}

	for _, args := range tests {
		if _, err := newTestParser(calendar.Jalali).ParseCalArgs(args); err == nil {
			t.Errorf("ParseCalArgs(%v): expected error", args)
		}
	}
}

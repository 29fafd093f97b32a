package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/strftime"
)

func TestDateLayout(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"default", nil, strftime.DefaultLayout, false},
		{"custom", []string{"+%Y/%m/%d"}, "%Y/%m/%d", false},
		{"empty", []string{"+"}, "", false},
		{"missing plus", []string{"%Y"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dateLayout(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("dateLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("dateLayout() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		sys     calendar.System
		want    time.Time
		wantErr bool
	}{
		{"timestamp", "@86400", calendar.Gregorian, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"now", "now", calendar.Gregorian, testNow, false},
		{"gregorian", "2024-03-20", calendar.Gregorian, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), false},
		{"jalali", "1403-01-01", calendar.Jalali, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), false},
		{"relative", "tomorrow", calendar.Gregorian, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), false},
		{"bad timestamp", "@x", calendar.Gregorian, time.Time{}, true},
		{"garbage", "soon", calendar.Gregorian, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDateTime(tt.input, tt.sys, testNow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDateTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseDateTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		layout string
		sys    calendar.System
		want   string
	}{
		{"%Y/%m/%d", calendar.Jalali, "1403/12/20"},
		{"%A %-d %B %Y", calendar.Jalali, "Monday 20 Esfand 1403"},
		{"%F %H:%M", calendar.Gregorian, "2025-03-10 14:05"},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			got, err := formatDate(tt.layout, at, tt.sys)
			if err != nil {
				t.Fatalf("formatDate: %v", err)
			}
			if got != tt.want {
				t.Errorf("formatDate(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestFormatDateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dates")
	content := "1403-12-20\n\nbogus\n1404-01-01\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	err := formatDateFile(&out, &errOut, nil, path, "%F", calendar.Jalali, calendar.Gregorian, testNow)
	if err == nil {
		t.Error("expected an error for the invalid line")
	}
	if got, want := out.String(), "2025-03-10\n2025-03-21\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !strings.Contains(errOut.String(), `jcal: invalid date "bogus"`) {
		t.Errorf("errors = %q", errOut.String())
	}
}

func TestFormatDateFileStdin(t *testing.T) {
	var out, errOut bytes.Buffer
	in := strings.NewReader("2024-03-20\n")
	if err := formatDateFile(&out, &errOut, in, "-", "%F", calendar.Gregorian, calendar.Jalali, testNow); err != nil {
		t.Fatalf("formatDateFile: %v", err)
	}
	if got, want := out.String(), "1403-01-01\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected errors %q", errOut.String())
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/jcalgo/jcal/internal/calendar"
)

// isolate keeps the user's own rc files and JCAL_* variables out of a test.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("JCAL_CONFIG", "")
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, EnvPrefix+"_") && name != "JCAL_CONFIG" {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func writeRC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jcalrc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Calendar != "gregorian" {
		t.Errorf("Wrong default calendar: %s", cfg.Calendar)
	}

	if cfg.WeekStartDay() != time.Sunday {
		t.Errorf("Wrong default week start day: %v", cfg.WeekStartDay())
	}

	if n, auto := cfg.ColumnCount(); n != 3 || auto {
		t.Errorf("Wrong default columns: %d %v", n, auto)
	}

	if cfg.KeyBindings["quit"] != "q" {
		t.Errorf("Wrong quit key binding: %s", cfg.KeyBindings["quit"])
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestJalaliDefaultWeekStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Calendar = "jalali"
	if cfg.WeekStartDay() != time.Saturday {
		t.Errorf("Jalali calendar should start on Saturday, got %v", cfg.WeekStartDay())
	}
	cfg.WeekStart = "monday"
	if cfg.WeekStartDay() != time.Monday {
		t.Errorf("explicit week start ignored: %v", cfg.WeekStartDay())
	}
}

func TestParseLine(t *testing.T) {
	cfg := DefaultConfig()
	settings := map[string]any{}

	tests := []struct {
		line     string
		check    func(*Config, map[string]any) bool
		hasError bool
	}{
		{
			line: "set calendar persian",
			check: func(c *Config, s map[string]any) bool {
				return s["calendar"] == "jalali"
			},
		},
		{
			line: "set week_start_day sat",
			check: func(c *Config, s map[string]any) bool {
				return s["week_start"] == "sat"
			},
		},
		{
			line: "set week_numbers yes",
			check: func(c *Config, s map[string]any) bool {
				return s["week_numbers"] == true
			},
		},
		{
			line: "set months 3",
			check: func(c *Config, s map[string]any) bool {
				return s["months"] == 3
			},
		},
		{
			line: "bind n next_month",
			check: func(c *Config, s map[string]any) bool {
				return c.KeyBindings["next_month"] == "n"
			},
		},
		{
			line: "color today yellow",
			check: func(c *Config, s map[string]any) bool {
				return c.Colors["today"] == "yellow"
			},
		},
		{line: "set week_start someday", hasError: true},
		{line: "set months many", hasError: true},
		{line: "set remind_command remind", hasError: true},
		{line: "bind x launch_rockets", hasError: true},
		{line: "color sky blue", hasError: true},
		{line: "invalid command", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := cfg.parseLine(tt.line, settings)

			if tt.hasError && err == nil {
				t.Error("Expected error but got none")
			}

			if !tt.hasError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if tt.check != nil && !tt.check(cfg, settings) {
				t.Errorf("Check failed for line: %s", tt.line)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)

	path := writeRC(t, `# Test config file
set calendar jalali
set week_numbers true
set columns auto
set output yaml

bind x quit
color today cyan
`)

	cfg, err := Load(Options{Path: path})
	if err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if cfg.System() != calendar.Jalali {
		t.Errorf("Wrong calendar: %s", cfg.Calendar)
	}
	if cfg.WeekStartDay() != time.Saturday {
		t.Errorf("Wrong week start day: %v", cfg.WeekStartDay())
	}
	if !cfg.WeekNumbers {
		t.Error("Week numbers should be enabled")
	}
	if _, auto := cfg.ColumnCount(); !auto {
		t.Error("Columns should be auto")
	}
	if cfg.Output != "yaml" {
		t.Errorf("Wrong output: %s", cfg.Output)
	}
	if cfg.KeyBindings["quit"] != "x" {
		t.Errorf("Wrong quit binding: %s", cfg.KeyBindings["quit"])
	}
	if cfg.Colors["today"] != "cyan" {
		t.Errorf("Wrong today color: %s", cfg.Colors["today"])
	}
	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
}

func TestLoadErrorsReportLine(t *testing.T) {
	isolate(t)

	path := writeRC(t, "set calendar jalali\nset nonsense 1\n")
	_, err := Load(Options{Path: path})
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error on line 2, got %v", err)
	}

	if _, err := Load(Options{Path: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLayering(t *testing.T) {
	isolate(t)

	path := writeRC(t, "set calendar jalali\nset months 2\nset output json\n")

	t.Setenv("JCAL_MONTHS", "6")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "text", "")
	flags.Bool("vertical", false, "")
	if err := flags.Parse([]string{"--vertical"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{Path: path, Flags: map[string]*pflag.Flag{
		"output":   flags.Lookup("output"),
		"vertical": flags.Lookup("vertical"),
	}})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Calendar != "jalali" {
		t.Errorf("rc file value lost: %s", cfg.Calendar)
	}
	if cfg.Months != 6 {
		t.Errorf("environment should override rc file: months = %d", cfg.Months)
	}
	if cfg.Output != "json" {
		t.Errorf("unset flag should not override rc file: output = %s", cfg.Output)
	}
	if !cfg.Vertical {
		t.Error("explicit flag should apply")
	}
}

func TestLoadOverrides(t *testing.T) {
	isolate(t)

	path := writeRC(t, "set calendar gregorian\nset week_start friday\n")
	t.Setenv("JCAL_CALENDAR", "gregorian")

	tests := []struct {
		name          string
		opts          Options
		wantCalendar  string
		wantWeekStart time.Weekday
	}{
		{"none", Options{}, "gregorian", time.Friday},
		{"calendar", Options{Calendar: "jalali"}, "jalali", time.Friday},
		{"week start", Options{WeekStart: "monday"}, "gregorian", time.Monday},
		{"both", Options{Calendar: "jalali", WeekStart: "sunday"}, "jalali", time.Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Path = path
			cfg, err := Load(opts)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Calendar != tt.wantCalendar {
				t.Errorf("calendar = %s, want %s", cfg.Calendar, tt.wantCalendar)
			}
			if got := cfg.WeekStartDay(); got != tt.wantWeekStart {
				t.Errorf("week start = %v, want %v", got, tt.wantWeekStart)
			}
		})
	}

	if _, err := Load(Options{Path: path, Calendar: "julian"}); err == nil {
		t.Error("an invalid override should fail validation")
	}
}

func TestSearchPaths(t *testing.T) {
	isolate(t)

	xdg := os.Getenv("XDG_CONFIG_HOME")
	path := filepath.Join(xdg, "jcal", "jcalrc")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("set calendar jalali\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path || cfg.Calendar != "jalali" {
		t.Errorf("expected %s to be loaded, got %q (%s)", path, cfg.Path, cfg.Calendar)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"calendar", func(c *Config) { c.Calendar = "hebrew" }, "Calendar"},
		{"week start", func(c *Config) { c.WeekStart = "8" }, "WeekStart"},
		{"columns", func(c *Config) { c.Columns = "0" }, "Columns"},
		{"color", func(c *Config) { c.Color = "sometimes" }, "Color"},
		{"output", func(c *Config) { c.Output = "xml" }, "Output"},
		{"months", func(c *Config) { c.Months = 0 }, "Months"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}
}

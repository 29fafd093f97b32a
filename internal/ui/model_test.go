package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/config"
	"github.com/jcalgo/jcal/internal/logging"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, mutate ...func(*config.Config)) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Calendar = "jalali"
	for _, fn := range mutate {
		fn(cfg)
	}

	m := NewModel(cfg, logging.Nop())
	m.now = func() time.Time { return testNow }
	m.goToday()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func TestCalendarNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want calendar.Date
	}{
		{"next day", []string{"l"}, calendar.MustDate(calendar.Jalali, 1403, 1, 2)},
		{"arrow right", []string{"right"}, calendar.MustDate(calendar.Jalali, 1403, 1, 2)},
		{"previous day crosses year", []string{"h"}, calendar.MustDate(calendar.Jalali, 1402, 12, 29)},
		{"next week", []string{"j"}, calendar.MustDate(calendar.Jalali, 1403, 1, 8)},
		{"previous week", []string{"k"}, calendar.MustDate(calendar.Jalali, 1402, 12, 23)},
		{"next month", []string{">"}, calendar.MustDate(calendar.Jalali, 1403, 2, 1)},
		{"previous month", []string{"<"}, calendar.MustDate(calendar.Jalali, 1402, 12, 1)},
		{"next year", []string{"]"}, calendar.MustDate(calendar.Jalali, 1404, 1, 1)},
		{"previous year", []string{"["}, calendar.MustDate(calendar.Jalali, 1402, 1, 1)},
		{"back to today", []string{"l", "l", ">", "t"}, calendar.MustDate(calendar.Jalali, 1403, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			press(m, tt.keys...)
			if m.selected != tt.want {
				t.Errorf("selected = %s, want %s", m.selected, tt.want)
			}
		})
	}
}

func TestMonthNavigationSaturatesDay(t *testing.T) {
	m := newTestModel(t)
	m.selected = calendar.MustDate(calendar.Jalali, 1403, 6, 31)
	press(m, ">")
	if want := calendar.MustDate(calendar.Jalali, 1403, 7, 30); m.selected != want {
		t.Errorf("selected = %s, want %s", m.selected, want)
	}
}

func TestToggleCalendarKeepsDay(t *testing.T) {
	m := newTestModel(t)

	press(m, "c")
	if m.system != calendar.Gregorian {
		t.Fatalf("system = %s, want gregorian", m.system)
	}
	if want := calendar.MustDate(calendar.Gregorian, 2024, 3, 20); m.selected != want {
		t.Errorf("selected = %s, want %s", m.selected, want)
	}
	if m.weekStart != time.Sunday {
		t.Errorf("week start = %v, want Sunday", m.weekStart)
	}
	if m.today != m.selected {
		t.Errorf("today = %s, want %s", m.today, m.selected)
	}

	press(m, "c")
	if want := calendar.MustDate(calendar.Jalali, 1403, 1, 1); m.selected != want {
		t.Errorf("selected = %s, want %s", m.selected, want)
	}
	if m.weekStart != time.Saturday {
		t.Errorf("week start = %v, want Saturday", m.weekStart)
	}
}

func TestToggleCalendarKeepsConfiguredWeekStart(t *testing.T) {
	m := newTestModel(t, func(c *config.Config) { c.WeekStart = "monday" })
	press(m, "c")
	if m.weekStart != time.Monday {
		t.Errorf("week start = %v, want Monday", m.weekStart)
	}
}

func TestNavigationOutOfRange(t *testing.T) {
	m := newTestModel(t)
	first := calendar.MustDate(calendar.Jalali, calendar.MinYear, 1, 1)
	m.selected = first

	press(m, "h")
	if m.selected != first {
		t.Errorf("selected moved to %s", m.selected)
	}
	if m.message != "Date out of range" {
		t.Errorf("message = %q", m.message)
	}

	// Jalali 1/1/1 is 0622-03-21 in the Gregorian calendar.
	press(m, "c")
	if m.system != calendar.Gregorian {
		t.Errorf("toggle from 1/1/1 failed: %s", m.message)
	}

	m.selected = calendar.MustDate(calendar.Gregorian, 9999, 12, 31)
	press(m, "l")
	if m.message != "Date out of range" {
		t.Errorf("message = %q", m.message)
	}
}

func TestToggleSettings(t *testing.T) {
	m := newTestModel(t)

	press(m, "w")
	if !m.weekNumbers || m.message != "Showing week numbers" {
		t.Errorf("week numbers = %v, message = %q", m.weekNumbers, m.message)
	}

	press(m, "s")
	if m.weekStart != time.Sunday {
		t.Errorf("week start = %v, want Sunday", m.weekStart)
	}

	press(m, "m")
	if m.months != 3 {
		t.Errorf("months = %d, want 3", m.months)
	}
	press(m, "m")
	if m.months != 1 {
		t.Errorf("months = %d, want 1", m.months)
	}
}

func TestGotoPrompt(t *testing.T) {
	m := newTestModel(t)

	press(m, "g")
	if m.mode != ViewGoto {
		t.Fatalf("mode = %v, want goto", m.mode)
	}
	press(m, "1403-12-2", "0", "backspace", "9", "enter")
	if m.mode != ViewCalendar {
		t.Errorf("mode = %v after enter", m.mode)
	}
	if want := calendar.MustDate(calendar.Jalali, 1403, 12, 29); m.selected != want {
		t.Errorf("selected = %s, want %s", m.selected, want)
	}

	press(m, "g", "bogus", "enter")
	if !strings.HasPrefix(m.message, "Parse error") {
		t.Errorf("message = %q", m.message)
	}

	press(m, "g", "q", "esc")
	if m.mode != ViewCalendar {
		t.Errorf("escape should close the prompt")
	}
}

func TestGotoPromptMultibyteInput(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantBuffer string
		wantCursor int
	}{
		{"backspace removes a whole rune", []string{"1403ش", "backspace"}, "1403", 4},
		{"left steps over a whole rune", []string{"شب", "left", "x"}, "شxب", 2},
		{"right stops at the end", []string{"é", "left", "right", "right", "!"}, "é!", 2},
		{"backspace in the middle", []string{"aéb", "left", "backspace"}, "ab", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			press(m, "g")
			press(m, tt.keys...)

			got := string(m.inputBuffer)
			if !utf8.ValidString(got) {
				t.Fatalf("buffer is not valid UTF-8: %q", got)
			}
			if got != tt.wantBuffer || m.cursorPos != tt.wantCursor {
				t.Errorf("buffer = %q, cursor = %d; want %q, %d", got, m.cursorPos, tt.wantBuffer, tt.wantCursor)
			}
			if view := m.View(); !utf8.ValidString(view) {
				t.Errorf("goto view is not valid UTF-8")
			}
		})
	}
}

func TestGotoPromptAfterMultibyteEdit(t *testing.T) {
	m := newTestModel(t)

	press(m, "g", "1403-12-29", "ش", "backspace", "enter")
	if want := calendar.MustDate(calendar.Jalali, 1403, 12, 29); m.selected != want {
		t.Errorf("selected = %s, want %s (message %q)", m.selected, want, m.message)
	}
}

func TestCustomKeyBindings(t *testing.T) {
	m := newTestModel(t, func(c *config.Config) { c.KeyBindings["next_day"] = "n" })

	press(m, "n")
	if want := calendar.MustDate(calendar.Jalali, 1403, 1, 2); m.selected != want {
		t.Errorf("selected = %s, want %s", m.selected, want)
	}
	press(m, "l")
	if want := calendar.MustDate(calendar.Jalali, 1403, 1, 2); m.selected != want {
		t.Errorf("old binding still active: %s", m.selected)
	}
}

func TestQuitAndHelp(t *testing.T) {
	m := newTestModel(t)

	press(m, "?")
	if m.mode != ViewHelp {
		t.Fatalf("mode = %v, want help", m.mode)
	}
	if view := m.View(); !strings.Contains(view, "next month") {
		t.Errorf("help view lacks bindings:\n%s", view)
	}
	press(m, "x")
	if m.mode != ViewCalendar {
		t.Errorf("any key should leave help")
	}

	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	for _, want := range []string{"Farvardin 1403", "Sa Su Mo Tu We Th Fr", "gregorian: 20 March 2024", "? for help"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}

	press(m, "m")
	view = m.View()
	for _, want := range []string{"Esfand 1402", "Farvardin 1403", "Ordibehesht 1403"} {
		if !strings.Contains(view, want) {
			t.Errorf("three month view lacks %q", want)
		}
	}

	m.width = 0
	if m.View() != "Loading..." {
		t.Error("expected loading view before the first resize")
	}
}

func TestConfigReloaded(t *testing.T) {
	m := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.WeekNumbers = true
	m.Update(configReloadedMsg{config: cfg})

	if m.system != calendar.Gregorian {
		t.Errorf("system = %s, want gregorian", m.system)
	}
	if want := calendar.MustDate(calendar.Gregorian, 2024, 3, 20); m.selected != want {
		t.Errorf("selected = %s, want %s", m.selected, want)
	}
	if !m.weekNumbers || m.message != "Configuration reloaded" {
		t.Errorf("week numbers = %v, message = %q", m.weekNumbers, m.message)
	}

	m.Update(configReloadedMsg{err: os.ErrNotExist})
	if !strings.HasPrefix(m.message, "Config error") {
		t.Errorf("message = %q", m.message)
	}
}

func TestReloadKeepsCommandLineOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jcalrc")
	if err := os.WriteFile(path, []byte("set calendar gregorian\nset months 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	flags := pflag.NewFlagSet("jcal", pflag.ContinueOnError)
	flags.String("months", "1", "")
	if err := flags.Parse([]string{"--months", "3"}); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, func(c *config.Config) { c.Path = path })
	m.SetLoadOptions(config.Options{
		Flags:     map[string]*pflag.Flag{"months": flags.Lookup("months")},
		Calendar:  "jalali",
		WeekStart: "monday",
	})

	// Edit the file after startup.
	if err := os.WriteFile(path, []byte("set calendar gregorian\nset week_start friday\nset week_numbers yes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	msg := m.reloadConfig()()
	reloaded, ok := msg.(configReloadedMsg)
	if !ok || reloaded.err != nil {
		t.Fatalf("reload = %#v", msg)
	}
	m.Update(reloaded)

	if m.system != calendar.Jalali {
		t.Errorf("system = %s, want jalali from the command line", m.system)
	}
	if m.weekStart != time.Monday {
		t.Errorf("week start = %v, want Monday from the command line", m.weekStart)
	}
	if m.months != 3 {
		t.Errorf("months = %d, want 3 from the command line", m.months)
	}
	if !m.weekNumbers {
		t.Error("week numbers from the edited file were not applied")
	}
	if m.config.Path != path {
		t.Errorf("path = %q, want %q", m.config.Path, path)
	}
}

func TestMessageTimeout(t *testing.T) {
	m := newTestModel(t)
	m.showMessage("first")
	stale := m.messageSeq
	m.showMessage("second")

	m.Update(messageTimeoutMsg{seq: stale})
	if m.message != "second" {
		t.Errorf("stale timeout cleared %q", m.message)
	}
	m.Update(messageTimeoutMsg{seq: m.messageSeq})
	if m.message != "" {
		t.Errorf("message = %q, want empty", m.message)
	}
}

func TestWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jcalrc")
	if err := os.WriteFile(path, []byte("set calendar jalali\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, func(c *config.Config) { c.Path = path })
	if err := m.WatchConfig(); err != nil {
		t.Fatalf("WatchConfig failed: %v", err)
	}
	defer m.Close()

	done := make(chan tea.Msg, 1)
	go func() { done <- m.waitForReload()() }()

	if err := os.WriteFile(path, []byte("set calendar gregorian\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-done:
		if _, ok := msg.(configChangedMsg); !ok {
			t.Fatalf("unexpected message %T", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the config file")
	}

	msg := m.reloadConfig()()
	reloaded, ok := msg.(configReloadedMsg)
	if !ok || reloaded.err != nil {
		t.Fatalf("reload = %#v", msg)
	}
	if reloaded.config.Calendar != "gregorian" {
		t.Errorf("reloaded calendar = %s", reloaded.config.Calendar)
	}
}

package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the bindings of the calendar view. Keys come from the
// configuration; arrow keys are always bound as well.
type keyMap struct {
	Quit              key.Binding
	Help              key.Binding
	Today             key.Binding
	NextDay           key.Binding
	PrevDay           key.Binding
	NextWeek          key.Binding
	PrevWeek          key.Binding
	NextMonth         key.Binding
	PrevMonth         key.Binding
	NextYear          key.Binding
	PrevYear          key.Binding
	ToggleWeekNumbers key.Binding
	CycleWeekStart    key.Binding
	ToggleCalendar    key.Binding
	ToggleMonths      key.Binding
	Goto              key.Binding
}

func newKeyMap(bindings map[string]string) keyMap {
	bind := func(action, desc string, extra ...string) key.Binding {
		keys := extra
		k := bindings[action]
		if k != "" {
			keys = append([]string{k}, extra...)
		}
		label := k
		if label == "" && len(extra) > 0 {
			label = extra[0]
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
	}

	return keyMap{
		Quit:              bind("quit", "quit", "ctrl+c"),
		Help:              bind("help", "toggle help"),
		Today:             bind("today", "go to today"),
		NextDay:           bind("next_day", "next day", "right"),
		PrevDay:           bind("prev_day", "previous day", "left"),
		NextWeek:          bind("next_week", "next week", "down"),
		PrevWeek:          bind("prev_week", "previous week", "up"),
		NextMonth:         bind("next_month", "next month", "pgdown"),
		PrevMonth:         bind("prev_month", "previous month", "pgup"),
		NextYear:          bind("next_year", "next year"),
		PrevYear:          bind("prev_year", "previous year"),
		ToggleWeekNumbers: bind("toggle_week_numbers", "week numbers"),
		CycleWeekStart:    bind("cycle_week_start", "week start"),
		ToggleCalendar:    bind("toggle_calendar", "jalali/gregorian"),
		ToggleMonths:      bind("toggle_months", "1/3 months"),
		Goto:              bind("goto", "go to date"),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.ToggleCalendar, k.Today, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextDay, k.PrevDay, k.NextWeek, k.PrevWeek},
		{k.NextMonth, k.PrevMonth, k.NextYear, k.PrevYear},
		{k.Today, k.Goto, k.ToggleCalendar, k.ToggleMonths},
		{k.ToggleWeekNumbers, k.CycleWeekStart, k.Help, k.Quit},
	}
}

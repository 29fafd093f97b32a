package format

import (
	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/grid"
)

// DateView is the serialized form of a calendar date.
type DateView struct {
	Calendar  string `json:"calendar" yaml:"calendar"`
	Date      string `json:"date" yaml:"date"`
	Year      int    `json:"year" yaml:"year"`
	Month     int    `json:"month" yaml:"month"`
	Day       int    `json:"day" yaml:"day"`
	MonthName string `json:"month_name" yaml:"month_name"`
	Weekday   string `json:"weekday" yaml:"weekday"`
	DayOfYear int    `json:"day_of_year" yaml:"day_of_year"`
}

func NewDateView(d calendar.Date) DateView {
	return DateView{
		Calendar:  d.System().String(),
		Date:      d.String(),
		Year:      d.Year(),
		Month:     d.Month(),
		Day:       d.Day(),
		MonthName: calendar.MonthName(d.System(), d.Month()),
		Weekday:   calendar.WeekdayName(d.Weekday()),
		DayOfYear: d.DayOfYear(),
	}
}

type ConversionView struct {
	From DateView `json:"from" yaml:"from"`
	To   DateView `json:"to" yaml:"to"`
}

func NewConversionView(from, to calendar.Date) ConversionView {
	return ConversionView{From: NewDateView(from), To: NewDateView(to)}
}

// WeekView is one grid row. Empty cells are 0.
type WeekView struct {
	Week int   `json:"week,omitempty" yaml:"week,omitempty"`
	Days []int `json:"days" yaml:"days,flow"`
}

type MonthView struct {
	Calendar  string     `json:"calendar" yaml:"calendar"`
	Year      int        `json:"year" yaml:"year"`
	Month     int        `json:"month" yaml:"month"`
	Name      string     `json:"name" yaml:"name"`
	WeekStart string     `json:"week_start" yaml:"week_start"`
	Weekdays  []string   `json:"weekdays" yaml:"weekdays,flow"`
	Weeks     []WeekView `json:"weeks" yaml:"weeks"`
}

func NewMonthView(g grid.MonthGrid) MonthView {
	v := MonthView{
		Calendar:  g.System.String(),
		Year:      g.Year,
		Month:     g.Month,
		Name:      g.Title(),
		WeekStart: calendar.WeekdayName(g.WeekStart),
		Weeks:     make([]WeekView, 0, len(g.Rows)),
	}
	for _, wd := range g.Weekdays() {
		v.Weekdays = append(v.Weekdays, calendar.WeekdayAbbr(wd, 2))
	}
	for _, row := range g.Rows {
		days := make([]int, 0, grid.DaysPerWeek)
		for _, c := range row.Cells {
			if c.IsEmpty() {
				days = append(days, 0)
				continue
			}
			days = append(days, c.Date().Day())
		}
		v.Weeks = append(v.Weeks, WeekView{Week: row.Week, Days: days})
	}
	return v
}

func NewMonthViews(months []grid.MonthGrid) []MonthView {
	views := make([]MonthView, 0, len(months))
	for _, g := range months {
		views = append(views, NewMonthView(g))
	}
	return views
}

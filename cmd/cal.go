package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/config"
	"github.com/jcalgo/jcal/internal/format"
	"github.com/jcalgo/jcal/internal/grid"
	"github.com/jcalgo/jcal/internal/parser"
	"github.com/jcalgo/jcal/internal/render"
)

const defaultTermWidth = 80

// calOptions are the display modes of the cal command that are not kept in
// the configuration.
type calOptions struct {
	one, three, twelve, year bool
	span                     bool
	week                     int
	weekSet                  bool
}

// calPlan is what the cal command is about to show.
type calPlan struct {
	grids []grid.MonthGrid
	opts  render.Options
}

func runCal(cmd *cobra.Command, args []string) error {
	plan, err := planCalendar(cfg, calOpts, args, time.Now())
	if err != nil {
		return err
	}
	logger.Debugw("calendar plan",
		"months", len(plan.grids),
		"year_header", plan.opts.YearHeader,
		"highlight", plan.opts.Today.String(),
	)

	mode, err := render.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}
	return writeCalendar(cmd.OutOrStdout(), plan, cfg, mode, termWidth())
}

// planCalendar decides which months to show and how, from the configuration,
// the display flags and the positional arguments.
func planCalendar(cfg *config.Config, opts calOptions, args []string, now time.Time) (calPlan, error) {
	sys := cfg.System()
	weekStart := cfg.WeekStartDay()

	p := parser.NewDateParser(sys)
	p.SetNow(now)
	p.SetLocation(now.Location())
	ca, err := p.ParseCalArgs(args)
	if err != nil {
		return calPlan{}, err
	}

	highlight, err := p.Today()
	if err != nil {
		return calPlan{}, err
	}
	if ca.Highlight() {
		highlight = ca.Date
	}

	anchor := ca.Date
	count := cfg.Months
	center := opts.span
	yearMode := false
	switch {
	case opts.year || ca.YearOnly():
		yearMode = true
	case opts.twelve:
		count = calendar.MonthsPerYear
	case opts.three:
		count, center = 3, true
	case opts.one:
		count = 1
	}

	if opts.week > 0 {
		first, err := grid.FirstDayOfWeek(sys, anchor.Year(), opts.week, weekStart)
		if err != nil {
			return calPlan{}, fmt.Errorf("invalid week: %w", err)
		}
		if !ca.MonthGiven && !yearMode {
			anchor = first
		}
	}

	weekNumbers := cfg.WeekNumbers || opts.weekSet
	var gridOpts []grid.Option
	if weekNumbers {
		gridOpts = append(gridOpts, grid.WithWeekNumbers())
	}

	plan := calPlan{
		opts: render.Options{
			WeekNumbers:   weekNumbers,
			Ordinal:       cfg.Julian,
			Vertical:      cfg.Vertical,
			YearHeader:    yearMode,
			YearInHeader:  !yearMode,
			Today:         highlight,
			HighlightWeek: opts.week,
		},
	}

	if yearMode {
		yg, err := grid.BuildYear(sys, anchor.Year(), weekStart, gridOpts...)
		if err != nil {
			return calPlan{}, err
		}
		plan.grids = yg.Months[:]
		return plan, nil
	}

	anchors := grid.Span(anchor, count, center)
	plan.grids = make([]grid.MonthGrid, 0, len(anchors))
	for _, a := range anchors {
		g, err := grid.BuildMonth(sys, a.Year(), a.Month(), weekStart, gridOpts...)
		if err != nil {
			return calPlan{}, err
		}
		plan.grids = append(plan.grids, g)
	}
	return plan, nil
}

// writeCalendar prints the plan as text, or as JSON or YAML month views.
func writeCalendar(w io.Writer, plan calPlan, cfg *config.Config, mode render.ColorMode, width int) error {
	if cfg.Output != "text" {
		return format.Write(w, format.NewMonthViews(plan.grids), cfg.Output, true)
	}

	opts := plan.opts
	n, auto := cfg.ColumnCount()
	if auto {
		n = render.ColumnsInWidth(width, opts)
	}
	opts.Columns = n

	lr := render.NewLipglossRenderer(w, mode)
	styles, err := render.StylesFromConfig(lr, cfg.Colors)
	if err != nil {
		return err
	}
	r := render.New(lr)
	r.SetStyles(styles)

	_, err = io.WriteString(w, r.Calendar(plan.grids, opts))
	return err
}

// termWidth returns the width of the terminal on stdout, falling back to
// $COLUMNS and then to 80.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}

// Package verify checks the calendar conversions over whole years.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/jcalgo/jcal/internal/calendar"
)

type Options struct {
	// System is the calendar whose years are walked.
	System calendar.System
	// From and To bound the years, inclusive. Zero means the full range.
	From, To int
	// Workers limits the years checked at once. Zero means GOMAXPROCS.
	Workers int
	// Progress receives a progress bar. Nil disables it.
	Progress io.Writer
}

type Result struct {
	Years int
	Days  int64
	// Skipped counts days with no counterpart in the other calendar.
	Skipped int64
}

// Mismatch describes a day that failed a round trip.
type Mismatch struct {
	Stage string
	Date  calendar.Date
	Got   calendar.Date
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s round trip of %s %s returned %s %s",
		m.Stage, m.Date.System(), m.Date, m.Got.System(), m.Got)
}

func (o Options) normalize() (Options, error) {
	if !o.System.Valid() {
		return o, fmt.Errorf("invalid calendar %d", o.System)
	}
	if o.From == 0 {
		o.From = calendar.MinYear
	}
	if o.To == 0 {
		o.To = calendar.MaxYear
	}
	if o.From < calendar.MinYear || o.To > calendar.MaxYear || o.From > o.To {
		return o, fmt.Errorf("invalid year range %d..%d (allowed %d..%d)",
			o.From, o.To, calendar.MinYear, calendar.MaxYear)
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Progress == nil {
		o.Progress = io.Discard
	}
	return o, nil
}

// Run checks every day of the selected years. Each day must survive
// Date -> EpochDay -> Date, follow its predecessor by exactly one epoch day,
// and survive a conversion to the other calendar and back whenever the
// other calendar can represent it. The first failure is returned.
func Run(ctx context.Context, opts Options) (Result, error) {
	opts, err := opts.normalize()
	if err != nil {
		return Result{}, err
	}

	years := opts.To - opts.From + 1
	bar := progressbar.NewOptions(years,
		progressbar.OptionSetWriter(opts.Progress),
		progressbar.OptionSetDescription(fmt.Sprintf("Checking %s years...", opts.System)),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(opts.Progress) }),
	)
	defer bar.Close()

	var days, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for y := opts.From; y <= opts.To; y++ {
		if gctx.Err() != nil {
			break
		}
		year := y
		g.Go(func() error {
			n, s, err := checkYear(gctx, opts.System, year)
			days.Add(n)
			skipped.Add(s)
			if err != nil {
				return err
			}
			return bar.Add(1)
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{Years: years, Days: days.Load(), Skipped: skipped.Load()}, nil
}

func otherSystem(sys calendar.System) calendar.System {
	if sys == calendar.Jalali {
		return calendar.Gregorian
	}
	return calendar.Jalali
}

func checkYear(ctx context.Context, sys calendar.System, year int) (days, skipped int64, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	first, err := calendar.Validate(sys, year, 1, 1)
	if err != nil {
		return 0, 0, err
	}
	other := otherSystem(sys)
	start := first.EpochDay()
	n := calendar.YearLength(sys, year)

	for i := 1; i <= n; i++ {
		d, err := first.WithDayOfYear(i)
		if err != nil {
			return days, skipped, err
		}
		days++

		e := d.EpochDay()
		if e != start+calendar.EpochDay(i-1) {
			return days, skipped, fmt.Errorf("%s %s: epoch day %d, want %d", sys, d, e, start+calendar.EpochDay(i-1))
		}
		back, err := calendar.FromEpochDay(sys, e)
		if err != nil {
			return days, skipped, err
		}
		if back != d {
			return days, skipped, &Mismatch{Stage: "epoch", Date: d, Got: back}
		}

		converted, err := calendar.Convert(d, other)
		if errors.Is(err, calendar.ErrOutOfRange) {
			skipped++
			continue
		}
		if err != nil {
			return days, skipped, err
		}
		if converted.Weekday() != d.Weekday() {
			return days, skipped, &Mismatch{Stage: "weekday", Date: d, Got: converted}
		}
		back, err = calendar.Convert(converted, sys)
		if err != nil {
			return days, skipped, err
		}
		if back != d {
			return days, skipped, &Mismatch{Stage: "conversion", Date: d, Got: back}
		}
	}
	return days, skipped, nil
}

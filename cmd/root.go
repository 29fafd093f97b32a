package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jcalgo/jcal/internal/config"
	"github.com/jcalgo/jcal/internal/logging"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
	logger  = logging.Nop()

	// loadOpts is how cfg was loaded; the TUI reuses it on reload.
	loadOpts config.Options

	useJalali    bool
	useGregorian bool
	sundayFirst  bool
	mondayFirst  bool

	calOpts calOptions
)

var rootCmd = &cobra.Command{
	Use:   "jcal [flags] [[[DAY] MONTH] YEAR] | MONTH | @TIMESTAMP",
	Short: "Display a Jalali or Gregorian calendar",
	Long: `jcal prints calendars in the Jalali (Solar Hijri) and Gregorian
calendars, converts dates between them and formats dates strftime style.

Without arguments the current month is shown. A lone year shows the whole
year; MONTH may be a number or a unique prefix of a month name.`,
	Args:              cobra.MaximumNArgs(3),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
	RunE: runCal,
}

// Execute runs the command line; an interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// configFlags maps config keys to the flags that override them.
var configFlags = map[string]string{
	"calendar":   "calendar",
	"week_start": "weekday",
	"months":     "months",
	"columns":    "columns",
	"color":      "color",
	"output":     "output",
	"vertical":   "vertical",
	"julian":     "julian",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: first of $JCAL_CONFIG, $XDG_CONFIG_HOME/jcal/jcalrc, ~/.jcalrc)")
	pf.BoolVar(&debug, "debug", false, "log debug information to stderr")
	pf.String("calendar", "", "calendar system: jalali or gregorian")
	pf.BoolVarP(&useJalali, "jalali", "J", false, "use the Jalali calendar")
	pf.BoolVarP(&useGregorian, "gregorian", "G", false, "use the Gregorian calendar")
	pf.StringP("output", "o", "text", "output format: text, json or yaml")
	rootCmd.MarkFlagsMutuallyExclusive("jalali", "gregorian")

	f := rootCmd.Flags()
	f.BoolVarP(&calOpts.one, "one", "1", false, "show only the current month")
	f.BoolVarP(&calOpts.three, "three", "3", false, "show the previous, current and next month")
	f.BoolVarP(&calOpts.twelve, "twelve", "Y", false, "show the next twelve months")
	f.BoolVarP(&calOpts.year, "year", "y", false, "show the whole year")
	f.IntP("months", "n", 1, "show this many months")
	f.BoolVarP(&calOpts.span, "span", "S", false, "center the shown months on the date")
	f.BoolVarP(&sundayFirst, "sunday", "s", false, "weeks start on Sunday")
	f.BoolVarP(&mondayFirst, "monday", "m", false, "weeks start on Monday")
	f.String("weekday", "", "weeks start on this day (name or 0-6, Sunday is 0)")
	f.BoolP("julian", "j", false, "show days of the year instead of days of the month")
	f.IntVarP(&calOpts.week, "week", "w", 0, "show week numbers; with =N also highlight week N")
	f.Lookup("week").NoOptDefVal = "0"
	f.BoolP("vertical", "v", false, "show days vertically, weekdays as rows")
	f.StringP("columns", "c", "3", "months per line, or auto")
	f.String("color", "auto", "colorize output: auto, always or never")
	f.Lookup("color").NoOptDefVal = "always"
	rootCmd.MarkFlagsMutuallyExclusive("one", "three", "twelve", "year")
	rootCmd.MarkFlagsMutuallyExclusive("sunday", "monday", "weekday")
}

func initConfig(cmd *cobra.Command, args []string) error {
	flags := make(map[string]*pflag.Flag)
	for key, name := range configFlags {
		if f := cmd.Flags().Lookup(name); f != nil {
			flags[key] = f
		}
	}

	loadOpts = config.Options{Path: cfgFile, Flags: flags}
	switch {
	case useJalali:
		loadOpts.Calendar = "jalali"
	case useGregorian:
		loadOpts.Calendar = "gregorian"
	}
	switch {
	case sundayFirst:
		loadOpts.WeekStart = "sunday"
	case mondayFirst:
		loadOpts.WeekStart = "monday"
	}

	var err error
	cfg, err = config.Load(loadOpts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if f := cmd.Flags().Lookup("week"); f != nil && f.Changed {
		calOpts.weekSet = true
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logger, err = logging.New(logging.Config{Level: level, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debugw("configuration loaded",
		"path", cfg.Path,
		"calendar", cfg.Calendar,
		"week_start", cfg.WeekStartDay().String(),
	)
	return nil
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/parser"
	"github.com/jcalgo/jcal/internal/strftime"
)

var (
	dateInput     string
	inputJalali   bool
	dateFile      string
	referenceFile string
)

var dateCmd = &cobra.Command{
	Use:   "date [+FORMAT]",
	Short: "Print a date in the Jalali or Gregorian calendar",
	Long: `Print the current date, or the one given with --date, --file or
--reference, in the configured calendar. FORMAT uses strftime directives
such as %Y-%m-%d or "%A %e %B %Y".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDate,
}

func init() {
	dateCmd.Flags().StringVarP(&dateInput, "date", "d", "", "show this date instead of now")
	dateCmd.Flags().BoolVar(&inputJalali, "input-jalali", false, "read --date and --file dates as Jalali")
	dateCmd.Flags().StringVarP(&dateFile, "file", "f", "", "show each date in FILE, one per line (- for stdin)")
	dateCmd.Flags().StringVarP(&referenceFile, "reference", "r", "", "show the modification date of FILE")
	dateCmd.MarkFlagsMutuallyExclusive("date", "file", "reference")
	rootCmd.AddCommand(dateCmd)
}

func runDate(cmd *cobra.Command, args []string) error {
	layout, err := dateLayout(args)
	if err != nil {
		return err
	}

	sys := cfg.System()
	in := calendar.Gregorian
	if inputJalali {
		in = calendar.Jalali
	}
	now := time.Now()
	logger.Debugw("date format", "layout", layout, "calendar", sys.String(), "input", in.String())

	if dateFile != "" {
		return formatDateFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), dateFile, layout, in, sys, now)
	}

	basis := now
	switch {
	case referenceFile != "":
		info, err := os.Stat(referenceFile)
		if err != nil {
			return err
		}
		basis = info.ModTime()
	case dateInput != "":
		if basis, err = parseDateTime(dateInput, in, now); err != nil {
			return fmt.Errorf("invalid date %q: %w", dateInput, err)
		}
	}
	logger.Debugw("date basis", "time", basis.Format(time.RFC3339))

	line, err := formatDate(layout, basis, sys)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
	return err
}

func dateLayout(args []string) (string, error) {
	if len(args) == 0 {
		return strftime.DefaultLayout, nil
	}
	if !strings.HasPrefix(args[0], "+") {
		return "", fmt.Errorf("invalid date format %q: must start with '+'", args[0])
	}
	return args[0][1:], nil
}

// parseDateTime reads a --date value. @UNIX keeps the time of day, "now"
// is now, everything else is midnight of the parsed day in now's location.
func parseDateTime(s string, sys calendar.System, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") {
		secs, err := strconv.ParseInt(s[1:], 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(secs, 0).In(now.Location()), nil
	}
	if strings.EqualFold(s, "now") {
		return now, nil
	}

	p := parser.NewDateParser(sys)
	p.SetNow(now)
	p.SetLocation(now.Location())
	d, err := p.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	g, err := calendar.Convert(d, calendar.Gregorian)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(g.Year(), time.Month(g.Month()), g.Day(), 0, 0, 0, 0, now.Location()), nil
}

func formatDate(layout string, t time.Time, sys calendar.System) (string, error) {
	d, err := calendar.FromTime(t, sys)
	if err != nil {
		return "", err
	}
	return strftime.FormatTime(layout, d, t), nil
}

// formatDateFile prints one line per date read from path. Invalid dates are
// reported on errOut and make the command fail after all lines are done.
func formatDateFile(out, errOut io.Writer, stdin io.Reader, path, layout string, in, sys calendar.System, now time.Time) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	failed := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := parseDateTime(line, in, now)
		if err == nil {
			var s string
			if s, err = formatDate(layout, t, sys); err == nil {
				fmt.Fprintln(out, s)
				continue
			}
		}
		logger.Debugw("invalid date", "line", line, "error", err)
		fmt.Fprintf(errOut, "jcal: invalid date %q\n", line)
		failed++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d invalid date(s) in %s", failed, path)
	}
	return nil
}

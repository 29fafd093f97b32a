package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/format"
	"github.com/jcalgo/jcal/internal/parser"
	"github.com/jcalgo/jcal/internal/strftime"
)

var (
	convertFrom string
	convertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert DATE",
	Short: "Convert a date between the Jalali and Gregorian calendars",
	Long: `Convert DATE from one calendar to the other. DATE is read in the
configured calendar unless --from is given, and converted to the other one
unless --to is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "calendar of DATE")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "calendar to convert to")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, to, err := convertSystems(cfg.System(), convertFrom, convertTo)
	if err != nil {
		return err
	}

	p := parser.NewDateParser(from)
	d, err := p.Parse(args[0])
	if err != nil {
		return err
	}
	out, err := calendar.Convert(d, to)
	if err != nil {
		return fmt.Errorf("convert %s: %w", d, err)
	}
	logger.Debugw("converted", "from", d.String(), "to", out.String())
	return writeConversion(cmd.OutOrStdout(), d, out, cfg.Output)
}

func convertSystems(def calendar.System, from, to string) (calendar.System, calendar.System, error) {
	src := def
	if from != "" {
		sys, err := calendar.ParseSystem(from)
		if err != nil {
			return 0, 0, err
		}
		src = sys
	}

	dst := calendar.Jalali
	if src == calendar.Jalali {
		dst = calendar.Gregorian
	}
	if to != "" {
		sys, err := calendar.ParseSystem(to)
		if err != nil {
			return 0, 0, err
		}
		dst = sys
	}
	return src, dst, nil
}

func writeConversion(w io.Writer, from, to calendar.Date, output string) error {
	if output == "" || output == "text" {
		_, err := fmt.Fprintln(w, strftime.Format("%A %F (%-d %B %Y)", to))
		return err
	}
	return format.Write(w, format.NewConversionView(from, to), output, true)
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jcalgo/jcal/internal/verify"
)

var (
	verifyFrom    int
	verifyTo      int
	verifyWorkers int
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every date survives conversion both ways",
	Long: `Walk every day of the selected years of the configured calendar and
check it against the epoch day mapping and a conversion to the other
calendar and back.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().IntVar(&verifyFrom, "from", 0, "first year (default 1)")
	verifyCmd.Flags().IntVar(&verifyTo, "to", 0, "last year (default 9999)")
	verifyCmd.Flags().IntVar(&verifyWorkers, "workers", 0, "years checked in parallel (default: number of CPUs)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	var progress io.Writer
	if term.IsTerminal(int(os.Stderr.Fd())) {
		progress = cmd.ErrOrStderr()
	}

	start := time.Now()
	res, err := verify.Run(cmd.Context(), verify.Options{
		System:   cfg.System(),
		From:     verifyFrom,
		To:       verifyTo,
		Workers:  verifyWorkers,
		Progress: progress,
	})
	if err != nil {
		return err
	}
	logger.Infow("verification finished", "years", res.Years, "days", res.Days, "duration", time.Since(start))

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d %s years, %d days checked, %d without a counterpart\n",
		res.Years, cfg.System(), res.Days, res.Skipped)
	return err
}

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jcalgo/jcal/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the calendar interactively",
	Long: `Browse months in the Jalali or Gregorian calendar. The config file is
watched and reloaded when it changes.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	model := ui.NewModel(cfg, logger)
	model.SetLoadOptions(loadOpts)
	if err := model.WatchConfig(); err != nil {
		logger.WithError(err).Warnw("not watching config file", "path", cfg.Path)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}

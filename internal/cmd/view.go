package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scline/collegevis/internal/config"
	"github.com/scline/collegevis/internal/tui"
	"github.com/scline/collegevis/internal/tui/styles"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive plot interface",
	Long: `View opens the terminal interface: a plot of the submitted series and a
panel for choosing colleges, fields, and year ranges. This is also what
running collegevis without a subcommand does.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	if cfg.TUI.ThemeFile != "" {
		if err := styles.LoadTheme(cfg.TUI.ThemeFile); err != nil {
			return err
		}
	}

	db, catalog, engine, err := openEngine(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()
	defer engine.Close()

	return tui.New(engine, catalog, cfg, log).Run()
}

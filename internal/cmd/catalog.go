package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scline/collegevis/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the colleges, years, and fields the database holds",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	db, catalog, engine, err := openEngine(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()
	defer engine.Close()

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Years (%d):", len(catalog.Years))
	for _, year := range catalog.Years {
		fmt.Fprintf(out, " %s", year)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "\nFields (%d):\n", len(catalog.Fields))
	for _, field := range catalog.Fields {
		fmt.Fprintf(out, "  %-24s %s\n", field.Name, field.Scope)
	}

	fmt.Fprintf(out, "\nColleges (%d):\n", len(catalog.Colleges))
	for _, college := range catalog.Colleges {
		fmt.Fprintf(out, "  %s\n", college)
	}
	return nil
}

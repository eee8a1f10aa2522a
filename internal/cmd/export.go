package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scline/collegevis/internal/config"
	"github.com/scline/collegevis/internal/errors"
	"github.com/scline/collegevis/internal/plot"
	"github.com/scline/collegevis/internal/scorecard"
)

var exportCmd = &cobra.Command{
	Use:   "export SERIES [SERIES...]",
	Short: "Render series straight to an SVG file",
	Long: `Export resolves the given series and writes the figure as SVG without
opening the interface. Each series is COLLEGE,FIELD,START,END:

  collegevis export --out sat.svg \
      "Reed College,SAT_AVG,2010,2015" "Lewis & Clark College,SAT_AVG,2010,2015"

Series without any data are reported on stderr and left out of the
figure, matching the interactive behavior.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

var exportOutFile string

func init() {
	exportCmd.Flags().StringVar(&exportOutFile, "out", "figure.svg", "output SVG file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	requests := make([]scorecard.SeriesRequest, 0, len(args))
	for _, arg := range args {
		req, err := parseSeries(arg)
		if err != nil {
			return err
		}
		requests = append(requests, req)
	}
	if max := cfg.Plot.MaxSeries; max > 0 && len(requests) > max {
		return errors.Wrapf(errors.ErrTooManySeries, "%d series requested, limit is %d", len(requests), max)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	db, _, engine, err := openEngine(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()
	defer engine.Close()

	resolved, diags := engine.Resolve(requests)
	fig, layoutDiags := plot.Layout(resolved)
	for _, d := range scorecard.MergeDiagnostics(diags, layoutDiags) {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}

	f, err := os.Create(exportOutFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := plot.ExportSVG(f, fig, cfg.Export.Width, cfg.Export.Height); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportOutFile)
	return nil
}

// parseSeries splits a COLLEGE,FIELD,START,END argument.
func parseSeries(arg string) (scorecard.SeriesRequest, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 4 {
		return scorecard.SeriesRequest{}, fmt.Errorf("series %q is not COLLEGE,FIELD,START,END", arg)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return scorecard.SeriesRequest{}, fmt.Errorf("series %q has a non-integer start year", arg)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return scorecard.SeriesRequest{}, fmt.Errorf("series %q has a non-integer end year", arg)
	}
	return scorecard.SeriesRequest{
		College:   strings.TrimSpace(parts[0]),
		Field:     strings.TrimSpace(parts[1]),
		StartYear: start,
		EndYear:   end,
	}, nil
}

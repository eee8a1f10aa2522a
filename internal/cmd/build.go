package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/scline/collegevis/internal/config"
	"github.com/scline/collegevis/internal/ingest"
	"github.com/scline/collegevis/internal/validate"
)

var buildCmd = &cobra.Command{
	Use:   "build YEAR=FILE [YEAR=FILE...]",
	Short: "Build the SQLite database from raw Scorecard files",
	Long: `Build creates the visualizer database from a field definition file and
one raw Scorecard CSV per year. Year files are given as YEAR=FILE pairs:

  collegevis build --defs fields.json --out scorecard.db \
      2012=MERGED2012_PP.csv 2013=MERGED2013_PP.csv

All inputs are validated before any table is created. The output file
must not already exist.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

var (
	buildDefsFile string
	buildOutFile  string
	buildEntity   []string
)

func init() {
	buildCmd.Flags().StringVar(&buildDefsFile, "defs", "", "field definition file (required)")
	buildCmd.Flags().StringVar(&buildOutFile, "out", "", "output database file (defaults to the configured database path)")
	buildCmd.Flags().StringSliceVar(&buildEntity, "entity", nil, "columns stored once per college instead of per year")
	_ = buildCmd.MarkFlagRequired("defs")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := buildOutFile
	if out == "" {
		out = cfg.Database.ResolveDatabasePath()
	}
	if out == "" {
		return fmt.Errorf("no output path; pass --out or set database.path")
	}
	if _, err := os.Stat(out); err == nil {
		return fmt.Errorf("%s already exists; refusing to overwrite", out)
	}

	defsFile, err := os.Open(buildDefsFile)
	if err != nil {
		return err
	}
	defer defsFile.Close()

	defs, err := validate.ParseFieldDefs(defsFile)
	if err != nil {
		return fmt.Errorf("%s: %w", buildDefsFile, err)
	}

	rawByYear, closeAll, err := openYearFiles(args)
	if err != nil {
		return err
	}
	defer closeAll()

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := sql.Open("sqlite", out)
	if err != nil {
		return fmt.Errorf("creating database %s: %w", out, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := ingest.Build(db, defs, rawByYear, buildEntity, log); err != nil {
		db.Close()
		os.Remove(out)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "built %s from %d year file(s)\n", out, len(rawByYear))
	return nil
}

// openYearFiles parses YEAR=FILE arguments and opens every file. The
// returned cleanup closes them all.
func openYearFiles(args []string) (map[int]io.Reader, func(), error) {
	files := make([]*os.File, 0, len(args))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	rawByYear := make(map[int]io.Reader, len(args))
	for _, arg := range args {
		year, path, ok := strings.Cut(arg, "=")
		if !ok {
			closeAll()
			return nil, nil, fmt.Errorf("argument %q is not YEAR=FILE", arg)
		}
		y, err := strconv.Atoi(year)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("argument %q has a non-integer year", arg)
		}
		if _, dup := rawByYear[y]; dup {
			closeAll()
			return nil, nil, fmt.Errorf("year %d given twice", y)
		}
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, f)
		rawByYear[y] = f
	}
	return rawByYear, closeAll, nil
}

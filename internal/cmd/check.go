package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scline/collegevis/internal/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate build input files",
	Long: `Check validates the files the build command consumes without touching
any database: the field definition file (a JSON array of
[name, kind, precedence] triples on its first line) and any number of
raw Scorecard CSV files.`,
	RunE: runCheck,
}

var checkDefsFile string

func init() {
	checkCmd.Flags().StringVar(&checkDefsFile, "defs", "", "field definition file to validate")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkDefsFile == "" && len(args) == 0 {
		return fmt.Errorf("nothing to check; pass --defs and/or raw data files")
	}

	failed := false

	if checkDefsFile != "" {
		if err := checkFile(checkDefsFile, validate.CheckFieldDefs); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", checkDefsFile, err)
			failed = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", checkDefsFile)
		}
	}

	for _, path := range args {
		if err := checkFile(path, validate.CheckRawData); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		}
	}

	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func checkFile(path string, check func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return check(f)
}

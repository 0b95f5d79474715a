package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"liberty/internal/diag"
	"liberty/internal/driver"
	"liberty/internal/observ"
	"liberty/internal/source"
)

func newDiagCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.lib|directory>",
		Short: "Report problems in Liberty files",
		Long: `Diag parses a Liberty file or directory and prints only the diagnostics.
The exit status is 1 when any file has errors`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.runDiag(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the parse cache")
	return cmd
}

func (st *cliState) runDiag(cmd *cobra.Command, path string) error {
	dir, err := isDir(path)
	if err != nil {
		return err
	}
	opts := st.driverOptions(cmd, false)

	var (
		fs      *source.FileSet
		results []*driver.ParseResult
	)
	if dir {
		fs, results, err = driver.ParseDir(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	} else {
		res, err := driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		fs, results = res.FileSet, []*driver.ParseResult{res}
	}

	merged := diag.NewBag(0)
	var reports []observ.Report
	for _, r := range results {
		merged.Merge(r.Bag)
		if r.Timing != nil {
			reports = append(reports, *r.Timing)
		}
	}
	merged.Dedup()
	if err := st.printDiagnostics(cmd.OutOrStdout(), merged, fs, st.cfg.Format); err != nil {
		return err
	}
	if dir {
		st.printTimings(cmd.ErrOrStderr(), len(results), reports)
	}
	if driver.Failed(results) {
		return errFailed
	}
	return nil
}

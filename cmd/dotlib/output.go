package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"liberty/internal/diag"
	"liberty/internal/diagfmt"
	"liberty/internal/observ"
	"liberty/internal/source"
)

// printDiagnostics renders bag in the configured diagnostics format.
func (st *cliState) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	if bag == nil || bag.Len() == 0 {
		if format == "json" {
			return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{})
		}
		return nil
	}
	bag.Sort()
	switch format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     st.useColor(w),
			Context:   1,
			PathMode:  st.pathMode,
			ShowNotes: true,
			ShowFixes: true,
		})
		if !st.quiet {
			fmt.Fprintf(w, "\n%s\n", diagfmt.Summary(bag))
		}
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         st.pathMode,
			IncludeNotes:     true,
			IncludeFixes:     true,
			IncludePreviews:  true,
		})
	case "short":
		return diagfmt.Short(w, bag, fs, true)
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}

// reportProblems prints errors and warnings of a non-diag command to
// stderr as pretty text.
func (st *cliState) reportProblems(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings() && !st.timings) {
		return
	}
	_ = st.printDiagnostics(cmd.ErrOrStderr(), bag, fs, "pretty")
}

// printTimings writes the merged phase table of a multi-file run.
func (st *cliState) printTimings(w io.Writer, files int, reports []observ.Report) {
	if !st.timings || len(reports) == 0 {
		return
	}
	fmt.Fprintf(w, "%d files\n%s", files, observ.Merge(reports...).Summary())
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/driver"
	"liberty/internal/observ"
	"liberty/internal/ui"
)

func newParseCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.lib|directory>",
		Short: "Parse a Liberty file or directory and print the tree",
		Long: `Parse reads a Liberty file, or every .lib/.liberty file in a directory in
parallel, and prints the parsed tree as a debug tree, as Liberty text, as
JSON or as per-kind node counts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.runParse(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "tree", "output format (tree|liberty|json|stats)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the parse cache")
	cmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	return cmd
}

type parsedJSON struct {
	Path  string            `json:"path"`
	OK    bool              `json:"ok"`
	Stats map[string]uint32 `json:"stats,omitempty"`
	Tree  *ast.ExportNode   `json:"tree,omitempty"`
}

func (st *cliState) runParse(cmd *cobra.Command, path string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "liberty", "json", "stats":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	dir, err := isDir(path)
	if err != nil {
		return err
	}
	opts := st.driverOptions(cmd, format != "stats")
	out := cmd.OutOrStdout()

	if !dir {
		res, err := driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		st.reportProblems(cmd, res.Bag, res.FileSet)
		if err := writeParsed(out, format, []*driver.ParseResult{res}, false); err != nil {
			return err
		}
		if !res.OK {
			return errFailed
		}
		return nil
	}

	results, err := st.parseDir(cmd, path, opts, mode)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		st.notef(cmd.ErrOrStderr(), "no .lib files in %s\n", path)
		return nil
	}
	merged := diag.NewBag(0)
	var reports []observ.Report
	for _, r := range results {
		merged.Merge(r.Bag)
		if r.Timing != nil {
			reports = append(reports, *r.Timing)
		}
	}
	st.reportProblems(cmd, merged, results[0].FileSet)
	st.printTimings(cmd.ErrOrStderr(), len(results), reports)
	if err := writeParsed(out, format, results, !st.quiet); err != nil {
		return err
	}
	if driver.Failed(results) {
		return errFailed
	}
	return nil
}

// parseDir runs driver.ParseDir, behind the progress view when it is on.
func (st *cliState) parseDir(cmd *cobra.Command, dir string, opts driver.Options, mode uiMode) ([]*driver.ParseResult, error) {
	if !st.shouldUseTUI(mode) {
		_, results, err := driver.ParseDir(cmd.Context(), dir, opts)
		if err != nil {
			return nil, fmt.Errorf("parsing failed: %w", err)
		}
		return results, nil
	}
	files, err := driver.ListLibFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	var results []*driver.ParseResult
	err = ui.RunWithProgress(cmd.ErrOrStderr(), "parsing "+dir, files, func(obs driver.PhaseObserver) error {
		opts.Observer = obs
		var perr error
		_, results, perr = driver.ParseDir(cmd.Context(), dir, opts)
		return perr
	})
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	return results, nil
}

func writeParsed(w io.Writer, format string, results []*driver.ParseResult, headers bool) error {
	if format == "json" {
		docs := make([]parsedJSON, 0, len(results))
		for _, r := range results {
			doc := parsedJSON{Path: r.Path, OK: r.OK, Stats: r.Stats}
			if r.OK && r.Mgr != nil {
				doc.Tree = r.Mgr.Export(r.Root)
			}
			docs = append(docs, doc)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(docs) == 1 && !headers {
			return enc.Encode(docs[0])
		}
		return enc.Encode(docs)
	}

	for i, r := range results {
		if headers {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", resultPath(r))
		}
		if err := writeOne(w, format, r); err != nil {
			return err
		}
	}
	return nil
}

func writeOne(w io.Writer, format string, r *driver.ParseResult) error {
	if format == "stats" {
		return writeStats(w, r)
	}
	if !r.OK || r.Mgr == nil {
		return nil
	}
	if format == "liberty" {
		return r.Mgr.Dump(w, r.Root)
	}
	return r.Mgr.DumpTree(w, r.Root)
}

func writeStats(w io.Writer, r *driver.ParseResult) error {
	kinds := make([]string, 0, len(r.Stats))
	var total uint32
	for k, n := range r.Stats {
		kinds = append(kinds, k)
		total += n
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		if _, err := fmt.Fprintf(w, "%-10s %d\n", k, r.Stats[k]); err != nil {
			return err
		}
	}
	cached := ""
	if r.Cached {
		cached = " (cached)"
	}
	_, err := fmt.Fprintf(w, "%-10s %d%s\n", "total", total, cached)
	return err
}

func resultPath(r *driver.ParseResult) string {
	if r.File == nil {
		return r.Path
	}
	return displayPath(r.FileSet, r.FileID)
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"liberty/internal/diag"
	"liberty/internal/diagfmt"
	"liberty/internal/driver"
	"liberty/internal/source"
	"liberty/internal/token"
)

func newTokenizeCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.lib|directory>",
		Short: "Print the tokens of a Liberty file",
		Long: `Tokenize breaks a Liberty file, or every .lib file in a directory, into
tokens. With --symbol digits and '.' are read as name characters, the way
the parser reads unit values such as 1ns`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.runTokenize(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("symbol", false, "scan in symbol mode")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func (st *cliState) runTokenize(cmd *cobra.Command, path string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	symbol, err := cmd.Flags().GetBool("symbol")
	if err != nil {
		return fmt.Errorf("failed to get symbol flag: %w", err)
	}

	dir, err := isDir(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if !dir {
		result, err := driver.Tokenize(path, st.cfg.MaxDiagnostics, symbol)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		st.reportProblems(cmd, result.Bag, result.FileSet)
		if err := writeTokens(out, format, result.Tokens, result.FileSet); err != nil {
			return err
		}
		if result.Bag.HasErrors() {
			return errFailed
		}
		return nil
	}

	fs, results, err := driver.TokenizeDir(cmd.Context(), path, st.cfg.MaxDiagnostics, st.cfg.Jobs, symbol)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	merged := diag.NewBag(0)
	for i, r := range results {
		merged.Merge(r.Bag)
		if r.Tokens == nil {
			continue
		}
		if format == "pretty" && !st.quiet {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", displayPath(fs, r.FileID))
		}
		if err := writeTokens(out, format, r.Tokens, fs); err != nil {
			return err
		}
	}
	st.reportProblems(cmd, merged, fs)
	if merged.HasErrors() {
		return errFailed
	}
	return nil
}

func writeTokens(w io.Writer, format string, toks []token.Token, fs *source.FileSet) error {
	if format == "json" {
		return diagfmt.FormatTokensJSON(w, toks, fs)
	}
	return diagfmt.FormatTokensPretty(w, toks, fs)
}

func displayPath(fs *source.FileSet, id source.FileID) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(source.PathAuto, fs.BaseDir())
}

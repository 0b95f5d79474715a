package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"liberty/internal/version"
)

// errFailed сообщает main, что диагностики уже напечатаны и нужен только
// ненулевой код выхода.
var errFailed = errors.New("one or more files failed to parse")

// newRootCmd builds the whole command tree. Every call returns fresh
// commands and state, so tests can run the CLI many times in one process.
func newRootCmd(st *cliState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dotlib",
		Short: "Liberty (.lib) cell library parser",
		Long: `dotlib reads Liberty cell library files, reports syntax and structure
problems and prints the parsed tree`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd)
		},
	}

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to dotlib.toml (default: search upwards from the working directory)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.String("path-mode", "auto", "how diagnostics show file paths (auto|absolute|relative|basename)")
	flags.Bool("timings", false, "show timing information")
	flags.Bool("debug", false, "echo every parsed attribute to stderr")
	flags.Bool("allow-no-semi", true, "let a newline or '}' end a statement without ';'")
	flags.Int("max-depth", 256, "maximum nesting of groups and parentheses")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to collect per file")
	flags.String("trace", "", "write trace events to file ('-' for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat trace event at this interval (0 = off)")
	flags.String("cpuprofile", "", "write a CPU profile to file")
	flags.String("memprofile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	rootCmd.AddCommand(newTokenizeCmd(st))
	rootCmd.AddCommand(newParseCmd(st))
	rootCmd.AddCommand(newDiagCmd(st))
	rootCmd.AddCommand(newVersionCmd(st))
	return rootCmd
}

// execute runs the CLI with args. Profiles and tracers are stopped even
// when the command fails.
func execute(args []string, stdout, stderr io.Writer) error {
	st := &cliState{}
	defer st.close()
	rootCmd := newRootCmd(st)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

// main executes the CLI. A command error is printed unless it only signals
// failed files; either way the process exits with 1.
func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "dotlib: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

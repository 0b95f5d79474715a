package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"liberty/internal/config"
	"liberty/internal/driver"
	"liberty/internal/parser"
	"liberty/internal/source"
)

// cliState is what PersistentPreRunE resolves once for the running command.
type cliState struct {
	cfg      config.Config
	quiet    bool
	timings  bool
	pathMode source.PathMode
	cleanup  func()
}

func (st *cliState) setup(cmd *cobra.Command) error {
	root := cmd.Root().PersistentFlags()

	configPath, err := root.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(viper.New(), configPath, ".", bindableFlags(cmd))
	if err != nil {
		return err
	}
	st.cfg = cfg

	if st.quiet, err = root.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if st.timings, err = root.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	mode, err := root.GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if st.pathMode, err = source.ParsePathMode(mode); err != nil {
		return err
	}
	switch cfg.Color {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	stopTrace, err := setupTracing(cmd, cfg.Debug)
	if err != nil {
		stopProf()
		return err
	}
	st.cleanup = func() {
		stopTrace()
		stopProf()
	}
	return nil
}

// bindableFlags returns the flags that feed config keys. The --format of
// parse and tokenize selects an output view, not the diagnostics format,
// so only diag binds it.
func bindableFlags(cmd *cobra.Command) *pflag.FlagSet {
	out := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "format" && cmd.Name() != "diag" {
			return
		}
		out.AddFlag(f)
	})
	return out
}

// close stops whatever setup started; safe to call when setup never ran.
func (st *cliState) close() {
	if st.cleanup != nil {
		st.cleanup()
		st.cleanup = nil
	}
}

// useColor resolves --color for w; auto means color only on a terminal.
func (st *cliState) useColor(w io.Writer) bool {
	switch st.cfg.Color {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func (st *cliState) parserOptions() parser.Options {
	return st.cfg.ParserOptions()
}

// driverOptions builds the driver options for one command. The disk cache
// is opened only when enabled; failing to open it is a warning. With
// needTree the cache is still written but never read.
func (st *cliState) driverOptions(cmd *cobra.Command, needTree bool) driver.Options {
	opts := driver.Options{
		Parser:         st.parserOptions(),
		MaxDiagnostics: st.cfg.MaxDiagnostics,
		Jobs:           st.cfg.Jobs,
		NeedTree:       needTree,
		EnableTimings:  st.timings,
	}
	noCache := false
	if f := cmd.Flags().Lookup("no-cache"); f != nil {
		noCache, _ = cmd.Flags().GetBool("no-cache")
	}
	if st.cfg.Cache && !noCache {
		cache, err := driver.OpenDiskCache("dotlib")
		if err != nil {
			st.notef(cmd.ErrOrStderr(), "cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	return opts
}

func (st *cliState) notef(w io.Writer, format string, args ...any) {
	if st.quiet {
		return
	}
	fmt.Fprintf(w, format, args...)
}

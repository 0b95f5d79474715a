package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"liberty/internal/trace"
)

// setupTracing inspects trace-related flags and initializes the tracer.
// With debug set the level is raised to debug and, when no --trace
// target is given, events go to stderr. It returns a cleanup function.
func setupTracing(cmd *cobra.Command, debug bool) (func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	heartbeatInterval, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	if debug {
		level = trace.LevelDebug
		if traceOutput == "" {
			traceOutput = "-"
			mode = trace.ModeStream
		}
	}

	// If level is off, skip tracing
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	cfg := trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		Heartbeat:  heartbeatInterval,
	}
	if traceOutput == "-" {
		cfg.Output = cmd.ErrOrStderr()
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	heartbeat := trace.StartHeartbeat(tracer, heartbeatInterval)

	cleanup := func() {
		heartbeat.Stop()
		if mode == trace.ModeRing {
			dumpRing(cmd, tracer, traceOutput)
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

// dumpRing writes the in-memory events of a ring tracer to the --trace
// target ("-" or empty is stderr) once the command is done.
func dumpRing(cmd *cobra.Command, tracer trace.Tracer, target string) {
	dumper, ok := tracer.(trace.Dumper)
	if !ok {
		return
	}
	format := trace.Config{OutputPath: target}.ResolvedFormat()
	var w io.Writer = cmd.ErrOrStderr()
	if target != "" && target != "-" {
		f, err := os.Create(target)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
			return
		}
		defer f.Close()
		w = f
	}
	if err := dumper.Dump(w, format); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
	}
}

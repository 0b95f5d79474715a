// Package trace provides structured event tracing for the dotlib tools.
//
// The parser's debug echo is built on it: with parser.Options.Debug set,
// every parsed attribute is emitted as a ScopeNode point event carrying
// the attribute name and its value.
//
// # Usage
//
//	dotlib parse --trace=- --trace-level=phase cells.lib
//	dotlib parse --debug cells.lib   # debug level to stderr
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr), with a
//     session header stamped by NewSession
//   - RingTracer: circular buffer kept in memory and dumped on exit
//     (--trace-mode=ring) or inspected by tests
//   - Tee: fans events out to a stream and a ring at once
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events of directory parses
//   - LevelDebug: everything including the attribute echo
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace

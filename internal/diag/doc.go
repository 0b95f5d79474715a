// Package diag defines the diagnostic model shared by the scanner, the
// Boolean function parser and the library parser.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – numeric identifier with a stable string form (codes.go).
//   - Message – short human oriented text.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans, e.g. where an enclosing group opened.
//   - Fixes – optional text edits, e.g. the missing ';'.
//
// Every Code belongs to one Category (category.go). Categories mirror the
// failure classes a caller can act on: lexical, token mismatch, type
// mismatch, structural, Boolean function syntax and I/O.
//
// # Emitting diagnostics
//
// Producers never hold global state. They receive a Reporter and either call
// Report directly or go through ReportBuilder (ReportError, WithNote, Emit).
// BagReporter stores into a Bag; DedupReporter filters repeats.
//
// # Errors
//
// Go callers that want an error value get *ParseError from the parser. It
// wraps the first error diagnostic and unwraps to the category sentinel, so
// errors.Is(err, diag.ErrTypeMismatch) works.
//
// Package diag performs no IO and no formatting beyond the single line short
// form. Rendering lives in internal/diagfmt.
package diag

package parser

import (
	"context"
	"fmt"

	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/source"
)

// ReadFile loads path, parses it into a fresh Mgr and returns the result.
// The error is non-nil when the file cannot be read or does not parse; a
// parse failure is a *diag.ParseError that unwraps to its category
// sentinel. The Result is returned in both cases so callers can inspect
// the diagnostics.
func ReadFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	m := ast.NewMgr(opts.Hints, nil)

	var bag *diag.Bag
	if opts.Reporter == nil {
		bag = diag.NewBag(0)
		opts.Reporter = diag.BagReporter{Bag: bag}
	}

	id, err := fs.Load(path)
	if err != nil {
		diag.ReportError(opts.Reporter, diag.IOLoadFileError, source.Span{},
			fmt.Sprintf("cannot read %s: %v", path, err)).Emit()
		return &Result{Mgr: m, Bag: bag}, fmt.Errorf("dotlib: %w: %w", diag.ErrIO, err)
	}

	res := ParseFile(ctx, fs, id, m, opts)
	res.Bag = bag
	if res.OK {
		return &res, nil
	}
	if pe := diag.FirstError(bag, fs); pe != nil {
		return &res, pe
	}
	return &res, &diag.ParseError{Path: fs.Get(id).Path, Code: diag.UnknownCode, Message: "parse failed"}
}

// ParseSource parses in-memory content registered under name. It backs
// stdin input, tests and fuzzing.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) (*source.FileSet, Result) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return fs, ParseFile(ctx, fs, id, ast.NewMgr(opts.Hints, nil), opts)
}

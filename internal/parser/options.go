package parser

import (
	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/trace"
)

// DefaultMaxDepth bounds nesting of groups and of parentheses inside
// function values.
const DefaultMaxDepth = 256

type Options struct {
	// AllowNoSemi lets a newline, end of input or a closing '}' end a
	// statement in place of ';'.
	AllowNoSemi bool
	// Debug emits a ScopeNode trace event for every parsed attribute.
	Debug    bool
	MaxDepth int // 0 — DefaultMaxDepth
	Reporter diag.Reporter
	Tracer   trace.Tracer // nil — trace.Nop
	Hints    ast.Hints    // используется ReadFile при создании Mgr
}

// DefaultOptions returns the settings the CLI starts from.
func DefaultOptions() Options {
	return Options{
		AllowNoSemi: true,
		MaxDepth:    DefaultMaxDepth,
	}
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Result — итог разбора одного файла.
type Result struct {
	Root ast.NodeID // library group; NoNodeID on failure
	Mgr  *ast.Mgr
	Bag  *diag.Bag // nil when the caller supplied its own Reporter
	OK   bool
}

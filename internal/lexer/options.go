package lexer

import (
	"liberty/internal/diag"
	"liberty/internal/source"
)

// Options configures a Lexer. A nil Reporter drops lexical errors; the
// lexer still returns an Invalid token for the bad input and goes on.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.Send(lx.opts.Reporter, diag.NewError(code, sp, msg))
}

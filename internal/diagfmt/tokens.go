package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"liberty/internal/source"
	"liberty/internal/token"
)

type TokenOutput struct {
	Kind   string      `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Quoted bool        `json:"quoted,omitempty"`
	Span   source.Span `json:"span"`
	Line   uint32      `json:"line"`
	Col    uint32      `json:"col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		switch {
		case tok.Kind == token.Name && tok.Quoted:
			fmt.Fprintf(w, " %q (quoted)", tok.Text)
		case tok.Text != "" && tok.Kind != token.NL:
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		text := tok.Text
		if tok.Kind == token.NL {
			text = ""
		}
		output = append(output, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   text,
			Quoted: tok.Quoted,
			Span:   tok.Span,
			Line:   pos.Line,
			Col:    pos.Col,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

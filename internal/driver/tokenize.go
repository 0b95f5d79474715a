package driver

import (
	"liberty/internal/diag"
	"liberty/internal/lexer"
	"liberty/internal/source"
	"liberty/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans path and returns every token up to and including EOF.
// With symbol set the whole file is scanned in symbol mode, so "1ns" is
// one name instead of a number followed by a name.
func Tokenize(path string, maxDiagnostics int, symbol bool) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokenizeFile(file, bag, symbol),
		Bag:     bag,
	}, nil
}

func tokenizeFile(file *source.File, bag *diag.Bag, symbol bool) []token.Token {
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	next := lx.Next
	if symbol {
		next = lx.NextSymbol
	}

	var tokens []token.Token
	for {
		tok := next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

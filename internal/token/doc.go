// Package token defines lexical token kinds for Liberty library files.
// Invariants:
//   - Token.Span covers the raw source bytes, quotes included for quoted names.
//   - Token.Text is the payload: unquoted and unescaped for names, the digits for numbers.
//   - Numeric tokens carry their parsed value in Int or Float.
//   - Kinds Not, And, Or, Xor and Prime are produced only by the Boolean
//     function scanner (package expr), never by the file scanner.
package token

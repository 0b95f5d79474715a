package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Invalid indicates an erroneous token; a diagnostic has been reported.
	Invalid Kind = iota
	// EOF marks the end of the input.
	EOF
	// NL is a line break; statements may end on it.
	NL

	// Name is an unquoted symbol run or a quoted string.
	Name
	// IntLit is an integer literal.
	IntLit
	// FloatLit is a floating point literal.
	FloatLit

	Colon     // :
	Semicolon // ;
	Comma     // ,
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }

	// Boolean function operators.
	Not   // !
	And   // &
	Or    // | или +
	Xor   // ^
	Prime // '
)

var kindNames = [...]string{
	Invalid:   "ERROR",
	EOF:       "END",
	NL:        "NL",
	Name:      "SYMBOL",
	IntLit:    "INT_NUM",
	FloatLit:  "FLOAT_NUM",
	Colon:     "COLON",
	Semicolon: "SEMI",
	Comma:     "COMMA",
	Plus:      "PLUS",
	Minus:     "MINUS",
	Star:      "MULT",
	Slash:     "DIV",
	LParen:    "LP",
	RParen:    "RP",
	LBrace:    "LCB",
	RBrace:    "RCB",
	Not:       "NOT",
	And:       "AND",
	Or:        "OR",
	Xor:       "XOR",
	Prime:     "PRIME",
}

var kindText = [...]string{
	EOF:       "end of file",
	NL:        "newline",
	Name:      "name",
	IntLit:    "integer",
	FloatLit:  "number",
	Colon:     "':'",
	Semicolon: "';'",
	Comma:     "','",
	Plus:      "'+'",
	Minus:     "'-'",
	Star:      "'*'",
	Slash:     "'/'",
	LParen:    "'('",
	RParen:    "')'",
	LBrace:    "'{'",
	RBrace:    "'}'",
	Not:       "'!'",
	And:       "'&'",
	Or:        "'|'",
	Xor:       "'^'",
	Prime:     "'''",
}

// String returns the dump name of the kind (used by `dotlib tokenize`).
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Describe returns the kind as it is named in diagnostics.
func (k Kind) Describe() string {
	if int(k) < len(kindText) && kindText[k] != "" {
		return kindText[k]
	}
	return "invalid token"
}

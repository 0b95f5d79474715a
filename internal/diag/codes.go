package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexNewlineInString          Code = 1005

	// Несовпадение токенов
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynExpectLibrary   Code = 2002
	SynExpectColon     Code = 2003
	SynExpectSemicolon Code = 2004
	SynExpectLParen    Code = 2005
	SynExpectLBrace    Code = 2006
	SynUnclosedBrace   Code = 2007
	SynExpectName      Code = 2008
	SynTrailingContent Code = 2009
	SynExpectValue     Code = 2010
	SynUnclosedParen   Code = 2011

	// Структурные ошибки
	SynUnknownAttribute   Code = 2100
	SynMissingSeparator   Code = 2101
	SynEmptyVectorElement Code = 2102
	SynBadGroupValue      Code = 2103
	SynBadListShape       Code = 2104
	SynNestingTooDeep     Code = 2105
	SynBadDefine          Code = 2106
	SynBadListElement     Code = 2107

	// Несовпадение типов значений
	TypeExpectString    Code = 2200
	TypeExpectInt       Code = 2201
	TypeExpectFloat     Code = 2202
	TypeBadVectorNumber Code = 2203
	TypeBadExprOperand  Code = 2204

	// Булевы функции
	ExprUnexpectedToken Code = 2300
	ExprBadConstant     Code = 2301
	ExprUnclosedParen   Code = 2302
	ExprUnknownChar     Code = 2303
	ExprMissingOperand  Code = 2304

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Наблюдаемость
	ObsInfo    Code = 5000
	ObsTimings Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Malformed number",
		LexNewlineInString:          "Newline in string literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectLibrary:            "Expected 'library'",
		SynExpectColon:              "Expected ':'",
		SynExpectSemicolon:          "Expected ';'",
		SynExpectLParen:             "Expected '('",
		SynExpectLBrace:             "Expected '{'",
		SynUnclosedBrace:            "Unclosed '{'",
		SynExpectName:               "Expected attribute name",
		SynTrailingContent:          "Content after library group",
		SynExpectValue:              "Expected value",
		SynUnclosedParen:            "Unclosed '('",
		SynUnknownAttribute:         "Unknown attribute",
		SynMissingSeparator:         "Missing ',' or ')'",
		SynEmptyVectorElement:       "Empty vector element",
		SynBadGroupValue:            "Invalid group value",
		SynBadListShape:             "Invalid attribute value list",
		SynNestingTooDeep:           "Nesting too deep",
		SynBadDefine:                "Invalid define",
		SynBadListElement:           "Unreadable list element",
		TypeExpectString:            "Expected string value",
		TypeExpectInt:               "Expected integer value",
		TypeExpectFloat:             "Expected float value",
		TypeBadVectorNumber:         "Vector element is not a number",
		TypeBadExprOperand:          "Invalid expression operand",
		ExprUnexpectedToken:         "Unexpected token in function",
		ExprBadConstant:             "Constant must be 0 or 1",
		ExprUnclosedParen:           "Unclosed '(' in function",
		ExprUnknownChar:             "Unknown character in function",
		ExprMissingOperand:          "Missing operand in function",
		IOLoadFileError:             "I/O load file error",
		IOCacheError:                "Cache error",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

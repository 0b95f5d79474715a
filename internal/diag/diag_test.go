package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liberty/internal/source"
)

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code Code
		cat  Category
		err  error
		id   string
	}{
		{LexUnknownChar, CatLex, ErrLex, "LEX1001"},
		{SynExpectColon, CatTokenMismatch, ErrTokenMismatch, "SYN2003"},
		{SynUnknownAttribute, CatStructural, ErrStructural, "SYN2100"},
		{TypeExpectFloat, CatTypeMismatch, ErrTypeMismatch, "SYN2202"},
		{ExprBadConstant, CatExpression, ErrExpression, "SYN2301"},
		{IOLoadFileError, CatIO, ErrIO, "IO4001"},
		{UnknownCode, CatUnknown, ErrUnknown, "E0000"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.cat, tt.code.Category())
			assert.Equal(t, tt.err, tt.cat.Err())
			assert.Equal(t, tt.id, tt.code.ID())
		})
	}
	assert.Equal(t, "DOTLIB_LEX", CatLex.String())
	assert.Equal(t, "[SYN2003]: Expected ':'", SynExpectColon.String())
}

func TestBagLimitAndQueries(t *testing.T) {
	bag := NewBag(2)
	assert.True(t, bag.Add(New(SevWarning, SynTrailingContent, source.Span{}, "w")))
	assert.False(t, bag.HasErrors())
	assert.True(t, bag.HasWarnings())
	assert.True(t, bag.Add(NewError(SynExpectColon, source.Span{Start: 3, End: 4}, "e")))
	assert.False(t, bag.Add(NewError(SynExpectColon, source.Span{}, "dropped")))
	assert.Equal(t, 2, bag.Len())
	assert.Equal(t, 1, bag.ErrorCount())

	unbounded := NewBag(0)
	for range 100 {
		unbounded.Add(NewError(LexUnknownChar, source.Span{}, "x"))
	}
	assert.Equal(t, 100, unbounded.Len())
	unbounded.Dedup()
	assert.Equal(t, 1, unbounded.Len())
}

func TestBagSort(t *testing.T) {
	bag := NewBag(0)
	bag.Add(New(SevWarning, SynTrailingContent, source.Span{Start: 5, End: 6}, "b"))
	bag.Add(NewError(SynExpectColon, source.Span{Start: 5, End: 6}, "a"))
	bag.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 2}, "c"))
	bag.Sort()

	items := bag.Items()
	assert.Equal(t, LexUnknownChar, items[0].Code)
	assert.Equal(t, SevError, items[1].Severity)
	assert.Equal(t, SevWarning, items[2].Severity)
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	b := ReportError(r, SynExpectSemicolon, source.Span{Start: 1, End: 2}, "';' is expected").
		WithNote(source.Span{Start: 0, End: 1}, "statement starts here").
		WithFix("insert ';'", FixEdit{Span: source.Span{Start: 2, End: 2}, NewText: ";"})
	b.Emit()
	b.Emit()

	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Len(t, d.Notes, 1)
	require.Len(t, d.Fixes, 1)
	assert.Equal(t, ";", d.Fixes[0].Edits[0].NewText)
	assert.Equal(t, CatTokenMismatch, d.Category())
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 3}
	r.Report(LexUnknownChar, SevError, sp, "bad", nil, nil)
	r.Report(LexUnknownChar, SevError, sp, "bad", nil, nil)
	r.Report(LexUnknownChar, SevError, sp, "other", nil, nil)
	assert.Equal(t, 2, bag.Len())
}

func TestParseErrorFromBag(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("cells.lib", []byte("library (x) {\n  area : \"abc\" ;\n}\n"))

	bag := NewBag(0)
	assert.Nil(t, FirstError(bag, fs))

	bag.Add(New(SevWarning, SynTrailingContent, source.Span{File: id}, "ignored"))
	bag.Add(NewError(TypeExpectFloat, source.Span{File: id, Start: 23, End: 28}, "float value is expected"))

	pe := FirstError(bag, fs)
	require.NotNil(t, pe)
	assert.Equal(t, "cells.lib:2:10: SYN2202: float value is expected", pe.Error())
	assert.True(t, errors.Is(pe, ErrTypeMismatch))
	assert.Equal(t, CatTypeMismatch, pe.Category())

	var target *ParseError
	assert.True(t, errors.As(error(pe), &target))
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/work")
	id := fs.Add("/work/libs/a.lib", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		NewError(SynUnexpectedToken, source.Span{File: id, Start: 0, End: 1}, "first line\nsecond").
			WithNote(source.Span{File: id, Start: 2, End: 3}, "note line"),
		New(SevWarning, SynTrailingContent, source.Span{File: id, Start: 2, End: 3}, "another"),
	}

	want := "error SYN2001 libs/a.lib:1:1 first line second\n" +
		"note SYN2001 libs/a.lib:2:1 note line\n" +
		"warning SYN2009 libs/a.lib:2:1 another"
	assert.Equal(t, want, FormatShortDiagnostics(diags, fs, true))
	assert.Empty(t, FormatShortDiagnostics(nil, fs, true))
}

func TestSeverityNames(t *testing.T) {
	assert.Equal(t, "ERROR", SevError.String())
	assert.Equal(t, "warning", SevWarning.Label())
	assert.Equal(t, "UNKNOWN", Severity(9).String())
	assert.Equal(t, "info", Severity(9).Label())
}

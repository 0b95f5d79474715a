package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liberty/internal/diag"
	"liberty/internal/source"
	"liberty/internal/token"
)

func TestJSONBasic(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         source.PathBase,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), buf.String())
	require.Equal(t, 1, out.Count)
	require.Len(t, out.Diagnostics, 1)

	d := out.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "SYN2004", d.Code)
	assert.Equal(t, "DOTLIB_PARSER", d.Category)
	assert.Equal(t, LocationJSON{
		File: "std.lib", StartByte: 23, EndByte: 26,
		StartLine: 2, StartCol: 10, EndLine: 2, EndCol: 13,
	}, d.Location)

	require.Len(t, d.Notes, 1)
	assert.Equal(t, "library group opened here", d.Notes[0].Message)

	require.Len(t, d.Fixes, 1)
	require.Len(t, d.Fixes[0].Edits, 1)
	edit := d.Fixes[0].Edits[0]
	assert.Equal(t, ";", edit.NewText)
	assert.Equal(t, []string{"  area : 1.5"}, edit.BeforeLines)
	assert.Equal(t, []string{"  area : 1.5;"}, edit.AfterLines)
}

func TestJSONOmitsOptionalParts(t *testing.T) {
	bag, fs := sampleBag(t)
	out, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: source.PathBase})
	require.NoError(t, err)
	require.Len(t, out.Diagnostics, 1)
	d := out.Diagnostics[0]
	assert.Empty(t, d.Notes)
	assert.Empty(t, d.Fixes)
	assert.Zero(t, d.Location.StartLine)
}

func TestJSONMaxAndIOErrors(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "cannot read x.lib"))
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "cannot read y.lib"))

	out, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1, IncludePositions: true})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "IO4001", out.Diagnostics[0].Code)
	assert.Equal(t, LocationJSON{}, out.Diagnostics[0].Location)
}

func TestJSONNilBag(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, nil, source.NewFileSet(), JSONOpts{}))
	assert.JSONEq(t, `{"diagnostics":[],"count":0}`, buf.String())
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.lib", []byte("a : \"b c\" ;\n"))
	toks := []token.Token{
		{Kind: token.Name, Text: "a", Span: source.Span{File: id, Start: 0, End: 1}},
		{Kind: token.Colon, Text: ":", Span: source.Span{File: id, Start: 2, End: 3}},
		{Kind: token.Name, Text: "b c", Quoted: true, Span: source.Span{File: id, Start: 4, End: 9}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 12, End: 12}},
	}

	var pretty bytes.Buffer
	require.NoError(t, FormatTokensPretty(&pretty, toks, fs))
	assert.Contains(t, pretty.String(), `"b c" (quoted) at 1:5-1:10`)

	var js bytes.Buffer
	require.NoError(t, FormatTokensJSON(&js, toks, fs))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &out))
	require.Len(t, out, 4)
	assert.True(t, out[2].Quoted)
	assert.Equal(t, uint32(5), out[2].Col)
}

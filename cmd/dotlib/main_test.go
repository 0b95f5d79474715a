package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const badLib = "library (bad) {\n  cell (X) {\n    area : \"big\" ;\n  }\n}\n"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var out, errOut bytes.Buffer
	err := execute(append([]string{"--color=off"}, args...), &out, &errOut)
	return out.String(), errOut.String(), err
}

func testdata(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func writeLib(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseTree(t *testing.T) {
	out, _, err := run(t, "parse", testdata("basic.lib"))
	require.NoError(t, err)
	assert.Contains(t, out, "group")
	assert.Contains(t, out, "AND2")
}

func TestParseLibertyRoundTrip(t *testing.T) {
	out, _, err := run(t, "parse", "--format=liberty", testdata("nosemi.lib"))
	require.NoError(t, err)
	assert.Contains(t, out, "library (nosemi)")

	dir := t.TempDir()
	path := writeLib(t, dir, "again.lib", out)
	again, _, err := run(t, "parse", "--format=liberty", path)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestParseJSON(t *testing.T) {
	out, _, err := run(t, "parse", "--format=json", testdata("basic.lib"))
	require.NoError(t, err)
	var doc parsedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.True(t, doc.OK)
	require.NotNil(t, doc.Tree)
	assert.Equal(t, "group", doc.Tree.Kind)
	assert.Equal(t, uint32(11), doc.Stats["group"])
}

func TestParseStatsUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := testdata("basic.lib")
	var first, second bytes.Buffer
	require.NoError(t, execute([]string{"parse", "--format=stats", path}, &first, &bytes.Buffer{}))
	require.NoError(t, execute([]string{"parse", "--format=stats", path}, &second, &bytes.Buffer{}))
	assert.NotContains(t, first.String(), "(cached)")
	assert.Contains(t, second.String(), "(cached)")
	assert.Contains(t, second.String(), "group      11")

	var third bytes.Buffer
	require.NoError(t, execute([]string{"parse", "--format=stats", "--no-cache", path}, &third, &bytes.Buffer{}))
	assert.NotContains(t, third.String(), "(cached)")
}

func TestParseFailureExitsWithErrFailed(t *testing.T) {
	path := writeLib(t, t.TempDir(), "bad.lib", badLib)
	out, errOut, err := run(t, "parse", path)
	require.ErrorIs(t, err, errFailed)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "SYN2202")
	assert.Contains(t, errOut, "1 error, 0 warnings")
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeLib(t, dir, "a.lib", "library (a) { }\n")
	writeLib(t, dir, "b.lib", badLib)
	writeLib(t, dir, "notes.txt", "ignored")

	out, errOut, err := run(t, "parse", "--ui=off", "--format=stats", dir)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "a.lib ==")
	assert.Contains(t, out, "b.lib ==")
	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, errOut, "SYN2202")
}

func TestParseEmptyDir(t *testing.T) {
	_, errOut, err := run(t, "parse", "--ui=off", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, errOut, "no .lib files")
}

func TestParseUnknownFormat(t *testing.T) {
	_, _, err := run(t, "parse", "--format=xml", testdata("basic.lib"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFailed)
}

func TestParseMissingFile(t *testing.T) {
	_, _, err := run(t, "parse", filepath.Join(t.TempDir(), "missing.lib"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat path")
}

func TestParseStrictSemicolons(t *testing.T) {
	_, errOut, err := run(t, "parse", "--allow-no-semi=false", testdata("nosemi.lib"))
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, errOut, "error")
}

func TestDiagShort(t *testing.T) {
	path := writeLib(t, t.TempDir(), "bad.lib", badLib)
	out, _, err := run(t, "diag", "--format=short", path)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "error SYN2202 ")
	assert.Contains(t, out, "bad.lib:3:12 ")
}

func TestDiagJSON(t *testing.T) {
	path := writeLib(t, t.TempDir(), "bad.lib", badLib)
	out, _, err := run(t, "diag", "--format=json", path)
	require.ErrorIs(t, err, errFailed)
	var doc struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code     string `json:"code"`
			Category string `json:"category"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, 1, doc.Count)
	assert.Equal(t, "SYN2202", doc.Diagnostics[0].Code)
}

func TestDiagCleanFile(t *testing.T) {
	out, _, err := run(t, "diag", testdata("basic.lib"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiagFormatFromEnv(t *testing.T) {
	path := writeLib(t, t.TempDir(), "bad.lib", badLib)
	t.Setenv("DOTLIB_FORMAT", "short")
	out, _, err := run(t, "diag", path)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "error SYN2202")
	assert.NotContains(t, out, "^")
}

func TestDiagFormatFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeLib(t, dir, "bad.lib", badLib)
	cfg := writeLib(t, dir, "dotlib.toml", "[output]\nformat = \"short\"\n")
	out, _, err := run(t, "--config", cfg, "diag", path)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "error SYN2202")
}

func TestBadConfigFile(t *testing.T) {
	cfg := writeLib(t, t.TempDir(), "dotlib.toml", "[output]\nfromat = \"short\"\n")
	_, _, err := run(t, "--config", cfg, "diag", testdata("basic.lib"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestTokenize(t *testing.T) {
	out, _, err := run(t, "tokenize", testdata("nosemi.lib"))
	require.NoError(t, err)
	assert.Contains(t, out, `"nosemi"`)
	assert.Contains(t, out, "END")

	sym, _, err := run(t, "tokenize", "--symbol", "--format=json", testdata("nosemi.lib"))
	require.NoError(t, err)
	assert.Contains(t, sym, `"text": "1ns"`)
}

func TestDebugEchoesAttributes(t *testing.T) {
	_, errOut, err := run(t, "parse", "--debug", "--format=stats", testdata("nosemi.lib"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "# dotlib trace session=")
	assert.Contains(t, errOut, "direction")
}

func TestRingTraceDumpedOnExit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "trace.ndjson")
	_, _, err := run(t, "--trace-level=detail", "--trace-mode=ring", "--trace="+out,
		"parse", "--no-cache", "--format=stats", filepath.Dir(testdata("basic.lib")))
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"parse_dir"`)
	assert.Contains(t, string(data), `"name":"file"`)
	assert.Contains(t, string(data), `"name":"parse"`)
}

func TestDiagPathMode(t *testing.T) {
	path := writeLib(t, t.TempDir(), "bad.lib", badLib)
	out, _, err := run(t, "diag", "--path-mode=basename", path)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "bad.lib:3:12: ERROR SYN2202")

	_, _, err = run(t, "diag", "--path-mode=short", path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFailed)
}

func TestTimings(t *testing.T) {
	_, errOut, err := run(t, "parse", "--timings", "--no-cache", "--format=stats", testdata("basic.lib"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "OBS5001")
}

func TestProfiles(t *testing.T) {
	dir := t.TempDir()
	mem := filepath.Join(dir, "mem.pprof")
	_, _, err := run(t, "--memprofile", mem, "parse", "--format=stats", testdata("basic.lib"))
	require.NoError(t, err)
	_, err = os.Stat(mem)
	assert.NoError(t, err)
}

func TestVersionJSON(t *testing.T) {
	out, _, err := run(t, "version", "--format=json")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "dotlib", payload.Tool)
	assert.NotEmpty(t, payload.Version)
}

func TestVersionPretty(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dotlib ")
}

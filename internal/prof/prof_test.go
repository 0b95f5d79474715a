package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	stop, err := Session(cpu, mem, "")
	require.NoError(t, err)
	require.NoError(t, stop())

	for _, p := range []string{cpu, mem} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestSessionNothingRequested(t *testing.T) {
	stop, err := Session("", "", "")
	require.NoError(t, err)
	assert.NoError(t, stop())
}

func TestSessionBadPath(t *testing.T) {
	_, err := Session(filepath.Join(t.TempDir(), "missing", "cpu.pprof"), "", "")
	assert.Error(t, err)
}

func TestSessionRuntimeTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.trace")
	stop, err := Session("", "", path)
	require.NoError(t, err)
	require.NoError(t, stop())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

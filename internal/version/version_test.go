package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()
	v, c, m, d := Version, GitCommit, GitMessage, BuildDate
	t.Cleanup(func() { Version, GitCommit, GitMessage, BuildDate = v, c, m, d })
}

func TestVersion_DefaultValues(t *testing.T) {
	assert.NotEmpty(t, Version)
}

func TestColored(t *testing.T) {
	restore(t)
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	Version = "1.2.3-rc.1"
	assert.Equal(t, "1.2.3-rc.1", Colored())

	Version = "nightly"
	assert.Equal(t, "nightly", Colored())
}

func TestInfo(t *testing.T) {
	restore(t)
	Version = "1.2.3"
	GitCommit = "abc123def456"
	GitMessage = ""
	BuildDate = "2024-01-15T10:30:00Z"

	info := Info(false)
	assert.Contains(t, info, "dotlib 1.2.3\n")
	assert.Contains(t, info, "commit: abc123def456\n")
	assert.Contains(t, info, "built: 2024-01-15T10:30:00Z\n")
	assert.NotContains(t, info, "message:")
	assert.Contains(t, info, "go: ")
}

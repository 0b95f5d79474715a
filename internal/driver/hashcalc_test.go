package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"liberty/internal/parser"
)

func digest(b byte) Digest {
	var d Digest
	for i := range d {
		d[i] = b
	}
	return d
}

func TestCombineDigestDeterministic(t *testing.T) {
	a := combineDigest(digest('A'), digest('B'), digest('C'))
	b := combineDigest(digest('A'), digest('B'), digest('C'))
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())

	// порядок зависимостей важен
	assert.NotEqual(t, a, combineDigest(digest('A'), digest('C'), digest('B')))
	assert.NotEqual(t, a, combineDigest(digest('A')))
}

func TestCacheKeyTracksOptions(t *testing.T) {
	content := []byte("library (L) { }\n")
	base := parser.DefaultOptions()

	assert.Equal(t, CacheKey(content, base), CacheKey(content, base))

	strict := base
	strict.AllowNoSemi = false
	assert.NotEqual(t, CacheKey(content, base), CacheKey(content, strict))

	shallow := base
	shallow.MaxDepth = 3
	assert.NotEqual(t, CacheKey(content, base), CacheKey(content, shallow))

	debug := base
	debug.Debug = true
	assert.Equal(t, CacheKey(content, base), CacheKey(content, debug), "debug echo does not change the result")

	assert.NotEqual(t, CacheKey(content, base), CacheKey([]byte("library (M) { }\n"), base))
	assert.Len(t, CacheKey(content, base).String(), 64)
}

package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"liberty/internal/parser"
)

// Digest is a SHA-256 sum of file content or of a cache key.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// ContentDigest hashes the raw bytes of a file.
func ContentDigest(content []byte) Digest {
	return sha256.Sum256(content)
}

// optionsDigest hashes the parser options that change the outcome of a
// parse. Reporter, Tracer and Hints do not.
func optionsDigest(opts parser.Options) Digest {
	s := fmt.Sprintf("schema=%d allow_no_semi=%t max_depth=%d",
		diskCacheSchemaVersion, opts.AllowNoSemi, opts.MaxDepth)
	return sha256.Sum256([]byte(s))
}

// combineDigest: H(content || dep1 || dep2 ...). deps уже в детерминированном порядке.
func combineDigest(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CacheKey is the disk cache key of content parsed with opts.
func CacheKey(content []byte, opts parser.Options) Digest {
	return combineDigest(ContentDigest(content), optionsDigest(opts))
}

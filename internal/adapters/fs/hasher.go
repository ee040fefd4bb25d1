package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/stitch/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher derives cache keys with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// CacheKey hashes the logical path together with the ordered search roots,
// so the same logical path compiled against a different load path gets a different key.
func (h *Hasher) CacheKey(logicalPath string, roots []string) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(logicalPath)
	_, _ = hasher.Write([]byte{0})

	for _, root := range roots {
		_, _ = hasher.WriteString(root)
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}

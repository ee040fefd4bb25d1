package bundler

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is the published digest format, not a security boundary
	"encoding/hex"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
)

// Derive computes the metadata of a rendered graph. The mtime is the latest
// mtime of every contributing unit and the digest covers the exact rendered bytes.
func Derive(g *domain.DependencyGraph, chunks [][]byte) domain.Metadata {
	root := g.Root()

	h := sha1.New() //nolint:gosec // see import
	var length int64
	for _, c := range chunks {
		_, _ = h.Write(c)
		length += int64(len(c))
	}

	meta := domain.Metadata{
		LogicalPath:     root.LogicalPath,
		Digest:          hex.EncodeToString(h.Sum(nil)),
		Length:          length,
		MTime:           root.MTime,
		ContentType:     root.ContentType,
		FormatExtension: root.FormatExtension,
		Sources:         make([]domain.SourceStamp, 0, g.Len()),
	}

	for u := range g.Units() {
		if u.MTime.After(meta.MTime) {
			meta.MTime = u.MTime
		}
		meta.Sources = append(meta.Sources, domain.SourceStamp{Path: u.Path, MTime: u.MTime})
	}

	return meta
}

// StaleCheck reports whether any source recorded in meta has changed since it was captured.
// A source that can no longer be stated counts as changed.
func StaleCheck(meta domain.Metadata, stater ports.FileStater) bool {
	for _, src := range meta.Sources {
		mtime, err := stater.ModTime(src.Path)
		if err != nil {
			return true
		}
		if mtime.After(src.MTime) {
			return true
		}
	}
	return false
}

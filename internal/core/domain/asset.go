package domain

import (
	"bytes"
	"io"
	"iter"
	"strings"
	"time"
)

// SourceStamp records a contributing file and the modification time it had when the asset was built.
type SourceStamp struct {
	Path  string    `json:"path"`
	MTime time.Time `json:"mtime"`
}

// Metadata describes a concatenated asset.
type Metadata struct {
	LogicalPath     string        `json:"logical_path"`
	Digest          string        `json:"digest"`
	Length          int64         `json:"length"`
	MTime           time.Time     `json:"mtime"`
	ContentType     string        `json:"content_type"`
	FormatExtension string        `json:"format_extension"`
	Sources         []SourceStamp `json:"sources"`
}

// Asset is the concatenated output of a root and everything it requires or includes.
type Asset struct {
	Metadata
	chunks [][]byte
}

// NewAsset creates an Asset from its metadata and rendered chunks.
func NewAsset(meta Metadata, chunks [][]byte) *Asset {
	return &Asset{Metadata: meta, chunks: chunks}
}

// Each yields the body in the order it was rendered.
func (a *Asset) Each() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, c := range a.chunks {
			if !yield(c) {
				return
			}
		}
	}
}

// Bytes returns the full body.
func (a *Asset) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(int(a.Length))
	for c := range a.Each() {
		buf.Write(c)
	}
	return buf.Bytes()
}

// String returns the full body as a string.
func (a *Asset) String() string {
	return string(a.Bytes())
}

// WriteTo writes the body to w.
func (a *Asset) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for c := range a.Each() {
		n, err := w.Write(c)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// DigestPath returns the logical path with the digest inserted before the format extension,
// e.g. "application-<digest>.js".
func (a *Asset) DigestPath() string {
	base := strings.TrimSuffix(a.LogicalPath, a.FormatExtension)
	return base + "-" + a.Digest + a.FormatExtension
}

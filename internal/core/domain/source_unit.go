package domain

import (
	"path/filepath"
	"time"
)

// SourceUnit is a single resolved, transformed and parsed source file.
// It is built once per pass and not modified after the builder finishes it.
type SourceUnit struct {
	// Key identifies the unit within a pass. It is the interned absolute path.
	Key InternedString
	// LogicalPath is the path the unit was first requested by.
	LogicalPath string
	// Path is the absolute path of the backing file.
	Path string
	// Source is the processed text before directive stripping.
	Source string
	// ContentType is the MIME type derived from the format extension.
	ContentType string
	// FormatExtension is the output extension, e.g. ".js".
	FormatExtension string
	// Header is the leading comment block, preserved verbatim.
	Header string
	// Body is the rest of the text with directive lines stripped and include points marked.
	Body []Segment
	// Directives lists every require and include in file order.
	Directives []Directive
	// MTime is the modification time of the backing file.
	MTime time.Time
}

// Dir returns the directory containing the unit's backing file.
func (u *SourceUnit) Dir() string {
	return filepath.Dir(u.Path)
}

// OwnLength returns the byte length of the unit's own contribution, excluding spliced includes.
func (u *SourceUnit) OwnLength() int {
	n := len(u.Header)
	for _, seg := range u.Body {
		n += len(seg.Text)
	}
	return n
}

// Transformed is the output of a source transform.
type Transformed struct {
	Text            string
	ContentType     string
	FormatExtension string
}

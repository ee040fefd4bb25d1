package domain

import "unique"

// InternedString is an interned absolute source path. Comparing two keys is a
// pointer comparison, which keeps the builder's state maps cheap.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the path.
func (is InternedString) String() string {
	return is.h.Value()
}

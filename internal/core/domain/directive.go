package domain

// DirectiveKind identifies how a directive contributes its target to the output.
type DirectiveKind uint8

const (
	// DirectiveRequire hoists the target ahead of the requiring unit, at most once per pass.
	DirectiveRequire DirectiveKind = iota + 1
	// DirectiveInclude splices the target in place of the directive line, every time it appears.
	DirectiveInclude
)

// String returns the directive keyword.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveRequire:
		return "require"
	case DirectiveInclude:
		return "include"
	default:
		return "unknown"
	}
}

// SearchMode controls where a directive's target is looked up.
type SearchMode uint8

const (
	// SearchLocal looks in the declaring unit's directory before the search roots.
	SearchLocal SearchMode = iota
	// SearchRoots only consults the search roots, as with <angled> targets.
	SearchRoots
)

// Directive is a single require or include line found in a source unit.
type Directive struct {
	Kind   DirectiveKind
	Target string
	Line   int
	Search SearchMode
}

// Segment is one piece of a unit's directive-stripped body.
// A text segment carries literal text; an include segment points at a directive.
type Segment struct {
	Text      string
	Directive int
}

// TextSegment returns a literal text segment.
func TextSegment(text string) Segment {
	return Segment{Text: text, Directive: -1}
}

// IncludeSegment returns a splice point for the directive at the given index.
func IncludeSegment(directive int) Segment {
	return Segment{Directive: directive}
}

// IsInclude reports whether the segment is a splice point.
func (s Segment) IsInclude() bool {
	return s.Directive >= 0
}

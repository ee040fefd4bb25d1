// Package directive extracts require and include directives from source text.
package directive

import (
	"regexp"
	"strings"

	"go.trai.ch/stitch/internal/core/domain"
)

// directivePattern matches a whole directive line. The comment marker and the
// "=" are optional; the target may be bare, "quoted", 'quoted' or <angled>.
var directivePattern = regexp.MustCompile(
	`^\s*(?:(?://+|#+|--|/\*+|\*+)\s*)?=?\s*(require|include)\s+` +
		`(?:"([^"]+)"|'([^']+)'|<([^>]+)>|([^\s"'<>*]+))\s*(?:\*+/)?\s*$`,
)

var commentPattern = regexp.MustCompile(`^\s*(?://|#|--|/\*|\*)`)

// Result is a parsed source unit.
type Result struct {
	// Header is the leading block of comment and blank lines, ending before
	// the first directive or code line outside a block comment. Directive
	// lines inside a leading block comment are removed from it.
	Header string
	// Body is everything after the header with directive lines removed.
	// Include directives leave a splice point behind.
	Body []domain.Segment
	// Directives are every require and include, in file order.
	Directives []domain.Directive
}

type parser struct {
	res     Result
	pending strings.Builder
}

func (p *parser) flush() {
	if p.pending.Len() > 0 {
		p.res.Body = append(p.res.Body, domain.TextSegment(p.pending.String()))
		p.pending.Reset()
	}
}

func (p *parser) add(d domain.Directive) {
	p.res.Directives = append(p.res.Directives, d)
	if d.Kind == domain.DirectiveInclude {
		p.flush()
		p.res.Body = append(p.res.Body, domain.IncludeSegment(len(p.res.Directives)-1))
	}
}

// Parse splits text into header, body and directives. Includes declared in
// the header splice at the start of the body.
func Parse(text string) Result {
	lines := splitLines(text)
	headerEnd := headerLength(lines)

	var p parser
	var header strings.Builder
	for i, line := range lines[:headerEnd] {
		d, ok := ParseLine(line)
		if !ok {
			header.WriteString(line)
			continue
		}
		header.WriteString(delimiters(line))
		d.Line = i + 1
		p.add(d)
	}
	p.res.Header = header.String()

	for i := headerEnd; i < len(lines); i++ {
		d, ok := ParseLine(lines[i])
		if !ok {
			p.pending.WriteString(lines[i])
			continue
		}
		d.Line = i + 1
		p.add(d)
	}
	p.flush()

	return p.res
}

// ParseLine reports whether line is a directive and returns it.
// The returned directive has no line number.
func ParseLine(line string) (domain.Directive, bool) {
	m := directivePattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return domain.Directive{}, false
	}

	d := domain.Directive{Kind: domain.DirectiveRequire}
	if m[1] == "include" {
		d.Kind = domain.DirectiveInclude
	}

	switch {
	case m[2] != "":
		d.Target = m[2]
	case m[3] != "":
		d.Target = m[3]
	case m[4] != "":
		d.Target = m[4]
		d.Search = domain.SearchRoots
	default:
		d.Target = m[5]
	}

	return d, true
}

// headerLength returns the number of leading lines that form the header.
// A leading block comment belongs to the header in full, directives included.
func headerLength(lines []string) int {
	inBlock := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inBlock {
			if strings.Contains(trimmed, "*/") {
				inBlock = false
			}
			continue
		}

		_, isDirective := ParseLine(line)
		switch {
		case opensBlock(trimmed):
			inBlock = true
		case isDirective:
			return i
		case trimmed == "":
		case commentPattern.MatchString(line):
		default:
			return i
		}
	}
	return len(lines)
}

func opensBlock(trimmed string) bool {
	return strings.HasPrefix(trimmed, "/*") && !strings.Contains(trimmed[2:], "*/")
}

// delimiters returns the block comment markers a header directive line carries,
// so removing the directive keeps the comment balanced.
func delimiters(line string) string {
	trimmed := strings.TrimSpace(line)
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	switch {
	case opensBlock(trimmed):
		return indent + "/*\n"
	case strings.Contains(trimmed, "*/"):
		return indent + "*/\n"
	default:
		return ""
	}
}

// splitLines splits text after every newline, keeping the terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

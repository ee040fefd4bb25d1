// Package bundler resolves a root source file and everything it requires or
// includes into a dependency graph, and renders that graph as one asset.
package bundler

import (
	"context"
	"path"
	"strings"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/stitch/internal/engine/directive"
	"go.trai.ch/zerr"
)

// Builder builds dependency graphs. It keeps no state between calls and is safe
// for concurrent use when its collaborators are.
type Builder struct {
	resolver  ports.PathResolver
	transform ports.SourceTransform
	stater    ports.FileStater
	limits    domain.Limits

	// contentTypes overrides the default extension table when deciding
	// whether a directive target already names its format.
	contentTypes map[string]string
}

// NewBuilder creates a Builder.
func NewBuilder(
	resolver ports.PathResolver,
	transform ports.SourceTransform,
	stater ports.FileStater,
	limits domain.Limits,
) *Builder {
	return &Builder{
		resolver:  resolver,
		transform: transform,
		stater:    stater,
		limits:    limits,
	}
}

type frame struct {
	unit *domain.SourceUnit
	next int
	kind domain.DirectiveKind
}

type resolveKey struct {
	fromDir string
	logical string
}

// pass holds the per-call state of a single Resolve.
type pass struct {
	b        *Builder
	graph    *domain.DependencyGraph
	root     *domain.SourceUnit
	onStack  map[domain.InternedString]int
	done     map[domain.InternedString]bool
	resolved map[resolveKey]domain.InternedString
	stack    []frame
}

// WithContentTypes sets the content type overrides the transform uses, so
// targets with a configured extension are not given the root's extension.
func (b *Builder) WithContentTypes(overrides map[string]string) *Builder {
	b.contentTypes = overrides
	return b
}

// Resolve loads the root at logicalPath and walks its directives depth first.
// Required units are ordered dependencies first; each appears once. Include
// targets are loaded and linked so the renderer can splice them.
func (b *Builder) Resolve(ctx context.Context, logicalPath string) (*domain.DependencyGraph, error) {
	p := &pass{
		b:        b,
		graph:    domain.NewDependencyGraph(),
		onStack:  make(map[domain.InternedString]int),
		done:     make(map[domain.InternedString]bool),
		resolved: make(map[resolveKey]domain.InternedString),
	}

	abs, err := b.resolver.Resolve(logicalPath, "")
	if err != nil {
		return nil, err
	}

	root, err := b.load(ctx, logicalPath, abs)
	if err != nil {
		return nil, err
	}
	p.root = root
	p.graph.SetRoot(root)

	if err := p.push(root, 0); err != nil {
		return nil, err
	}

	if err := p.walk(ctx); err != nil {
		return nil, err
	}

	return p.graph, nil
}

func (p *pass) walk(ctx context.Context) error {
	for len(p.stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		top := &p.stack[len(p.stack)-1]
		if top.next == len(top.unit.Directives) {
			p.pop()
			continue
		}

		idx := top.next
		top.next++
		from := top.unit
		d := from.Directives[idx]

		target, err := p.target(ctx, from, d)
		if err != nil {
			return err
		}
		p.graph.Link(from.Key, idx, target.Key)

		switch d.Kind {
		case domain.DirectiveRequire:
			err = p.require(from, d, target)
		case domain.DirectiveInclude:
			err = p.include(from, d, target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) require(from *domain.SourceUnit, d domain.Directive, target *domain.SourceUnit) error {
	if target.ContentType != p.root.ContentType {
		err := zerr.Wrap(domain.ErrContentTypeMismatch, "required file has a different content type than the root")
		err = zerr.With(err, "logical_path", d.Target)
		err = zerr.With(err, "required_by", from.LogicalPath)
		err = zerr.With(err, "expected", p.root.ContentType)
		return zerr.With(err, "actual", target.ContentType)
	}

	if p.graph.IsRequired(target.Key) {
		return nil
	}

	switch {
	case p.onStack[target.Key] > 0:
		// Only an include frame holds the unit: it still joins the require order.
		if p.requiredOnStack(target.Key) {
			return nil
		}
		return p.push(target, domain.DirectiveRequire)
	case p.done[target.Key]:
		p.graph.AppendRequire(target.Key)
		return nil
	default:
		return p.push(target, domain.DirectiveRequire)
	}
}

// requiredOnStack reports whether key is on the stack as the root or a required unit.
func (p *pass) requiredOnStack(key domain.InternedString) bool {
	for _, f := range p.stack {
		if f.unit.Key == key && f.kind != domain.DirectiveInclude {
			return true
		}
	}
	return false
}

func (p *pass) include(from *domain.SourceUnit, d domain.Directive, target *domain.SourceUnit) error {
	switch {
	case p.onStack[target.Key] > 0:
		err := zerr.Wrap(domain.ErrCircularInclude, "include chain reaches a file that is still being built")
		err = zerr.With(err, "logical_path", d.Target)
		err = zerr.With(err, "included_by", from.LogicalPath)
		return zerr.With(err, "chain", p.chain(target))
	case p.done[target.Key]:
		return nil
	default:
		return p.push(target, domain.DirectiveInclude)
	}
}

func (p *pass) push(u *domain.SourceUnit, kind domain.DirectiveKind) error {
	if limit := p.b.limits.MaxDepth; limit > 0 && len(p.stack) >= limit {
		err := zerr.Wrap(domain.ErrGraphLimitExceeded, "directive nesting is too deep")
		err = zerr.With(err, "max_depth", limit)
		return zerr.With(err, "logical_path", u.LogicalPath)
	}
	p.onStack[u.Key]++
	p.stack = append(p.stack, frame{unit: u, kind: kind})
	return nil
}

func (p *pass) pop() {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.onStack[top.unit.Key]--
	if p.onStack[top.unit.Key] == 0 {
		p.done[top.unit.Key] = true
	}
	if top.kind == domain.DirectiveRequire {
		p.graph.AppendRequire(top.unit.Key)
	}
}

// chain returns the logical paths from the first frame for target to the top of the stack, closed by target.
func (p *pass) chain(target *domain.SourceUnit) string {
	start := 0
	for i, f := range p.stack {
		if f.unit.Key == target.Key {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(p.stack)-start+1)
	for _, f := range p.stack[start:] {
		parts = append(parts, f.unit.LogicalPath)
	}
	parts = append(parts, target.LogicalPath)
	return strings.Join(parts, " -> ")
}

// target resolves and loads the unit a directive points at, reusing units already loaded in this pass.
func (p *pass) target(ctx context.Context, from *domain.SourceUnit, d domain.Directive) (*domain.SourceUnit, error) {
	logical := d.Target
	if !p.b.hasFormatExtension(logical) && p.root.FormatExtension != "" {
		logical += p.root.FormatExtension
	}

	fromDir := from.Dir()
	if d.Search == domain.SearchRoots {
		fromDir = ""
	}

	rk := resolveKey{fromDir: fromDir, logical: logical}
	if key, ok := p.resolved[rk]; ok {
		if u, ok := p.graph.Unit(key); ok {
			return u, nil
		}
	}

	abs, err := p.b.resolver.Resolve(logical, fromDir)
	if err != nil {
		err = zerr.With(err, "required_by", from.LogicalPath)
		return nil, zerr.With(err, "line", d.Line)
	}

	key := domain.NewInternedString(abs)
	p.resolved[rk] = key
	if u, ok := p.graph.Unit(key); ok {
		return u, nil
	}

	if limit := p.b.limits.MaxUnits; limit > 0 && p.graph.Len() >= limit {
		err := zerr.Wrap(domain.ErrGraphLimitExceeded, "too many source files")
		err = zerr.With(err, "max_units", limit)
		return nil, zerr.With(err, "logical_path", logical)
	}

	u, err := p.b.load(ctx, logical, abs)
	if err != nil {
		return nil, err
	}
	p.graph.AddUnit(u)
	return u, nil
}

// load transforms, stats and parses the file at abs.
func (b *Builder) load(ctx context.Context, logical, abs string) (*domain.SourceUnit, error) {
	out, err := b.transform.Transform(ctx, abs)
	if err != nil {
		return nil, zerr.With(err, "logical_path", logical)
	}

	mtime, err := b.stater.ModTime(abs)
	if err != nil {
		return nil, zerr.With(err, "logical_path", logical)
	}

	parsed := directive.Parse(out.Text)

	return &domain.SourceUnit{
		Key:             domain.NewInternedString(abs),
		LogicalPath:     logical,
		Path:            abs,
		Source:          out.Text,
		ContentType:     out.ContentType,
		FormatExtension: out.FormatExtension,
		Header:          parsed.Header,
		Body:            parsed.Body,
		Directives:      parsed.Directives,
		MTime:           mtime,
	}, nil
}

// hasFormatExtension reports whether the logical path ends in a known format extension.
func (b *Builder) hasFormatExtension(logical string) bool {
	ext := path.Ext(logical)
	return ext != "" && domain.ContentTypeFor(ext, b.contentTypes) != domain.DefaultContentType
}

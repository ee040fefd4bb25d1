package bundler

import (
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/zerr"
)

type cursor struct {
	unit *domain.SourceUnit
	next int
}

// Render concatenates a graph: the root's header, then every required unit in
// require order, then the root's body. Include points are replaced by the
// included unit's header and body, recursively, each time they appear.
func Render(g *domain.DependencyGraph) ([][]byte, error) {
	root := g.Root()
	if root == nil {
		return nil, zerr.New("graph has no root")
	}

	var chunks [][]byte
	emit := func(s string) {
		if s != "" {
			chunks = append(chunks, []byte(s))
		}
	}

	emit(root.Header)

	for u := range g.Requires() {
		emit(u.Header)
		if err := expand(g, u, emit); err != nil {
			return nil, err
		}
	}

	if err := expand(g, root, emit); err != nil {
		return nil, err
	}

	return chunks, nil
}

// expand emits u's body, splicing includes with an explicit stack.
func expand(g *domain.DependencyGraph, u *domain.SourceUnit, emit func(string)) error {
	stack := []cursor{{unit: u}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.unit.Body) {
			stack = stack[:len(stack)-1]
			continue
		}

		seg := top.unit.Body[top.next]
		top.next++
		if !seg.IsInclude() {
			emit(seg.Text)
			continue
		}

		target, ok := g.Target(top.unit.Key, seg.Directive)
		if !ok {
			err := zerr.Wrap(domain.ErrFileNotFound, "include was never resolved")
			err = zerr.With(err, "logical_path", top.unit.Directives[seg.Directive].Target)
			return zerr.With(err, "included_by", top.unit.LogicalPath)
		}

		emit(target.Header)
		stack = append(stack, cursor{unit: target})
	}
	return nil
}

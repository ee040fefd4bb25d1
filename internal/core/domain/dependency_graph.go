// Package domain contains the core domain models for asset bundling.
package domain

import (
	"iter"
	"slices"
	"strings"
)

// DependencyGraph holds every unit reached from a root during one pass.
type DependencyGraph struct {
	root     InternedString
	units    map[InternedString]*SourceUnit
	targets  map[InternedString][]InternedString
	requires []InternedString
	required map[InternedString]struct{}
}

// NewDependencyGraph creates an empty DependencyGraph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		units:    make(map[InternedString]*SourceUnit),
		targets:  make(map[InternedString][]InternedString),
		required: make(map[InternedString]struct{}),
	}
}

// AddUnit records a unit. Adding the same key twice keeps the first unit.
func (g *DependencyGraph) AddUnit(u *SourceUnit) {
	if _, exists := g.units[u.Key]; exists {
		return
	}
	g.units[u.Key] = u
	g.targets[u.Key] = make([]InternedString, len(u.Directives))
}

// SetRoot records the root unit of the pass.
func (g *DependencyGraph) SetRoot(u *SourceUnit) {
	g.AddUnit(u)
	g.root = u.Key
}

// Root returns the root unit, or nil if none was set.
func (g *DependencyGraph) Root() *SourceUnit {
	return g.units[g.root]
}

// Unit returns the unit for the given key.
func (g *DependencyGraph) Unit(key InternedString) (*SourceUnit, bool) {
	u, ok := g.units[key]
	return u, ok
}

// Len returns the number of units in the graph.
func (g *DependencyGraph) Len() int {
	return len(g.units)
}

// Link records that directive index i of unit from resolved to unit to.
func (g *DependencyGraph) Link(from InternedString, i int, to InternedString) {
	if t, ok := g.targets[from]; ok && i >= 0 && i < len(t) {
		t[i] = to
	}
}

// Target returns the unit directive index i of unit from resolved to.
func (g *DependencyGraph) Target(from InternedString, i int) (*SourceUnit, bool) {
	t, ok := g.targets[from]
	if !ok || i < 0 || i >= len(t) {
		return nil, false
	}
	u, ok := g.units[t[i]]
	return u, ok
}

// AppendRequire appends a unit to the require order.
// It reports false if the unit was already in the order.
func (g *DependencyGraph) AppendRequire(key InternedString) bool {
	if _, ok := g.required[key]; ok {
		return false
	}
	g.required[key] = struct{}{}
	g.requires = append(g.requires, key)
	return true
}

// IsRequired reports whether the unit is already in the require order.
func (g *DependencyGraph) IsRequired(key InternedString) bool {
	_, ok := g.required[key]
	return ok
}

// Requires yields required units, dependencies before dependents.
func (g *DependencyGraph) Requires() iter.Seq[*SourceUnit] {
	return func(yield func(*SourceUnit) bool) {
		for _, key := range g.requires {
			if !yield(g.units[key]) {
				return
			}
		}
	}
}

// RequireOrder returns the logical paths of required units in emission order.
func (g *DependencyGraph) RequireOrder() []string {
	order := make([]string, 0, len(g.requires))
	for u := range g.Requires() {
		order = append(order, u.LogicalPath)
	}
	return order
}

// Units yields every unit in the graph, ordered by absolute path.
func (g *DependencyGraph) Units() iter.Seq[*SourceUnit] {
	return func(yield func(*SourceUnit) bool) {
		keys := make([]InternedString, 0, len(g.units))
		for k := range g.units {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b InternedString) int {
			return strings.Compare(a.String(), b.String())
		})
		for _, k := range keys {
			if !yield(g.units[k]) {
				return
			}
		}
	}
}

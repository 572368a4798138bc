// SPDX-License-Identifier: MIT
package graph

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/katalvlaran/provgraph/node"
)

// Add inserts n after verifying its content hash and id uniqueness.
//
// Dependency existence and acyclicity are not checked here; nodes may arrive
// in any order and TopologicalOrder reports structural problems later.
// Root ids join the root list; a flagged non-Root node marks the graph impure.
func (g *Graph) Add(n *node.Node) error {
	// 1) Reject nil and tampered nodes
	if n == nil {
		return ErrNilNode
	}
	id := n.ID()
	if !n.VerifyIntegrity() {
		g.log.Warn("node rejected", zap.String("id", id), zap.String("reason", "integrity"))
		return fmt.Errorf("%w: %q", ErrIntegrityFailure, id)
	}
	// 2) Ids are unique per graph
	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	// 3) Store node, forward and reverse adjacency
	deps := n.Dependencies()
	g.nodes[id] = n
	g.adjacency[id] = deps
	for _, d := range deps {
		set, ok := g.dependents[d]
		if !ok {
			set = make(map[string]struct{})
			g.dependents[d] = set
		}
		set[id] = struct{}{}
	}
	// 4) Classification side effects
	if n.IsRoot() {
		g.roots = append(g.roots, id)
	}
	if n.Contaminated() {
		g.pure = false
		g.impure = append(g.impure, id)
		g.log.Warn("contaminated node", zap.String("id", id), zap.Strings("flags", n.Flags()))
	}
	g.log.Debug("node added",
		zap.String("id", id),
		zap.Stringer("kind", n.Kind()),
		zap.Int("dependencies", len(deps)),
	)

	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Has reports whether id names a node in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]

	return ok
}

// Node returns the node stored under id.
func (g *Graph) Node(id string) (*node.Node, bool) {
	n, ok := g.nodes[id]

	return n, ok
}

// IDs returns all node ids sorted ascending.
func (g *Graph) IDs() []string {
	ids := lo.Keys(g.nodes)
	sort.Strings(ids)

	return ids
}

// Nodes returns all nodes sorted by id.
func (g *Graph) Nodes() []*node.Node {
	ids := g.IDs()
	out := make([]*node.Node, len(ids))
	for i, id := range ids {
		out[i] = g.nodes[id]
	}

	return out
}

// Roots returns the Root ids in insertion order.
func (g *Graph) Roots() []string { return append([]string(nil), g.roots...) }

// Dependencies returns the declared dependencies of id (nil if unknown).
func (g *Graph) Dependencies(id string) []string {
	deps, ok := g.adjacency[id]
	if !ok {
		return nil
	}

	return append([]string(nil), deps...)
}

// Dependents returns the ids that list id as a dependency, sorted ascending.
// id itself need not be present in the graph.
func (g *Graph) Dependents(id string) []string {
	out := lo.Keys(g.dependents[id])
	sort.Strings(out)

	return out
}

// IsPure reports whether no contaminated node was ever added.
func (g *Graph) IsPure() bool { return g.pure }

// Contaminated returns the ids of flagged non-Root nodes, sorted ascending.
func (g *Graph) Contaminated() []string {
	out := append([]string(nil), g.impure...)
	sort.Strings(out)

	return out
}

// MissingDependencies lists every dangling dependency edge, sorted by node id
// and then by dependency id.
func (g *Graph) MissingDependencies() []MissingDependencyError {
	var out []MissingDependencyError
	for _, id := range g.IDs() {
		deps := g.Dependencies(id)
		sort.Strings(deps)
		for _, d := range deps {
			if !g.Has(d) {
				out = append(out, MissingDependencyError{NodeID: id, DependencyID: d})
			}
		}
	}

	return out
}

// firstMissing returns the first dangling edge scanning ids ascending and
// dependencies in declared order.
func (g *Graph) firstMissing() *MissingDependencyError {
	for _, id := range g.IDs() {
		for _, d := range g.adjacency[id] {
			if !g.Has(d) {
				return &MissingDependencyError{NodeID: id, DependencyID: d}
			}
		}
	}

	return nil
}

// SPDX-License-Identifier: MIT
package graph

import "sort"

// TraceToRoots enumerates every simple path from id through its dependency
// chain to a Root node. Each path starts at id and ends at a Root.
//
// Paths are found by depth-first search with a per-branch visited set, so
// diamonds yield one path per distinct route. Dependencies are explored in
// lexicographic order, which fixes the order of the returned list. Tracing
// stops at the first Root on a branch: a Root yields [[id]]. Dangling
// dependencies are skipped and a branch revisiting one of its own nodes is
// abandoned.
//
// An unknown id, or a node with no route to any Root, yields an empty result.
func (g *Graph) TraceToRoots(id string) [][]string {
	if !g.Has(id) {
		return nil
	}
	t := &tracer{
		graph:  g,
		onPath: make(map[string]bool),
	}
	t.walk(id)

	return t.paths
}

// HasCompleteProvenance reports whether every node traces to at least one
// Root. An empty graph is trivially complete.
func (g *Graph) HasCompleteProvenance() bool {
	reach := g.rootReachability()
	for id := range g.nodes {
		if !reach[id] {
			return false
		}
	}

	return true
}

// tracer holds the DFS state of one TraceToRoots call.
type tracer struct {
	graph  *Graph
	onPath map[string]bool // ids on the current branch
	path   []string        // current branch, start first
	paths  [][]string      // completed root-terminated paths
}

func (t *tracer) walk(id string) {
	n, ok := t.graph.nodes[id]
	// 1) Dangling id or a revisit on this branch ends the branch
	if !ok || t.onPath[id] {
		return
	}
	t.onPath[id] = true
	t.path = append(t.path, id)

	// 2) A Root closes the path; otherwise descend in lexicographic order
	if n.IsRoot() {
		t.paths = append(t.paths, append([]string(nil), t.path...))
	} else {
		deps := t.graph.Dependencies(id)
		sort.Strings(deps)
		for _, d := range deps {
			t.walk(d)
		}
	}

	// 3) Backtrack so sibling branches may pass through id again
	t.path = t.path[:len(t.path)-1]
	delete(t.onPath, id)
}

// rootReachability marks the nodes owning at least one path to a Root without
// enumerating paths: a BFS from every Root along reverse (dependent) edges.
// The BFS tree route to a node, cut at its first Root, is exactly a path
// TraceToRoots would report.
func (g *Graph) rootReachability() map[string]bool {
	reach := make(map[string]bool, len(g.nodes))
	queue := make([]string, 0, len(g.roots))
	for _, r := range g.roots {
		if !reach[r] {
			reach[r] = true
			queue = append(queue, r)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for dependent := range g.dependents[id] {
			if reach[dependent] {
				continue
			}
			reach[dependent] = true
			queue = append(queue, dependent)
		}
	}

	return reach
}

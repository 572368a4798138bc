// SPDX-License-Identifier: MIT
// Package graph: cycle diagnosis for graphs that fail topological ordering.
//
// Cycles enumerates every elementary (simple) directed cycle with Johnson's
// algorithm. Start ids are taken in ascending order and each search is
// confined to the strongly connected component of the start within the ids
// not smaller than it, so every cycle is found exactly once, beginning at its
// smallest id. Edge direction is dependency direction (node → dependency).
//
// Complexity:
//
//   - Time:   O((V + E)·(C + 1))   (C = #cycles reported)
//   - Memory: O(V + E)
//
// C itself can grow exponentially with V on dense cyclic graphs; call Cycles
// for diagnosis, not on every validation.
package graph

import (
	"slices"
	"sort"
)

// Cycles reports the dependency cycles present in the graph, each closed
// ([a, b, a]) and starting at its smallest id, sorted lexicographically.
// Dangling dependencies are ignored. Returns nil for an acyclic graph.
func (g *Graph) Cycles() [][]string {
	ids := g.IDs()
	j := &johnson{graph: g}
	// 1) Each start owns the cycles whose smallest id it is
	for _, start := range ids {
		comp := g.componentOf(start)
		if len(comp) < 2 {
			continue
		}
		j.reset(start, comp)
		j.circuit(start)
	}
	// 2) Deterministic listing
	sort.Slice(j.cycles, func(a, b int) bool {
		return slices.Compare(j.cycles[a], j.cycles[b]) < 0
	})

	return j.cycles
}

// componentOf returns the strongly connected component of start in the
// subgraph of ids >= start: ids reachable from start that also reach it.
func (g *Graph) componentOf(start string) map[string]bool {
	forward := g.reach(start, func(id string) []string { return g.adjacency[id] })
	backward := g.reach(start, func(id string) []string { return g.Dependents(id) })
	comp := make(map[string]bool)
	for id := range forward {
		if backward[id] {
			comp[id] = true
		}
	}

	return comp
}

// reach collects present ids >= start reachable from start along next.
func (g *Graph) reach(start string, next func(string) []string) map[string]bool {
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, w := range next(id) {
			if seen[w] || w < start || !g.Has(w) {
				continue
			}
			seen[w] = true
			queue = append(queue, w)
		}
	}

	return seen
}

// johnson holds the search state for one start id.
type johnson struct {
	graph    *Graph
	start    string
	comp     map[string]bool
	blocked  map[string]bool
	blockMap map[string]map[string]struct{} // w → ids to unblock when w unblocks
	stack    []string
	cycles   [][]string
}

func (j *johnson) reset(start string, comp map[string]bool) {
	j.start = start
	j.comp = comp
	j.blocked = make(map[string]bool, len(comp))
	j.blockMap = make(map[string]map[string]struct{}, len(comp))
	j.stack = j.stack[:0]
}

// successors returns the dependencies of id inside the component, sorted.
func (j *johnson) successors(id string) []string {
	out := make([]string, 0, len(j.graph.adjacency[id]))
	for _, d := range j.graph.adjacency[id] {
		if j.comp[d] {
			out = append(out, d)
		}
	}
	sort.Strings(out)

	return out
}

// circuit extends the current path from v and reports whether any cycle
// through v back to start was closed.
func (j *johnson) circuit(v string) bool {
	found := false
	j.stack = append(j.stack, v)
	j.blocked[v] = true

	succ := j.successors(v)
	for _, w := range succ {
		switch {
		case w == j.start:
			cycle := append(append([]string(nil), j.stack...), j.start)
			j.cycles = append(j.cycles, cycle)
			found = true
		case !j.blocked[w]:
			if j.circuit(w) {
				found = true
			}
		}
	}

	if found {
		j.unblock(v)
	} else {
		// v stays blocked until one of its successors is freed
		for _, w := range succ {
			set, ok := j.blockMap[w]
			if !ok {
				set = make(map[string]struct{})
				j.blockMap[w] = set
			}
			set[v] = struct{}{}
		}
	}
	j.stack = j.stack[:len(j.stack)-1]

	return found
}

func (j *johnson) unblock(u string) {
	j.blocked[u] = false
	waiting := j.blockMap[u]
	delete(j.blockMap, u)
	for w := range waiting {
		if j.blocked[w] {
			j.unblock(w)
		}
	}
}

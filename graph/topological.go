// SPDX-License-Identifier: MIT
// Package graph: deterministic topological ordering (Kahn's algorithm).
//
// The ready queue is a lexicographic min-heap, so among all valid orders the
// one returned is the lexicographically smallest sequence of pop choices. The
// same graph therefore always yields the same order.
//
// Complexity:
//
//   - Time:   O((V + E) · log V)   (each id pushed/popped once)
//   - Memory: O(V)                  (in-degree map + heap)
package graph

import (
	"container/heap"
	"sort"

	"go.uber.org/zap"
)

// TopologicalOrder returns every node id such that each dependency precedes
// its dependents.
//
// Errors:
//   - *MissingDependencyError (ErrMissingDependency): first dangling edge,
//     scanning ids ascending and dependencies in declared order.
//   - *CycleError (ErrCycleDetected): some nodes could never reach in-degree 0.
//
// No partial order is returned on failure.
func (g *Graph) TopologicalOrder() ([]string, error) {
	// 1) Every edge must point at a present node
	if missing := g.firstMissing(); missing != nil {
		g.log.Debug("topological order failed", zap.Error(missing))
		return nil, missing
	}

	// 2) In-degree counts outstanding dependencies; seed with the free nodes
	inDegree := make(map[string]int, len(g.nodes))
	ready := make(idHeap, 0, len(g.nodes))
	for id, deps := range g.adjacency {
		inDegree[id] = len(deps)
		if len(deps) == 0 {
			ready = append(ready, id)
		}
	}
	heap.Init(&ready)

	// 3) Pop smallest ready id, release its dependents
	order := make([]string, 0, len(g.nodes))
	for ready.Len() > 0 {
		id := heap.Pop(&ready).(string)
		order = append(order, id)
		for dependent := range g.dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				heap.Push(&ready, dependent)
			}
		}
	}

	// 4) Anything left unordered sits on or behind a cycle
	if len(order) < len(g.nodes) {
		unresolved := make([]string, 0, len(g.nodes)-len(order))
		for id, d := range inDegree {
			if d > 0 {
				unresolved = append(unresolved, id)
			}
		}
		sort.Strings(unresolved)
		err := &CycleError{Unresolved: unresolved}
		g.log.Debug("topological order failed", zap.Error(err))

		return nil, err
	}

	return order, nil
}

// idHeap is a min-heap of node ids ordered lexicographically.
type idHeap []string

// Len returns the number of ids in the heap.
func (h idHeap) Len() int { return len(h) }

// Less orders ids ascending.
func (h idHeap) Less(i, j int) bool { return h[i] < h[j] }

// Swap swaps two ids.
func (h idHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push appends an id; used by container/heap.
func (h *idHeap) Push(x any) { *h = append(*h, x.(string)) }

// Pop removes the last id; used by container/heap.
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

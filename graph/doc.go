// SPDX-License-Identifier: MIT
// Package graph implements the derivation provenance graph: an append-only
// collection of node.Node values whose dependency ids form (or should form)
// a directed acyclic graph rooted at Root-kind nodes.
//
// What:
//
//   - Add: hash-verified, duplicate-checked insertion; tracks roots and purity.
//   - TopologicalOrder: Kahn's algorithm with lexicographic tie-breaking.
//   - TraceToRoots / HasCompleteProvenance: every simple path back to a Root.
//   - Cycles: every elementary dependency cycle (Johnson) for diagnosis.
//   - PropagateErrors: root-sum-square relative error propagation.
//
// Lifecycle:
//
//	g := graph.New(graph.WithLogger(logger))
//	_ = g.Add(r) // any order; dependencies are checked lazily
//	_ = g.Add(c)
//	order, err := g.TopologicalOrder()
//	estimates, err := g.PropagateErrors(graph.WithErrorFloor(1e-9))
//
// Edges are ids, never pointers, so cycles and dangling references are plain
// data reported by the analysis calls. Structural failures leave the graph
// intact for inspection (Cycles, MissingDependencies).
//
// Complexity:
//
//   - Add:                    O(deg)
//   - TopologicalOrder:       O((V+E)·log V)
//   - HasCompleteProvenance:  O(V+E)
//   - TraceToRoots:           O(paths · depth), exponential on dense diamonds
//   - Cycles:                 O((V+E)·(C+1)), C = #cycles
//   - PropagateErrors:        O((V+E)·log V)
package graph

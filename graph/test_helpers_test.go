// SPDX-License-Identifier: MIT
package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/provgraph/graph"
	"github.com/katalvlaran/provgraph/node"
)

// Common node ids used across graph tests.
const (
	IDRoot  = "R"
	IDRoot2 = "S"
	IDA     = "A"
	IDB     = "B"
	IDC     = "C"
	IDD     = "D"
	IDX     = "X"
	IDGhost = "ghost"
)

// mustNode builds a node or fails the test.
func mustNode(t *testing.T, id string, kind node.Kind, deps []string, opts ...node.Option) *node.Node {
	t.Helper()
	n, err := node.New(id, "step "+id, kind, deps, opts...)
	require.NoError(t, err)

	return n
}

// root is shorthand for a dependency-free Root node.
func root(t *testing.T, id string) *node.Node {
	t.Helper()

	return mustNode(t, id, node.Root, nil)
}

// comp is shorthand for a Computation node.
func comp(t *testing.T, id string, deps ...string) *node.Node {
	t.Helper()

	return mustNode(t, id, node.Computation, deps)
}

// build inserts nodes in the given order into a fresh graph.
func build(t *testing.T, nodes ...*node.Node) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, n := range nodes {
		require.NoError(t, g.Add(n))
	}

	return g
}

// position returns the index of id in order or -1.
func position(order []string, id string) int {
	for i, x := range order {
		if x == id {
			return i
		}
	}

	return -1
}

// SPDX-License-Identifier: MIT
package validator_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/provgraph/graph"
	"github.com/katalvlaran/provgraph/node"
	"github.com/katalvlaran/provgraph/validator"
)

func mustNode(t *testing.T, id string, kind node.Kind, deps []string, opts ...node.Option) *node.Node {
	t.Helper()
	n, err := node.New(id, "step "+id, kind, deps, opts...)
	require.NoError(t, err)

	return n
}

func build(t *testing.T, nodes ...*node.Node) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, n := range nodes {
		require.NoError(t, g.Add(n))
	}

	return g
}

func allExcept(failed ...validator.Check) validator.Results {
	res := validator.Results{}
	for _, c := range validator.Checks() {
		res[c] = true
	}
	for _, c := range failed {
		res[c] = false
	}

	return res
}

func TestValidate_Clean(t *testing.T) {
	g := build(t,
		mustNode(t, "R", node.Root, nil),
		mustNode(t, "C", node.Computation, []string{"R"}, node.WithValue(2.0)),
	)
	res := validator.Validate(g)
	assert.Equal(t, allExcept(), res)
	assert.True(t, res.Passed())
	assert.Empty(t, res.Failed())
}

// TestValidate_ContaminatedNode checks contamination affects only its own check.
func TestValidate_ContaminatedNode(t *testing.T) {
	g := build(t,
		mustNode(t, "R", node.Root, nil),
		mustNode(t, "C", node.Computation, []string{"R"}, node.WithFlags("empirical")),
	)
	require.False(t, g.IsPure())

	res := validator.Validate(g)
	assert.Equal(t, allExcept(validator.ContaminationFree), res)
	assert.Equal(t, []validator.Check{validator.ContaminationFree}, res.Failed())
	assert.False(t, res.Passed())
}

func TestValidate_Cycle(t *testing.T) {
	g := build(t,
		mustNode(t, "R", node.Root, nil),
		mustNode(t, "A", node.Computation, []string{"B"}),
		mustNode(t, "B", node.Computation, []string{"A"}),
	)
	res := validator.Validate(g)
	assert.Equal(t, allExcept(
		validator.StructureValid,
		validator.ProvenanceComplete,
		validator.MathematicalConsistency,
	), res)
}

func TestValidate_Dangling(t *testing.T) {
	g := build(t,
		mustNode(t, "R", node.Root, nil),
		mustNode(t, "A", node.Computation, []string{"R", "ghost"}),
	)
	res := validator.Validate(g)
	// A still traces to R, so provenance holds; the dangling edge breaks structure.
	assert.Equal(t, allExcept(validator.StructureValid, validator.MathematicalConsistency), res)
}

func TestValidate_NoRoots(t *testing.T) {
	g := build(t, mustNode(t, "D", node.Definition, nil))
	res := validator.Validate(g)
	assert.Equal(t, allExcept(
		validator.ProvenanceComplete,
		validator.MathematicalConsistency,
		validator.AxiomFoundationValid,
	), res)
}

func TestValidate_Empty(t *testing.T) {
	res := validator.Validate(graph.New())
	assert.Equal(t, allExcept(validator.AxiomFoundationValid), res)
}

func TestValidate_Nil(t *testing.T) {
	res := validator.Validate(nil)
	assert.Len(t, res, len(validator.Checks()))
	assert.Equal(t, validator.Checks(), res.Failed())
}

// TestValidate_Idempotent runs the battery twice on an unmodified graph.
func TestValidate_Idempotent(t *testing.T) {
	g := build(t,
		mustNode(t, "R", node.Root, nil),
		mustNode(t, "A", node.Computation, []string{"R"}, node.WithFlags("fitted")),
		mustNode(t, "B", node.Computation, []string{"A", "ghost"}),
	)
	v := validator.New()
	first := v.Validate(g)
	second := v.Validate(g)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, len(g.Contaminated()))
}

func TestResults_FailedMissingKeys(t *testing.T) {
	res := validator.Results{validator.StructureValid: true}
	assert.Len(t, res.Failed(), len(validator.Checks())-1)
	assert.False(t, res.Passed())
}

func TestValidator_Logs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	v := validator.New(validator.WithLogger(zap.New(core)))

	v.Validate(build(t, mustNode(t, "R", node.Root, nil)))
	assert.Zero(t, logs.Len())

	v.Validate(build(t, mustNode(t, "A", node.Computation, []string{"ghost"})))
	entries := logs.FilterMessage("validation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["nodes"])
}

// ladder builds R ← n0 ← n1 ← ... where every n_i also depends on n_{i-2}, so
// the number of root paths grows like the Fibonacci sequence.
func ladder(t *testing.T, size int) *graph.Graph {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.Add(mustNode(t, "R", node.Root, nil)))
	prev, prev2 := "R", "R"
	for i := 0; i < size; i++ {
		id := fmt.Sprintf("n%03d", i)
		deps := []string{prev}
		if prev2 != prev {
			deps = append(deps, prev2)
		}
		require.NoError(t, g.Add(mustNode(t, id, node.Computation, deps)))
		prev2, prev = prev, id
	}

	return g
}

// TestValidate_DenseDiamondsStayFast validates a graph with astronomically
// many root paths; every check must stay polynomial.
func TestValidate_DenseDiamondsStayFast(t *testing.T) {
	g := ladder(t, 200)

	start := time.Now()
	res := validator.Validate(g)
	elapsed := time.Since(start)

	assert.True(t, res.Passed(), "failed: %v", res.Failed())
	assert.Less(t, elapsed, 2*time.Second)
}

// TestValidate_TraceTerminalsAreRoots cross-checks the axiom check against
// explicit trace enumeration on a graph small enough to enumerate.
func TestValidate_TraceTerminalsAreRoots(t *testing.T) {
	g := ladder(t, 12)
	g2 := build(t,
		mustNode(t, "R", node.Root, nil),
		mustNode(t, "S", node.Root, []string{"R"}),
		mustNode(t, "A", node.Lemma, []string{"S", "R"}),
	)
	for _, gr := range []*graph.Graph{g, g2} {
		for _, id := range gr.IDs() {
			for _, path := range gr.TraceToRoots(id) {
				last, ok := gr.Node(path[len(path)-1])
				require.True(t, ok)
				assert.True(t, last.IsRoot(), "path %v", path)
			}
		}
		assert.True(t, validator.Validate(gr)[validator.AxiomFoundationValid])
	}
}

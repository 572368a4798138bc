// SPDX-License-Identifier: MIT
package graph

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// DefaultErrorFloor is the relative error contributed by a dependency that has
// neither a declared error nor a value, so RSS chains over purely symbolic
// steps never collapse to exactly zero.
const DefaultErrorFloor = 1e-12

// ErrorEstimate is the propagated uncertainty of one node.
type ErrorEstimate struct {
	RelativeError float64 `json:"relative_error"`
	AbsoluteError float64 `json:"absolute_error"`
}

// PropagationOption configures PropagateErrors.
type PropagationOption func(*propagationOptions)

type propagationOptions struct {
	floor float64
}

// WithErrorFloor overrides DefaultErrorFloor. Negative, NaN or Inf values make
// PropagateErrors fail with ErrBadErrorFloor.
func WithErrorFloor(floor float64) PropagationOption {
	return func(o *propagationOptions) { o.floor = floor }
}

// PropagateErrors computes an ErrorEstimate for every node, dependencies first.
//
// Rules, per node:
//   - declared error d:          rel = d
//   - no declared error, deps:   rel = sqrt(Σ c²) over dependencies, where c is
//     the dependency's rel, raised to the floor for a dependency with neither
//     declared error nor value
//   - no declared error, no deps: rel = 0
//
// abs = |value|·rel when the node has a value, else 0.
//
// Fails with the same structural errors as TopologicalOrder.
func (g *Graph) PropagateErrors(opts ...PropagationOption) (map[string]ErrorEstimate, error) {
	o := propagationOptions{floor: DefaultErrorFloor}
	for _, opt := range opts {
		opt(&o)
	}
	if math.IsNaN(o.floor) || math.IsInf(o.floor, 0) || o.floor < 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadErrorFloor, o.floor)
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	out := make(map[string]ErrorEstimate, len(order))
	for _, id := range order {
		n := g.nodes[id]
		// 1) Relative error: declared, combined, or zero
		rel, declared := n.DeclaredError()
		if !declared {
			rel = 0
			if deps := g.adjacency[id]; len(deps) > 0 {
				var sumSq float64
				for _, d := range deps {
					c := out[d].RelativeError
					if g.isSymbolic(d) {
						c = math.Max(c, o.floor)
					}
					sumSq += c * c
				}
				rel = math.Sqrt(sumSq)
			}
		}
		// 2) Absolute error scales with the node's own value
		var abs float64
		if v, ok := n.Value(); ok {
			abs = math.Abs(v) * rel
		}
		out[id] = ErrorEstimate{RelativeError: rel, AbsoluteError: abs}
	}
	g.log.Debug("errors propagated", zap.Int("nodes", len(out)), zap.Float64("floor", o.floor))

	return out, nil
}

// isSymbolic reports whether id has neither a declared error nor a value.
func (g *Graph) isSymbolic(id string) bool {
	n := g.nodes[id]
	_, hasErr := n.DeclaredError()
	_, hasVal := n.Value()

	return !hasErr && !hasVal
}

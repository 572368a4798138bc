// SPDX-License-Identifier: MIT
package audit

import (
	"github.com/samber/lo"

	"github.com/katalvlaran/provgraph/graph"
	"github.com/katalvlaran/provgraph/node"
	"github.com/katalvlaran/provgraph/validator"
)

// Option configures Generate.
type Option func(*options)

type options struct {
	propagation []graph.PropagationOption
	validator   *validator.Validator
}

// WithErrorFloor forwards a propagation floor to graph.PropagateErrors.
func WithErrorFloor(floor float64) Option {
	return func(o *options) {
		o.propagation = append(o.propagation, graph.WithErrorFloor(floor))
	}
}

// WithValidator replaces the default validator. Nil is ignored.
func WithValidator(v *validator.Validator) Option {
	return func(o *options) {
		if v != nil {
			o.validator = v
		}
	}
}

// Generate builds a sealed Report for g. It never mutates g. A nil g fails
// with ErrNilGraph; otherwise the only error source is sealing.
//
// Node records follow the topological order when one exists and ascending id
// order otherwise. Only kinds present in the graph appear in KindCounts.
func Generate(g *graph.Graph, opts ...Option) (*Report, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := options{validator: validator.New()}
	for _, opt := range opts {
		opt(&o)
	}

	nodes := g.Nodes()
	r := &Report{
		NodeCount: g.Len(),
		Roots:     g.Roots(),
		KindCounts: lo.CountValuesBy(nodes, func(n *node.Node) string {
			return n.Kind().String()
		}),
		Pure:   g.IsPure(),
		Checks: o.validator.Validate(g),
	}
	if r.Roots == nil {
		r.Roots = []string{}
	}

	// 1) Ordering, or the structural error that prevents it
	order, err := g.TopologicalOrder()
	if err != nil {
		r.TopologicalError = err.Error()
	} else {
		r.TopologicalOrder = order
		byID := lo.KeyBy(nodes, func(n *node.Node) string { return n.ID() })
		nodes = lo.Map(order, func(id string, _ int) *node.Node { return byID[id] })
	}

	// 2) Error propagation (also reports bad floors)
	estimates, err := g.PropagateErrors(o.propagation...)
	if err != nil {
		r.PropagationError = err.Error()
	} else {
		r.Errors = estimates
	}

	// 3) Per-node metadata
	r.Nodes = lo.Map(nodes, func(n *node.Node, _ int) NodeRecord { return recordOf(n) })

	if err = r.Seal(); err != nil {
		return nil, err
	}

	return r, nil
}

func recordOf(n *node.Node) NodeRecord {
	rec := NodeRecord{
		ID:           n.ID(),
		Label:        n.Label(),
		Kind:         n.Kind().String(),
		Dependencies: n.Dependencies(),
		Flags:        n.Flags(),
		Hash:         n.Hash(),
	}
	if v, ok := n.Value(); ok {
		rec.Value = &v
	}
	if e, ok := n.DeclaredError(); ok {
		rec.DeclaredError = &e
	}
	if rec.Dependencies == nil {
		rec.Dependencies = []string{}
	}
	if len(rec.Flags) == 0 {
		rec.Flags = nil
	}

	return rec
}

// SPDX-License-Identifier: MIT
// Package graph declares the provenance Graph, its options and sentinel errors.
//
// Errors:
//
//	ErrNilNode            - Add received a nil node.
//	ErrIntegrityFailure   - node hash does not match its (id, label, kind).
//	ErrDuplicateID        - node id already present.
//	ErrMissingDependency  - a dependency names a node that was never added.
//	ErrCycleDetected      - the dependency relation is not acyclic.
//	ErrBadErrorFloor      - propagation floor is negative, NaN or Inf.
package graph

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/provgraph/node"
)

// Sentinel errors for graph operations.
var (
	// ErrNilNode indicates a nil *node.Node was passed to Add.
	ErrNilNode = errors.New("graph: node is nil")

	// ErrIntegrityFailure indicates the node's content hash failed verification.
	ErrIntegrityFailure = errors.New("graph: node integrity check failed")

	// ErrDuplicateID indicates a node with the same id is already present.
	ErrDuplicateID = errors.New("graph: duplicate node id")

	// ErrMissingDependency indicates a dependency id with no matching node.
	ErrMissingDependency = errors.New("graph: missing dependency")

	// ErrCycleDetected indicates the dependency relation contains a cycle.
	ErrCycleDetected = errors.New("graph: cycle detected")

	// ErrBadErrorFloor indicates an unusable propagation floor.
	ErrBadErrorFloor = errors.New("graph: error floor must be finite and non-negative")
)

// MissingDependencyError names the node and the dangling dependency id.
// It matches ErrMissingDependency under errors.Is.
type MissingDependencyError struct {
	NodeID       string
	DependencyID string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%v: %q depends on %q", ErrMissingDependency, e.NodeID, e.DependencyID)
}

// Is reports whether target is ErrMissingDependency.
func (e *MissingDependencyError) Is(target error) bool { return target == ErrMissingDependency }

// CycleError lists the nodes Kahn's algorithm could not order: members of a
// cycle and everything downstream of one. It matches ErrCycleDetected.
type CycleError struct {
	Unresolved []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %d unresolved node(s) [%s]",
		ErrCycleDetected, len(e.Unresolved), strings.Join(e.Unresolved, ","))
}

// Is reports whether target is ErrCycleDetected.
func (e *CycleError) Is(target error) bool { return target == ErrCycleDetected }

// Option configures a Graph at creation.
type Option func(*Graph)

// WithLogger routes insertion and analysis diagnostics to logger.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.log = logger
		}
	}
}

// Graph owns every node of one derivation session.
//
// Edges are plain ids: adjacency maps a node to its declared dependencies and
// dependents is the reverse index (which may name ids never added). The graph
// only grows; a Graph must not be mutated from several goroutines at once.
type Graph struct {
	nodes      map[string]*node.Node
	adjacency  map[string][]string            // id → dependencies (declared order)
	dependents map[string]map[string]struct{} // dependency id → ids depending on it
	roots      []string                       // Root ids in insertion order
	impure     []string                       // contaminated ids in insertion order
	pure       bool                           // monotonic: once false, stays false

	log *zap.Logger
}

// New creates an empty, pure Graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:      make(map[string]*node.Node),
		adjacency:  make(map[string][]string),
		dependents: make(map[string]map[string]struct{}),
		pure:       true,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

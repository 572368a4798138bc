// SPDX-License-Identifier: MIT
// Package validator runs the structural check battery over a provenance graph.
//
// Every check is a pure function of the graph's current state: Validate never
// mutates the graph and returns identical Results for an unmodified graph.
// Findings are booleans, never errors; callers decide what a failure means.
//
// Checks:
//
//	structure_valid           TopologicalOrder succeeds (no cycle, no dangling dependency).
//	provenance_complete       every node traces to at least one Root.
//	contamination_free        the graph is pure.
//	integrity_verified        every node's content hash verifies.
//	mathematical_consistency  no self-dependency, no dangling dependency, every node traces to a Root.
//	axiom_foundation_valid    at least one Root, every listed root is Root-kind (traced paths end at a Root by construction).
//
// Every check runs in O((V+E)·log V); no check enumerates trace paths.
package validator

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/katalvlaran/provgraph/graph"
	"github.com/katalvlaran/provgraph/node"
)

// Check names one validation rule.
type Check string

// Check names, also used as report keys.
const (
	StructureValid          Check = "structure_valid"
	ProvenanceComplete      Check = "provenance_complete"
	ContaminationFree       Check = "contamination_free"
	IntegrityVerified       Check = "integrity_verified"
	MathematicalConsistency Check = "mathematical_consistency"
	AxiomFoundationValid    Check = "axiom_foundation_valid"
)

// Checks returns every check in evaluation order.
func Checks() []Check {
	return []Check{
		StructureValid,
		ProvenanceComplete,
		ContaminationFree,
		IntegrityVerified,
		MathematicalConsistency,
		AxiomFoundationValid,
	}
}

// Results maps each check to its outcome.
type Results map[Check]bool

// Passed reports whether every known check is present and true.
func (r Results) Passed() bool { return len(r.Failed()) == 0 }

// Failed lists the checks that are false or absent, in Checks order.
func (r Results) Failed() []Check {
	return lo.Filter(Checks(), func(c Check, _ int) bool { return !r[c] })
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger routes check failures to logger at debug level. Nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.log = logger
		}
	}
}

// Validator is stateless apart from its logger and safe to reuse.
type Validator struct {
	log *zap.Logger
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{log: zap.NewNop()}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate runs the default Validator over g.
func Validate(g *graph.Graph) Results { return New().Validate(g) }

// Validate runs every check over g. A nil graph fails every check.
func (v *Validator) Validate(g *graph.Graph) Results {
	res := make(Results, len(Checks()))
	if g == nil {
		for _, c := range Checks() {
			res[c] = false
		}
		return res
	}

	_, orderErr := g.TopologicalOrder()
	complete := g.HasCompleteProvenance()

	res[StructureValid] = orderErr == nil
	res[ProvenanceComplete] = complete
	res[ContaminationFree] = g.IsPure()
	res[IntegrityVerified] = integrityVerified(g)
	res[MathematicalConsistency] = noSelfDependency(g) && len(g.MissingDependencies()) == 0 && complete
	res[AxiomFoundationValid] = axiomFoundation(g)

	if failed := res.Failed(); len(failed) > 0 {
		v.log.Debug("validation failed",
			zap.Strings("checks", lo.Map(failed, func(c Check, _ int) string { return string(c) })),
			zap.Int("nodes", g.Len()),
		)
	}

	return res
}

func integrityVerified(g *graph.Graph) bool {
	return lo.EveryBy(g.Nodes(), func(n *node.Node) bool { return n.VerifyIntegrity() })
}

func noSelfDependency(g *graph.Graph) bool {
	for _, id := range g.IDs() {
		if lo.Contains(g.Dependencies(id), id) {
			return false
		}
	}

	return true
}

// axiomFoundation requires a non-empty root list of Root-kind nodes.
//
// Traced paths need no enumeration here: TraceToRoots closes a path only on a
// node whose kind is Root, so every terminal is Root-kind whenever the root
// list is. Listing paths would cost time exponential in the number of
// diamonds.
func axiomFoundation(g *graph.Graph) bool {
	roots := g.Roots()
	if len(roots) == 0 {
		return false
	}

	return lo.EveryBy(roots, func(id string) bool {
		n, ok := g.Node(id)
		return ok && n.IsRoot()
	})
}

// Package provgraph records multi-stage derivations as a provenance DAG and
// audits them: every step is a node with declared dependencies, and the graph
// answers whether the derivation is acyclic, fully traced back to its axioms,
// free of disallowed inputs, and how uncertainty flows through it.
//
// What is provgraph?
//
//	An in-memory, deterministic library that brings together:
//		• Immutable, content-hashed derivation steps (node)
//		• Append-only provenance graph with lazy structural checks (graph)
//		• Kahn topological ordering with lexicographic tie-breaking
//		• Trace-to-roots path enumeration and complete-provenance test
//		• Root-sum-square error propagation
//		• A six-check validation battery (validator)
//		• Sealed, tamper-evident audit reports (audit)
//		• YAML derivation manifests and session configuration (manifest, config)
//
// Everything is organised under these subpackages:
//
//	node/      - Kind enum, Node construction, content hash, integrity check
//	graph/     - Graph insertion, ordering, tracing, cycles, error propagation
//	validator/ - named structural checks returning a pass/fail map
//	audit/     - report aggregation, sealing, JSON output
//	manifest/  - YAML manifests decoded into graphs
//	config/    - YAML settings and zap logger construction
//	examples/  - runnable audit of an embedded derivation
//
// Quick ASCII example:
//
//	    R          (root: axiom)
//	   / \
//	  A   B        (computations with declared errors)
//	   \ /
//	    C          (target: rel = sqrt(a² + b²))
//
//	go get github.com/katalvlaran/provgraph
package provgraph

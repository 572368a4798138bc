// SPDX-License-Identifier: MIT
// Package node defines the immutable record of a single derivation step.
//
// What:
//
//   - Kind: closed enumeration of step classifications (Root, Definition,
//     Theorem, Lemma, Corollary, Computation, Emergence, Target).
//   - Node: id, label, kind, optional value, ordered dependency set,
//     optional declared relative error, contamination flags and a content hash.
//
// Construction:
//
//	n, err := node.New("C", "c = 2r", node.Computation, []string{"R"},
//	    node.WithValue(2.0),
//	    node.WithDeclaredError(0.01),
//	)
//
// The content hash is BLAKE2b-256 over the length-prefixed (id, label, kind)
// triple. It never depends on time or randomness, so two nodes built from the
// same triple always share a hash. VerifyIntegrity recomputes it; Restore
// rebuilds a node from a stored record while keeping the claimed hash, which is
// how tampered records are caught at graph insertion.
//
// Errors:
//
//   - ErrInvalidNode   empty id, self-dependency, empty dependency id, bad kind,
//     non-finite value, negative or non-finite declared error.
//   - ErrUnknownKind   ParseKind/UnmarshalText received an unrecognised label.
//
// Nodes have no setters; every getter returns a copy of slice data.
package node

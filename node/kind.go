// SPDX-License-Identifier: MIT
package node

import (
	"fmt"
	"strings"
)

// Kind classifies a derivation step. Only Root carries algorithmic meaning:
// Root nodes terminate dependency traces and are exempt from contamination.
type Kind uint8

const (
	Root        Kind = iota // foundational axiom or input; terminates traces
	Definition              // symbolic definition
	Theorem                 // proven statement
	Lemma                   // supporting statement
	Corollary               // direct consequence
	Computation             // numeric computation step
	Emergence               // derived/emergent quantity
	Target                  // final quantity of interest
)

// kindLabels is indexed by Kind.
var kindLabels = [...]string{
	Root:        "root",
	Definition:  "definition",
	Theorem:     "theorem",
	Lemma:       "lemma",
	Corollary:   "corollary",
	Computation: "computation",
	Emergence:   "emergence",
	Target:      "target",
}

// Kinds returns every Kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindLabels))
	for i := range kindLabels {
		out[i] = Kind(i)
	}

	return out
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return int(k) < len(kindLabels) }

// String returns the lowercase label of k.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}

	return kindLabels[k]
}

// ParseKind decodes a label into a Kind. Matching is case-insensitive and
// ignores surrounding whitespace; anything else fails with ErrUnknownKind.
func ParseKind(s string) (Kind, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	for i, l := range kindLabels {
		if l == label {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}

	return []byte(kindLabels[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}

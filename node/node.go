// SPDX-License-Identifier: MIT
package node

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
	"golang.org/x/crypto/blake2b"
)

var (
	// ErrInvalidNode indicates a node shape that cannot be constructed.
	ErrInvalidNode = errors.New("node: invalid node")

	// ErrUnknownKind indicates a kind label outside the closed Kind set.
	ErrUnknownKind = errors.New("node: unknown kind")
)

// Node is one immutable derivation step.
type Node struct {
	id    string
	label string
	kind  Kind

	value    float64
	hasValue bool

	declaredError    float64
	hasDeclaredError bool

	dependencies []string
	flags        []string

	hash string
}

// Option configures optional Node attributes at construction time.
type Option func(*Node)

// WithValue attaches the numeric value computed by this step.
func WithValue(v float64) Option {
	return func(n *Node) {
		n.value = v
		n.hasValue = true
	}
}

// WithDeclaredError sets an authoritative relative error that bypasses propagation.
func WithDeclaredError(rel float64) Option {
	return func(n *Node) {
		n.declaredError = rel
		n.hasDeclaredError = true
	}
}

// WithFlags marks the node with contamination markers. Empty markers are
// dropped and duplicates collapsed; repeated use accumulates.
func WithFlags(flags ...string) Option {
	return func(n *Node) {
		n.flags = append(n.flags, flags...)
	}
}

// New constructs a Node and computes its content hash.
//
// Dependencies form an ordered set: duplicates collapse onto their first
// occurrence. New fails with ErrInvalidNode when id is empty, a dependency is
// empty or equals id, kind is undeclared, the value is NaN/Inf, or the
// declared error is negative, NaN or Inf.
func New(id, label string, kind Kind, deps []string, opts ...Option) (*Node, error) {
	n, err := build(id, label, kind, deps, opts)
	if err != nil {
		return nil, err
	}
	n.hash = ContentHash(id, label, kind)

	return n, nil
}

// Restore rebuilds a Node from a stored record, keeping the claimed hash
// instead of recomputing it. Shape checks match New. Use VerifyIntegrity (or
// graph insertion, which calls it) to detect a record whose hash no longer
// matches its (id, label, kind).
func Restore(id, label string, kind Kind, deps []string, hash string, opts ...Option) (*Node, error) {
	n, err := build(id, label, kind, deps, opts)
	if err != nil {
		return nil, err
	}
	n.hash = hash

	return n, nil
}

func build(id, label string, kind Kind, deps []string, opts []Option) (*Node, error) {
	// 1) Shape of the identity triple
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidNode)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q has %v", ErrInvalidNode, id, kind)
	}
	// 2) Dependencies: non-empty, never self
	for _, d := range deps {
		if d == "" {
			return nil, fmt.Errorf("%w: %q has an empty dependency id", ErrInvalidNode, id)
		}
		if d == id {
			return nil, fmt.Errorf("%w: %q depends on itself", ErrInvalidNode, id)
		}
	}

	n := &Node{
		id:           id,
		label:        label,
		kind:         kind,
		dependencies: lo.Uniq(deps),
	}
	// 3) Optional attributes
	for _, opt := range opts {
		opt(n)
	}
	if n.hasValue && !isFinite(n.value) {
		return nil, fmt.Errorf("%w: %q has non-finite value", ErrInvalidNode, id)
	}
	if n.hasDeclaredError && (!isFinite(n.declaredError) || n.declaredError < 0) {
		return nil, fmt.Errorf("%w: %q has declared error %v", ErrInvalidNode, id, n.declaredError)
	}
	// 4) Normalise flags into a sorted set
	n.flags = lo.Uniq(lo.Compact(n.flags))
	sort.Strings(n.flags)

	return n, nil
}

// ContentHash returns the hex BLAKE2b-256 digest of the length-prefixed
// (id, label, kind) triple.
func ContentHash(id, label string, kind Kind) string {
	var buf []byte
	buf = appendField(buf, id)
	buf = appendField(buf, label)
	buf = appendField(buf, kind.String())
	sum := blake2b.Sum256(buf)

	return hex.EncodeToString(sum[:])
}

func appendField(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(s)))

	return append(buf, s...)
}

// VerifyIntegrity reports whether the stored hash matches (id, label, kind).
func (n *Node) VerifyIntegrity() bool {
	if n == nil {
		return false
	}

	return n.hash == ContentHash(n.id, n.label, n.kind)
}

// ID returns the node identifier.
func (n *Node) ID() string { return n.id }

// Label returns the free-text description.
func (n *Node) Label() string { return n.label }

// Kind returns the node classification.
func (n *Node) Kind() Kind { return n.kind }

// IsRoot reports whether the node is of kind Root.
func (n *Node) IsRoot() bool { return n.kind == Root }

// Value returns the numeric value and whether one was set.
func (n *Node) Value() (float64, bool) { return n.value, n.hasValue }

// DeclaredError returns the declared relative error and whether one was set.
func (n *Node) DeclaredError() (float64, bool) { return n.declaredError, n.hasDeclaredError }

// Dependencies returns a copy of the ordered dependency ids.
func (n *Node) Dependencies() []string { return append([]string(nil), n.dependencies...) }

// Flags returns a copy of the sorted contamination markers.
func (n *Node) Flags() []string { return append([]string(nil), n.flags...) }

// Contaminated reports whether the node taints its graph: it carries at
// least one flag and is not a Root.
func (n *Node) Contaminated() bool { return len(n.flags) > 0 && n.kind != Root }

// Hash returns the stored content hash.
func (n *Node) Hash() string { return n.hash }

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.id, n.kind)
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

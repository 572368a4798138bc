// SPDX-License-Identifier: MIT
// Package audit assembles the structured, tamper-evident audit report of a
// provenance graph.
//
// Generate composes the graph's own analyses (topological order, validation
// battery, error propagation) with per-node metadata. Structural failures are
// embedded as strings rather than returned, so a report always exists for a
// graph under diagnosis.
//
// Tamper evidence: Seal hashes the canonical JSON encoding of the report
// (with ID and Digest cleared) using BLAKE2b-256 and derives a UUIDv5 from the
// digest. Verify recomputes both; any edit to a sealed report surfaces as
// ErrTampered. Identical graphs yield byte-identical reports and ids.
package audit

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/katalvlaran/provgraph/graph"
	"github.com/katalvlaran/provgraph/validator"
)

var (
	// ErrTampered indicates a report whose content no longer matches its seal.
	ErrTampered = errors.New("audit: report digest mismatch")

	// ErrNilGraph indicates Generate was called without a graph.
	ErrNilGraph = errors.New("audit: graph is nil")
)

// namespace scopes report ids (UUIDv5) to this package.
var namespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("provgraph/audit"))

// Report is the outbound value consumed by serialisers.
type Report struct {
	ID     string `json:"id"`
	Digest string `json:"digest"`

	NodeCount  int            `json:"node_count"`
	Roots      []string       `json:"roots"`
	KindCounts map[string]int `json:"kind_counts"`
	Pure       bool           `json:"pure"`

	TopologicalOrder []string `json:"topological_order,omitempty"`
	TopologicalError string   `json:"topological_error,omitempty"`

	Checks validator.Results `json:"checks"`

	Errors           map[string]graph.ErrorEstimate `json:"errors,omitempty"`
	PropagationError string                         `json:"propagation_error,omitempty"`

	Nodes []NodeRecord `json:"nodes"`
}

// NodeRecord is the per-node metadata carried in a Report.
type NodeRecord struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Kind          string   `json:"kind"`
	Value         *float64 `json:"value,omitempty"`
	DeclaredError *float64 `json:"declared_error,omitempty"`
	Dependencies  []string `json:"dependencies"`
	Flags         []string `json:"flags,omitempty"`
	Hash          string   `json:"hash"`
}

// Valid reports whether the graph ordered cleanly and every check passed.
func (r *Report) Valid() bool {
	return r.TopologicalError == "" && r.PropagationError == "" && r.Checks.Passed()
}

// Seal computes Digest and ID from the report content.
func (r *Report) Seal() error {
	digest, err := r.digest()
	if err != nil {
		return err
	}
	r.Digest = digest
	r.ID = idFor(digest)

	return nil
}

// Verify recomputes the seal and fails with ErrTampered on any mismatch.
func (r *Report) Verify() error {
	digest, err := r.digest()
	if err != nil {
		return err
	}
	if digest != r.Digest || idFor(digest) != r.ID {
		return fmt.Errorf("%w: have %s, content hashes to %s", ErrTampered, r.Digest, digest)
	}

	return nil
}

// JSON returns the indented JSON encoding of the report.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteJSON writes the indented JSON encoding of the report to w.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

// digest hashes the compact JSON of a copy with the seal fields cleared.
// encoding/json sorts map keys, which makes the encoding canonical.
func (r *Report) digest() (string, error) {
	unsealed := *r
	unsealed.ID, unsealed.Digest = "", ""

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(&unsealed); err != nil {
		return "", fmt.Errorf("audit: encode report: %w", err)
	}
	sum := blake2b.Sum256(buf.Bytes())

	return hex.EncodeToString(sum[:]), nil
}

func idFor(digest string) string {
	return uuid.NewSHA1(namespace, []byte(digest)).String()
}

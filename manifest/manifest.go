// SPDX-License-Identifier: MIT
// Package manifest decodes YAML derivation manifests into provenance graphs.
//
// A manifest is the serialised form of the inbound constructor calls:
//
//	nodes:
//	  - id: R
//	    label: unit charge
//	    kind: root
//	  - id: C
//	    label: c = 2r
//	    kind: computation
//	    dependencies: [R]
//	    value: 2.0
//	    declared_error: 0.01
//	    flags: [empirical]
//	    hash: 5f0c…   # optional; checked against (id, label, kind) on insertion
//
// Kinds are decoded strictly: an unknown label is an error, never a default.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/provgraph/graph"
	"github.com/katalvlaran/provgraph/node"
)

// ErrInvalidManifest indicates a manifest that cannot be decoded or built.
var ErrInvalidManifest = errors.New("manifest: invalid manifest")

var validate = validator.New()

// Manifest is an ordered list of derivation steps.
type Manifest struct {
	Nodes []Entry `yaml:"nodes" validate:"dive"`
}

// Entry is one derivation step as written in a manifest.
type Entry struct {
	ID            string   `yaml:"id" validate:"required"`
	Label         string   `yaml:"label"`
	Kind          string   `yaml:"kind" validate:"required"`
	Dependencies  []string `yaml:"dependencies" validate:"dive,required"`
	Value         *float64 `yaml:"value"`
	DeclaredError *float64 `yaml:"declared_error" validate:"omitnil,gte=0"`
	Flags         []string `yaml:"flags" validate:"dive,required"`
	Hash          string   `yaml:"hash" validate:"omitempty,hexadecimal,len=64"`
}

// Decode reads and validates a manifest. Unknown keys are rejected.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidManifest, describe(err))
	}

	return &m, nil
}

// DecodeFile opens path and calls Decode.
func DecodeFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	defer f.Close()

	return Decode(f)
}

// Build inserts every entry, in manifest order, into a new graph.
// Construction and insertion errors are returned wrapped with the entry
// position; the underlying node/graph sentinel stays matchable.
func (m *Manifest) Build(opts ...graph.Option) (*graph.Graph, error) {
	g := graph.New(opts...)
	for i, e := range m.Nodes {
		n, err := e.Node()
		if err != nil {
			return nil, fmt.Errorf("manifest: nodes[%d] (%s): %w", i, e.ID, err)
		}
		if err = g.Add(n); err != nil {
			return nil, fmt.Errorf("manifest: nodes[%d] (%s): %w", i, e.ID, err)
		}
	}

	return g, nil
}

// Node constructs the node.Node described by e. With a Hash set the node is
// restored with that claimed hash instead of a freshly computed one.
func (e Entry) Node() (*node.Node, error) {
	kind, err := node.ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}
	var opts []node.Option
	if e.Value != nil {
		opts = append(opts, node.WithValue(*e.Value))
	}
	if e.DeclaredError != nil {
		opts = append(opts, node.WithDeclaredError(*e.DeclaredError))
	}
	if len(e.Flags) > 0 {
		opts = append(opts, node.WithFlags(e.Flags...))
	}
	if e.Hash != "" {
		return node.Restore(e.ID, e.Label, kind, e.Dependencies, strings.ToLower(e.Hash), opts...)
	}

	return node.New(e.ID, e.Label, kind, e.Dependencies, opts...)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	}

	return strings.Join(msgs, "; ")
}

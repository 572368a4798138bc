// SPDX-License-Identifier: MIT
package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVerifyIntegrity_DetectsMutation mutates each hashed field behind the
// constructor's back and expects the integrity check to fail.
func TestVerifyIntegrity_DetectsMutation(t *testing.T) {
	mutations := map[string]func(n *Node){
		"id":    func(n *Node) { n.id = "B" },
		"label": func(n *Node) { n.label = "tampered" },
		"kind":  func(n *Node) { n.kind = Target },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			n, err := New("A", "original", Computation, nil)
			require.NoError(t, err)
			require.True(t, n.VerifyIntegrity())

			mutate(n)
			assert.False(t, n.VerifyIntegrity())
		})
	}
}

// TestVerifyIntegrity_IgnoresUnhashedFields documents that value, error and
// dependencies sit outside the hash input.
func TestVerifyIntegrity_IgnoresUnhashedFields(t *testing.T) {
	n, err := New("A", "original", Computation, []string{"R"}, WithValue(1))
	require.NoError(t, err)

	n.value = 99
	n.dependencies = append(n.dependencies, "S")
	assert.True(t, n.VerifyIntegrity())
}

// SPDX-License-Identifier: Apache-2.0

package samplableset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropagationTree_TotalAndUpdateLeaf(t *testing.T) {
	tree := newPropagationTree(3) // pads to 4 leaves
	tree.updateLeaf(0, 5)
	tree.updateLeaf(1, 2)
	tree.updateLeaf(2, 3)

	assert.Equal(t, 10.0, tree.total())

	tree.updateLeaf(1, -2) // delta, not absolute assignment
	assert.Equal(t, 8.0, tree.total())
}

func TestPropagationTree_SingleGroup(t *testing.T) {
	tree := newPropagationTree(1)
	tree.updateLeaf(0, 7)
	assert.Equal(t, 7.0, tree.total())
	assert.Equal(t, 0, tree.descend(0))
	assert.Equal(t, 0, tree.descend(6.999))
}

func TestPropagationTree_Descend(t *testing.T) {
	tree := newPropagationTree(4)
	tree.updateLeaf(0, 1) // [0, 1)
	tree.updateLeaf(1, 2) // [1, 3)
	tree.updateLeaf(2, 3) // [3, 6)
	tree.updateLeaf(3, 4) // [6, 10)

	assert.Equal(t, 0, tree.descend(0))
	assert.Equal(t, 0, tree.descend(0.999))
	assert.Equal(t, 1, tree.descend(1))
	assert.Equal(t, 1, tree.descend(2.999))
	assert.Equal(t, 2, tree.descend(3))
	assert.Equal(t, 2, tree.descend(5.999))
	assert.Equal(t, 3, tree.descend(6))
	assert.Equal(t, 3, tree.descend(9.999))
}

func TestPropagationTree_RecomputeUndoesDrift(t *testing.T) {
	tree := newPropagationTree(3)
	tree.updateLeaf(0, 1)
	tree.updateLeaf(1, 1)
	tree.updateLeaf(2, 1)
	tree.nodes[0] = 42 // simulate accumulated drift at the root

	tree.recompute([]float64{5, 6, 7})
	assert.Equal(t, 18.0, tree.total())
}

func TestPropagationTree_Clone(t *testing.T) {
	tree := newPropagationTree(2)
	tree.updateLeaf(0, 3)

	clone := tree.clone()
	clone.updateLeaf(1, 10)

	assert.Equal(t, 3.0, tree.total())
	assert.Equal(t, 13.0, clone.total())
}

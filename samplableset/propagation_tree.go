// SPDX-License-Identifier: Apache-2.0

package samplableset

import "github.com/dynasample/samplableset-go/internal"

// propagationTree implements spec.md §4.4: a complete binary tree over G
// group weights, padded up to a power of two, stored as a flat array in
// level order so updates and descents are cache-friendly and deep copy is a
// single slice clone (spec.md §9's stated rationale for this layout).
//
// For L leaves the array has 2L-1 nodes; leaf g lives at index L-1+g, and the
// children of node i live at 2i+1 and 2i+2.
type propagationTree struct {
	nodes    []float64
	numLeafs int
}

func newPropagationTree(numGroups int) *propagationTree {
	l := internal.CeilPowerOf2(numGroups)
	return &propagationTree{
		nodes:    make([]float64, 2*l-1),
		numLeafs: l,
	}
}

func (t *propagationTree) leafIndex(g int) int {
	return t.numLeafs - 1 + g
}

// updateLeaf adds delta to leaf g's value and every ancestor up to the root.
func (t *propagationTree) updateLeaf(g int, delta float64) {
	i := t.leafIndex(g)
	for {
		t.nodes[i] += delta
		if i == 0 {
			return
		}
		i = (i - 1) / 2
	}
}

// total returns the root's value, the sum of all leaf weights.
func (t *propagationTree) total() float64 {
	if len(t.nodes) == 0 {
		return 0
	}
	return t.nodes[0]
}

// descend routes r (a uniform draw in [0, total())) from the root to a leaf,
// biased by subtree weight: at each internal node go left if r < left child's
// value, else go right after subtracting the left child's value. Undefined
// (but harmless, since callers only invoke this when total() > 0) if r falls
// outside [0, total()).
func (t *propagationTree) descend(r float64) int {
	i := 0
	for {
		left := 2*i + 1
		if left >= len(t.nodes) {
			return i - (t.numLeafs - 1)
		}
		leftVal := t.nodes[left]
		if r < leftVal {
			i = left
		} else {
			r -= leftVal
			i = left + 1
		}
	}
}

// recompute rebuilds every internal node exactly from the current leaf
// values, undoing incremental floating-point drift (spec.md §7). leafValues
// holds one value per group (at most numLeafs); padding leaves past its end
// keep their current value, which is 0 because they are never updated.
func (t *propagationTree) recompute(leafValues []float64) {
	for g, v := range leafValues {
		t.nodes[t.leafIndex(g)] = v
	}
	for i := t.numLeafs - 2; i >= 0; i-- {
		t.nodes[i] = t.nodes[2*i+1] + t.nodes[2*i+2]
	}
}

func (t *propagationTree) clone() *propagationTree {
	nodes := make([]float64, len(t.nodes))
	copy(nodes, t.nodes)
	return &propagationTree{nodes: nodes, numLeafs: t.numLeafs}
}

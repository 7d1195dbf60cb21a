// SPDX-License-Identifier: Apache-2.0

package samplableset

import "math"

// binIndex implements spec.md §4.1: the pure mapping from a weight to a
// group index, and from a group index to the upper end of its weight interval.
// It is deliberately stateless beyond the two configured bounds; GroupBins
// and PropagationTree are sized from numGroups once at construction.
type binIndex struct {
	wMin, wMax float64
	numGroups  int
}

func newBinIndex(wMin, wMax float64) binIndex {
	g := int(math.Floor(math.Log2(wMax/wMin))) + 1
	if g < 1 {
		g = 1
	}
	return binIndex{wMin: wMin, wMax: wMax, numGroups: g}
}

// groupOf returns floor(log2(w/wMin)), clamped to [0, numGroups-1]. Since
// numGroups is computed from the same expression at wMax, w == wMax lands in
// the last group (spec.md §8's boundary behavior); the clamp keeps any result
// outside the bins' index range from being returned.
func (b binIndex) groupOf(w float64) int {
	g := int(math.Floor(math.Log2(w / b.wMin)))
	if g < 0 {
		g = 0
	}
	if g > b.numGroups-1 {
		g = b.numGroups - 1
	}
	return g
}

// upperBoundOf returns the rejection ceiling w* = wMin * 2^(g+1) used by the
// sampler's acceptance test (spec.md §4.4). The actual maximum element weight
// in the last group may be below this; that only affects acceptance rate,
// never correctness (spec.md §4.1).
func (b binIndex) upperBoundOf(g int) float64 {
	return b.wMin * math.Exp2(float64(g+1))
}

// inRange reports whether w is a legal weight for this index.
func (b binIndex) inRange(w float64) bool {
	return w >= b.wMin && w <= b.wMax
}

// SPDX-License-Identifier: Apache-2.0

package samplableset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBinIndex(t *testing.T) {
	t.Run("equal bounds yields a single group", func(t *testing.T) {
		idx := newBinIndex(5, 5)
		assert.Equal(t, 1, idx.numGroups)
	})

	t.Run("ratio just under 2 stays at one group", func(t *testing.T) {
		idx := newBinIndex(1, 1.9)
		assert.Equal(t, 1, idx.numGroups)
	})

	t.Run("ratio of exactly 2 opens a second group", func(t *testing.T) {
		idx := newBinIndex(1, 2)
		assert.Equal(t, 2, idx.numGroups)
	})

	t.Run("wide ratio produces the expected group count", func(t *testing.T) {
		idx := newBinIndex(1, 1000)
		assert.Equal(t, 10, idx.numGroups) // floor(log2(1000)) + 1 == 9 + 1
	})
}

func TestBinIndex_GroupOf(t *testing.T) {
	idx := newBinIndex(1, 1000)

	t.Run("wMin lands in group 0", func(t *testing.T) {
		assert.Equal(t, 0, idx.groupOf(1))
	})

	t.Run("wMax lands in the last group", func(t *testing.T) {
		assert.Equal(t, idx.numGroups-1, idx.groupOf(1000))
	})

	t.Run("monotonic in weight", func(t *testing.T) {
		prev := idx.groupOf(1)
		for w := 2.0; w <= 1000; w *= 1.3 {
			g := idx.groupOf(w)
			assert.GreaterOrEqual(t, g, prev)
			prev = g
		}
	})

	t.Run("wMax at an exact power-of-two ratio lands in the last group", func(t *testing.T) {
		idx := newBinIndex(1, 8)
		assert.Equal(t, idx.numGroups-1, idx.groupOf(8))
	})
}

func TestBinIndex_UpperBoundOf(t *testing.T) {
	idx := newBinIndex(2, 64)
	for g := 0; g < idx.numGroups; g++ {
		got := idx.upperBoundOf(g)
		assert.Equal(t, idx.wMin*pow2(g+1), got)
	}
}

func TestBinIndex_InRange(t *testing.T) {
	idx := newBinIndex(2, 64)
	assert.True(t, idx.inRange(2))
	assert.True(t, idx.inRange(64))
	assert.True(t, idx.inRange(10))
	assert.False(t, idx.inRange(1.9))
	assert.False(t, idx.inRange(64.1))
}

func pow2(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 2
	}
	return v
}

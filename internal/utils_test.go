// SPDX-License-Identifier: Apache-2.0

package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeilPowerOf2(t *testing.T) {
	cases := map[int]int{
		0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16, 1000: 1024,
	}
	for n, want := range cases {
		assert.Equal(t, want, CeilPowerOf2(n), "n=%d", n)
	}
}

func TestExactLog2(t *testing.T) {
	g, err := ExactLog2(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, g)

	g, err = ExactLog2(64)
	assert.NoError(t, err)
	assert.Equal(t, 6, g)

	_, err = ExactLog2(6)
	assert.Error(t, err)
}

func TestIsPowerOf2(t *testing.T) {
	assert.True(t, IsPowerOf2(1))
	assert.True(t, IsPowerOf2(128))
	assert.False(t, IsPowerOf2(0))
	assert.False(t, IsPowerOf2(-4))
	assert.False(t, IsPowerOf2(6))
}

func TestBoolToInt(t *testing.T) {
	assert.Equal(t, 1, BoolToInt(true))
	assert.Equal(t, 0, BoolToInt(false))
}

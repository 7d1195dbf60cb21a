// SPDX-License-Identifier: Apache-2.0

// Package internal holds small bit-level and numeric helpers shared by the
// propagation tree and element table. Nothing here is specific to weighted
// sampling; it is the kind of power-of-2 bookkeeping every level-order binary
// tree or open-addressing table needs.
package internal

import (
	"fmt"
	"math/bits"
)

// CeilPowerOf2 returns the smallest power of 2 greater than or equal to n.
func CeilPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	topIntPwrOf2 := 1 << 30
	if n >= topIntPwrOf2 {
		return topIntPwrOf2
	}
	return 1 << bits.Len(uint(n-1))
}

// ExactLog2 returns log2(powerOf2), failing if powerOf2 is not an exact power of 2.
func ExactLog2(powerOf2 int) (int, error) {
	if !IsPowerOf2(powerOf2) {
		return 0, fmt.Errorf("argument 'powerOf2' must be a positive power of 2, got %d", powerOf2)
	}
	return bits.TrailingZeros64(uint64(powerOf2)), nil
}

// IsPowerOf2 returns true if the given number is a power of 2.
func IsPowerOf2(powerOf2 int) bool {
	return powerOf2 > 0 && (powerOf2&(powerOf2-1)) == 0
}

// BoolToInt converts a boolean to 0 or 1, useful for branchless bookkeeping.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

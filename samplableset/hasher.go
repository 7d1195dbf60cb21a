// SPDX-License-Identifier: Apache-2.0

package samplableset

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/twmb/murmur3"
)

// defaultHashSeed matches the seed the teacher's ItemSketch*Hasher
// implementations use for their default murmur3 hashers.
const defaultHashSeed = uint64(9001)

// Hasher is the injected capability spec.md §9 calls for: a stable 64-bit
// hash of an element, supplied by the caller rather than discovered through
// reflection. New requires one because the ElementTable is an
// open-addressing table keyed by this hash, not by Go's built-in map hashing.
type Hasher[E comparable] interface {
	Hash(e E) uint64
}

// StringHasher hashes string elements with murmur3, the same algorithm and
// seed the corpus uses for its string item sketches.
type StringHasher struct{}

func (StringHasher) Hash(e string) uint64 {
	return murmur3.SeedSum64(defaultHashSeed, []byte(e))
}

// Int64Hasher hashes int64 elements with murmur3 over their little-endian
// byte representation, mirroring the corpus's long-item hasher.
type Int64Hasher struct{}

func (Int64Hasher) Hash(e int64) uint64 {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(e))
	return murmur3.SeedSum64(defaultHashSeed, scratch[:])
}

// Uint64Hasher hashes uint64 elements the same way as Int64Hasher.
type Uint64Hasher struct{}

func (Uint64Hasher) Hash(e uint64) uint64 {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], e)
	return murmur3.SeedSum64(defaultHashSeed, scratch[:])
}

// BytesHasher adapts any comparable element type to Hasher by way of a
// caller-supplied byte encoding, hashed with xxhash (the same hash the
// corpus's Bloom filter uses for arbitrary keys). Use this for struct or
// array element types that don't have a dedicated Hasher above.
type BytesHasher[E comparable] struct {
	ToBytes func(E) []byte
}

func (h BytesHasher[E]) Hash(e E) uint64 {
	return xxhash.Sum64(h.ToBytes(e))
}

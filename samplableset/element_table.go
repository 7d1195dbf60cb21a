// SPDX-License-Identifier: Apache-2.0

package samplableset

import (
	"iter"

	"github.com/dynasample/samplableset-go/internal"
)

const elementTableLoadFactor = 0.75

// record is what the ElementTable (spec.md §4.2/§3) stores per element: the
// position back-pointer into GroupBins spec.md §9 requires for O(1) erase
// and cross-group update after lookup.
type record struct {
	group, pos int
	weight     float64
}

type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotTombstone
)

// elementTable is an open-addressing hash table keyed by Hasher.Hash(e),
// generalizing frequencies/reverse_purge_item_hash_map.go's linear-probing
// layout (lgLength-sized power-of-two array, load-factor-triggered resize)
// from that map's fixed capacity and value-purging semantics to a table that
// grows on demand and supports true O(1)-after-lookup deletion via
// tombstones — the reverse-purge map never deletes a single key, it only
// purges by value threshold, so this module adds the tombstone bookkeeping
// the teacher's version didn't need.
type elementTable[E comparable] struct {
	hasher    Hasher[E]
	keys      []E
	records   []record
	states    []slotState
	numActive int
	numUsed   int // occupied + tombstone; resize trigger bounds probe length
}

func newElementTable[E comparable](hasher Hasher[E]) *elementTable[E] {
	return newElementTableSized[E](hasher, 16)
}

func newElementTableSized[E comparable](hasher Hasher[E], size int) *elementTable[E] {
	size = internal.CeilPowerOf2(max(size, 4))
	return &elementTable[E]{
		hasher:  hasher,
		keys:    make([]E, size),
		records: make([]record, size),
		states:  make([]slotState, size),
	}
}

func (t *elementTable[E]) mask() uint64 { return uint64(len(t.keys) - 1) }

// find scans the probe sequence for e, returning the slot where it was found,
// or (if absent) the first empty-or-tombstone slot along that sequence,
// which is where a new entry for e must be inserted.
func (t *elementTable[E]) find(e E) (slot int, found bool) {
	idx := t.hasher.Hash(e) & t.mask()
	firstFree := -1
	for {
		switch t.states[idx] {
		case slotEmpty:
			if firstFree == -1 {
				firstFree = int(idx)
			}
			return firstFree, false
		case slotTombstone:
			if firstFree == -1 {
				firstFree = int(idx)
			}
		case slotOccupied:
			if t.keys[idx] == e {
				return int(idx), true
			}
		}
		idx = (idx + 1) & t.mask()
	}
}

// get returns e's record and true, or a zero record and false if absent.
func (t *elementTable[E]) get(e E) (record, bool) {
	slot, found := t.find(e)
	if !found {
		return record{}, false
	}
	return t.records[slot], true
}

func (t *elementTable[E]) contains(e E) bool {
	_, found := t.find(e)
	return found
}

// put inserts a new record for e, or overwrites the existing one.
func (t *elementTable[E]) put(e E, rec record) {
	slot, found := t.find(e)
	if found {
		t.records[slot] = rec
		return
	}
	if float64(t.numUsed+1) > float64(len(t.keys))*elementTableLoadFactor {
		t.grow()
		slot, _ = t.find(e)
	}
	wasTombstone := t.states[slot] == slotTombstone
	t.keys[slot] = e
	t.records[slot] = rec
	t.states[slot] = slotOccupied
	t.numActive++
	if !wasTombstone {
		t.numUsed++
	}
}

// remove deletes e's record, returning it and true, or false if absent.
func (t *elementTable[E]) remove(e E) (record, bool) {
	slot, found := t.find(e)
	if !found {
		return record{}, false
	}
	rec := t.records[slot]
	var zero E
	t.keys[slot] = zero
	t.records[slot] = record{}
	t.states[slot] = slotTombstone
	t.numActive--
	return rec, true
}

func (t *elementTable[E]) size() int { return t.numActive }

func (t *elementTable[E]) grow() {
	nt := newElementTableSized[E](t.hasher, len(t.keys)*2)
	for i, st := range t.states {
		if st != slotOccupied {
			continue
		}
		slot, _ := nt.find(t.keys[i])
		nt.keys[slot] = t.keys[i]
		nt.records[slot] = t.records[i]
		nt.states[slot] = slotOccupied
		nt.numActive++
		nt.numUsed++
	}
	*t = *nt
}

// all is the ElementTable.iterate() operation of spec.md §4.2: a finite,
// non-restartable, unspecified-order sequence over (element, weight).
func (t *elementTable[E]) all() iter.Seq2[E, float64] {
	return func(yield func(E, float64) bool) {
		for i, st := range t.states {
			if st == slotOccupied {
				if !yield(t.keys[i], t.records[i].weight) {
					return
				}
			}
		}
	}
}

func (t *elementTable[E]) clone() *elementTable[E] {
	nt := &elementTable[E]{
		hasher:    t.hasher,
		keys:      make([]E, len(t.keys)),
		records:   make([]record, len(t.records)),
		states:    make([]slotState, len(t.states)),
		numActive: t.numActive,
		numUsed:   t.numUsed,
	}
	copy(nt.keys, t.keys)
	copy(nt.records, t.records)
	copy(nt.states, t.states)
	return nt
}

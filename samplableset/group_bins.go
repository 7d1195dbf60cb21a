// SPDX-License-Identifier: Apache-2.0

package samplableset

// binEntry is one (element, weight) pair stored contiguously in a bin.
type binEntry[E comparable] struct {
	element E
	weight  float64
}

// groupBins implements spec.md §4.3: one contiguous, swap-remove-able bin per
// group plus its cached weight sum. The teacher's VarOptItemsSketch tracks an
// analogous cached totalWeightR alongside its array regions; we generalize
// that single running sum to one per group and drop the teacher's
// ResizeFactor machinery entirely — sampling/sampling.go's own comment notes
// it exists only for Java API parity and "can be removed if not needed",
// which is exactly our situation since GroupBins has no serialized format to
// stay compatible with. Plain slice append already amortizes growth in Go.
type groupBins[E comparable] struct {
	bins []bin[E]
}

type bin[E comparable] struct {
	entries []binEntry[E]
	sum     float64
}

func newGroupBins[E comparable](numGroups int) *groupBins[E] {
	return &groupBins[E]{bins: make([]bin[E], numGroups)}
}

// append pushes (e, w) onto group g's bin and returns its new position.
func (gb *groupBins[E]) append(g int, e E, w float64) int {
	b := &gb.bins[g]
	b.entries = append(b.entries, binEntry[E]{element: e, weight: w})
	b.sum += w
	return len(b.entries) - 1
}

// overwriteWeight assigns a new weight to the entry at (g, p) in place,
// adjusting the bin's cached sum by the delta.
func (gb *groupBins[E]) overwriteWeight(g, p int, wNew float64) {
	b := &gb.bins[g]
	b.sum += wNew - b.entries[p].weight
	b.entries[p].weight = wNew
}

// swapRemove deletes the entry at (g, p) by swapping in the bin's last entry
// and truncating. If a different entry was moved into p, it returns that
// entry's element (second return true) so the caller can patch its
// ElementTable record; this is the position back-pointer hazard spec.md §9
// calls out as the single subtle correctness requirement of the structure.
func (gb *groupBins[E]) swapRemove(g, p int) (moved E, ok bool) {
	b := &gb.bins[g]
	last := len(b.entries) - 1
	removedWeight := b.entries[p].weight
	if p != last {
		b.entries[p] = b.entries[last]
		moved = b.entries[p].element
		ok = true
	}
	b.entries = b.entries[:last]
	b.sum -= removedWeight
	return moved, ok
}

func (gb *groupBins[E]) numGroups() int { return len(gb.bins) }

func (gb *groupBins[E]) sum(g int) float64 { return gb.bins[g].sum }

func (gb *groupBins[E]) size(g int) int { return len(gb.bins[g].entries) }

func (gb *groupBins[E]) at(g, p int) (E, float64) {
	e := gb.bins[g].entries[p]
	return e.element, e.weight
}

// recomputeSum rebuilds group g's cached sum exactly from its entries,
// undoing incremental floating-point drift. Used by Rebalance (spec.md §7).
func (gb *groupBins[E]) recomputeSum(g int) float64 {
	var sum float64
	for _, e := range gb.bins[g].entries {
		sum += e.weight
	}
	gb.bins[g].sum = sum
	return sum
}

// clone deep-copies every bin, for SamplableSet.Copy.
func (gb *groupBins[E]) clone() *groupBins[E] {
	out := &groupBins[E]{bins: make([]bin[E], len(gb.bins))}
	for i, b := range gb.bins {
		out.bins[i].sum = b.sum
		if len(b.entries) > 0 {
			out.bins[i].entries = make([]binEntry[E], len(b.entries))
			copy(out.bins[i].entries, b.entries)
		}
	}
	return out
}

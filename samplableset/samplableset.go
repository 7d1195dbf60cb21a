// SPDX-License-Identifier: Apache-2.0

package samplableset

import (
	"fmt"
	"iter"
)

// Set is a dynamic weighted sampling set (spec.md §1-§3): a container of
// distinct elements, each with a positive weight in [wMin, wMax], supporting
// insertion, weight update, removal, membership/weight queries, and weighted
// random sampling, all in expected O(log log(wMax/wMin)) time independent of
// the number of elements.
//
// A Set is not safe for concurrent use, including sampling concurrently with
// a mutation (spec.md §5): callers needing concurrency must serialize access
// themselves.
type Set[E comparable] struct {
	idx   binIndex
	table *elementTable[E]
	bins  *groupBins[E]
	tree  *propagationTree
	rng   randSource

	rebalanceEvery int
	mutations      int
}

// New constructs an empty Set with element weights constrained to
// [wMin, wMax]. hasher supplies the injected hash(e) -> uint64 capability
// spec.md §9 requires; see StringHasher, Int64Hasher, Uint64Hasher, and
// BytesHasher for ready-made implementations.
func New[E comparable](wMin, wMax float64, hasher Hasher[E], opts ...Option[E]) (*Set[E], error) {
	if !(wMin > 0) {
		return nil, fmt.Errorf("samplableset: wMin must be positive, got %g", wMin)
	}
	if wMax < wMin {
		return nil, fmt.Errorf("samplableset: wMax (%g) must be >= wMin (%g)", wMax, wMin)
	}
	if hasher == nil {
		return nil, fmt.Errorf("samplableset: hasher must not be nil")
	}

	cfg := &config[E]{}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.initialElements) != len(cfg.initialWeights) {
		return nil, fmt.Errorf("samplableset: %d initial elements but %d initial weights", len(cfg.initialElements), len(cfg.initialWeights))
	}

	idx := newBinIndex(wMin, wMax)
	s := &Set[E]{
		idx:            idx,
		table:          newElementTable[E](hasher),
		bins:           newGroupBins[E](idx.numGroups),
		tree:           newPropagationTree(idx.numGroups),
		rebalanceEvery: cfg.rebalanceEvery,
	}
	if cfg.hasSeed {
		s.rng = newRNG(cfg.seed)
	} else {
		s.rng = newEntropySeededRNG()
	}

	for i, e := range cfg.initialElements {
		if err := s.Insert(e, cfg.initialWeights[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set[E]) hasher() Hasher[E] { return s.table.hasher }

// Insert adds e with weight w. It returns ErrOutOfRangeWeight if w is outside
// [wMin, wMax], or ErrDuplicateElement if e is already present.
func (s *Set[E]) Insert(e E, w float64) error {
	if !s.idx.inRange(w) {
		return outOfRangeWeightError(w, s.idx.wMin, s.idx.wMax)
	}
	if s.table.contains(e) {
		return fmt.Errorf("%w: %v", ErrDuplicateElement, e)
	}
	g := s.idx.groupOf(w)
	p := s.bins.append(g, e, w)
	s.table.put(e, record{group: g, pos: p, weight: w})
	s.tree.updateLeaf(g, w)
	s.afterMutation()
	return nil
}

// SetWeight assigns wNew to the already-present element e, relocating it
// between groups if wNew's group differs from its current one (spec.md
// §4.4). It returns ErrOutOfRangeWeight or ErrMissingElement.
func (s *Set[E]) SetWeight(e E, wNew float64) error {
	if !s.idx.inRange(wNew) {
		return outOfRangeWeightError(wNew, s.idx.wMin, s.idx.wMax)
	}
	rec, ok := s.table.get(e)
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingElement, e)
	}

	gNew := s.idx.groupOf(wNew)
	if gNew == rec.group {
		delta := wNew - rec.weight
		s.bins.overwriteWeight(rec.group, rec.pos, wNew)
		s.tree.updateLeaf(rec.group, delta)
		rec.weight = wNew
		s.table.put(e, rec)
		s.afterMutation()
		return nil
	}

	s.detachFromBin(e, rec)
	p := s.bins.append(gNew, e, wNew)
	s.tree.updateLeaf(gNew, wNew)
	s.table.put(e, record{group: gNew, pos: p, weight: wNew})
	s.afterMutation()
	return nil
}

// GetWeight returns e's current weight and true, or (0, false) if absent.
func (s *Set[E]) GetWeight(e E) (float64, bool) {
	rec, ok := s.table.get(e)
	if !ok {
		return 0, false
	}
	return rec.weight, true
}

// Contains reports whether e is present.
func (s *Set[E]) Contains(e E) bool {
	return s.table.contains(e)
}

// Erase removes e. It returns ErrMissingElement if e is absent.
func (s *Set[E]) Erase(e E) error {
	rec, ok := s.table.get(e)
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingElement, e)
	}
	s.detachFromBin(e, rec)
	s.table.remove(e)
	s.afterMutation()
	return nil
}

// detachFromBin removes e's entry from its bin via swap-remove and fixes up
// the position back-pointer of whichever element, if any, was swapped into
// its old slot — the single subtle correctness hazard spec.md §9 calls out.
// It does not touch the ElementTable record for e itself; callers either
// overwrite it (SetWeight) or delete it (Erase) afterward.
func (s *Set[E]) detachFromBin(e E, rec record) {
	moved, ok := s.bins.swapRemove(rec.group, rec.pos)
	if ok {
		mrec, _ := s.table.get(moved)
		mrec.pos = rec.pos
		s.table.put(moved, mrec)
	}
	s.tree.updateLeaf(rec.group, -rec.weight)
}

// Size returns the number of elements in the set.
func (s *Set[E]) Size() int { return s.table.size() }

// TotalWeight returns the sum of all elements' weights.
func (s *Set[E]) TotalWeight() float64 { return s.tree.total() }

// Sample draws one element with probability proportional to its weight,
// using the composition-and-rejection algorithm of spec.md §4.4. It returns
// (zero, 0, false) if the set is empty.
func (s *Set[E]) Sample() (E, float64, bool) {
	var zero E
	if s.table.size() == 0 {
		return zero, 0, false
	}
	for {
		total := s.tree.total()
		if total <= 0 {
			return zero, 0, false
		}
		r := s.rng.Float64() * total
		g := s.tree.descend(r)
		if g >= s.bins.numGroups() {
			continue // landed on a zero-weight padding leaf; redraw
		}
		n := s.bins.size(g)
		if n == 0 {
			continue
		}
		// Rejection is retried within group g, so an element is returned with
		// probability (S_g/W) * (w/S_g) = w/W. Every weight in the group is at
		// least wStar/2, so each attempt is accepted with probability >= 1/2.
		wStar := s.idx.upperBoundOf(g)
		for {
			p := int(s.rng.Float64() * float64(n))
			if p >= n {
				p = n - 1
			}
			e, w := s.bins.at(g, p)
			u := s.rng.Float64()
			if u*wStar <= w {
				return e, w, true
			}
		}
	}
}

// Sample is the (element, weight, ok) result of SampleWithoutReplacement;
// Ok is false for the absent markers spec.md §4.4/§6 specifies once n exceeds
// the number of distinct elements available.
type Sample[E comparable] struct {
	Element E
	Weight  float64
	Ok      bool
}

// SampleWithoutReplacement returns a lazy sequence of up to n samples without
// replacement (spec.md §4.4): each draw samples, then temporarily erases the
// chosen element, and once the sequence is fully consumed or abandoned every
// temporarily erased element is reinserted with its original weight. If n
// exceeds Size(), trailing results have Ok == false.
//
// The caller must drive the returned sequence to completion — or break out of
// a range loop over it, which this implementation treats identically via the
// deferred reinsertion below — to guarantee reinsertion happens exactly once.
func (s *Set[E]) SampleWithoutReplacement(n int) iter.Seq[Sample[E]] {
	return func(yield func(Sample[E]) bool) {
		type taken struct {
			e E
			w float64
		}
		var held []taken
		defer func() {
			for _, t := range held {
				// w was valid and e was absent at the moment it was taken,
				// so this reinsertion cannot fail.
				_ = s.Insert(t.e, t.w)
			}
		}()

		for i := 0; i < n; i++ {
			e, w, ok := s.Sample()
			if !ok {
				if !yield(Sample[E]{}) {
					return
				}
				continue
			}
			held = append(held, taken{e, w})
			_ = s.Erase(e)
			if !yield(Sample[E]{Element: e, Weight: w, Ok: true}) {
				return
			}
		}
	}
}

// All returns a finite, non-restartable, unspecified-order sequence over
// every (element, weight) pair (spec.md §4.4's iterate()). Mutating the set
// while an iteration is in progress is undefined (spec.md §5).
func (s *Set[E]) All() iter.Seq2[E, float64] {
	return s.table.all()
}

// Clear removes every element, returning the set to its Empty state.
func (s *Set[E]) Clear() {
	s.table = newElementTable[E](s.hasher())
	s.bins = newGroupBins[E](s.idx.numGroups)
	s.tree = newPropagationTree(s.idx.numGroups)
	s.mutations = 0
}

// Rebalance recomputes every bin sum and every propagation tree node exactly
// from the stored elements, correcting the floating-point drift spec.md §7
// permits incremental running sums to accumulate.
func (s *Set[E]) Rebalance() {
	leafValues := make([]float64, s.idx.numGroups)
	for g := 0; g < s.idx.numGroups; g++ {
		leafValues[g] = s.bins.recomputeSum(g)
	}
	s.tree.recompute(leafValues)
}

func (s *Set[E]) afterMutation() {
	if s.rebalanceEvery <= 0 {
		return
	}
	s.mutations++
	if s.mutations >= s.rebalanceEvery {
		s.mutations = 0
		s.Rebalance()
	}
}

// Copy returns a deep copy of the set. If seed is given, the copy's PRNG is
// seeded from it; otherwise it is reseeded from a single draw of this set's
// own PRNG (spec.md §3/§9) — adequate for modest fan-out, not for independent
// streams across many copies, which require an explicit seed.
func (s *Set[E]) Copy(seed ...uint64) *Set[E] {
	c := &Set[E]{
		idx:            s.idx,
		table:          s.table.clone(),
		bins:           s.bins.clone(),
		tree:           s.tree.clone(),
		rebalanceEvery: s.rebalanceEvery,
		mutations:      s.mutations,
	}
	if len(seed) > 0 {
		c.rng = newRNG(seed[0])
	} else {
		c.rng = reseedFrom(s.rng)
	}
	return c
}

// String summarizes the set for debugging.
func (s *Set[E]) String() string {
	return fmt.Sprintf("Set[%d elements, total weight %g, %d groups]", s.Size(), s.TotalWeight(), s.idx.numGroups)
}

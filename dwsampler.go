// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dwsampler implements a dynamic weighted discrete sampler: a
// mutable container mapping integer indices 1..N to non-negative finite
// weights, supporting O(1) expected Get/Set/Sample regardless of how many
// indices carry nonzero weight.
//
// Weights are bucketed by IEEE-754 binary exponent into 2046 levels. Each
// level tracks an exact 128-bit sum of "shifted significands" and an
// approximate 64-bit weight derived from that sum by a shared global
// shift, chosen so that the grand total stays zero or within [2^32, 2^64).
// Sample draws a level in a linear scan over those 2046 buckets, then
// resolves any rounding slack with a bounded rejection pass, then draws
// an element inside the bucket by rejection sampling over the shifted
// significands. See insert.go, delete.go, sample.go and levels.go for the
// mechanics; arena.go hosts the shared backing store for bucket contents.
package dwsampler

// numBuckets is the number of normal IEEE-754 double exponents: 0x7fe (the
// largest) down to 0x001 (the smallest). Subnormal exponent 0 and the
// NaN/Inf exponent 0x7ff are never bucketed.
const numBuckets = 2046

// twoPow32 is the lower bound on a nonzero global total T: either T == 0
// or T is in [2^32, 2^64).
const twoPow32 = uint64(1) << 32

// Variant selects the resize policy of a Sampler. All three variants share
// the same internal layout; they differ only in whether, and how far,
// Resize is allowed to move the logical length. A capability flag rather
// than subtype dispatch, matching how this codebase already distinguishes
// behavior by enum elsewhere (see errs.Kind).
type Variant uint8

const (
	// Fixed never allows Resize to change the logical length.
	Fixed Variant = iota
	// Semi allows Resize only up to the capacity reserved at New.
	Semi
	// Resizable allows Resize to grow or shrink without restriction.
	Resizable
)

func (v Variant) String() string {
	switch v {
	case Fixed:
		return "fixed"
	case Semi:
		return "semi"
	case Resizable:
		return "resizable"
	default:
		return "unknown"
	}
}

// editEntry is the edit-map record for one logical index: where its
// element lives in the shared arena, and the exponent its weight was
// stored under (needed to recover the bucket on deletion). pos == -1
// means the index currently has weight zero (absent from every bucket).
type editEntry struct {
	pos int
	exp uint16
}

// Sampler is a dynamic weighted discrete sampler over indices 1..Len(s).
// The zero value is not usable; construct with New.
type Sampler struct {
	variant Variant
	length  int

	shift      int64
	total      uint64
	firstLevel int

	sigSum [numBuckets]uint128
	levelW [numBuckets]uint64
	groups [numBuckets]groupDesc

	elems   []pairElem
	freePtr int

	edit []editEntry
}

// New creates a sampler of logical length n, all weights zero. For variant
// Semi, n is also the ceiling Resize may grow to later; for Fixed and
// Resizable it is only the initial length.
func New(variant Variant, n int) (*Sampler, error) {
	if n < 0 {
		return nil, newOutOfBounds("negative capacity")
	}
	s := &Sampler{
		variant:    variant,
		length:     n,
		firstLevel: numBuckets,
		edit:       make([]editEntry, n),
	}
	for i := range s.edit {
		s.edit[i].pos = -1
	}
	return s, nil
}

// Len returns the current logical length (the valid index range is
// 1..Len(s)).
func (s *Sampler) Len() int {
	return s.length
}

// Variant returns the resize policy the sampler was created with.
func (s *Sampler) Variant() Variant {
	return s.variant
}

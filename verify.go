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

package dwsampler

import (
	"fmt"
	"math/bits"
	"sort"
)

// Verify recomputes sigSum, the level weights, the total, and the first
// nonempty level from first principles (walking the edit map and arena)
// and reports a descriptive error on any mismatch against the sampler's
// maintained state, or on any violation of the arena layout invariants
// (groups don't overlap; every live group lies within the used region of
// the arena).
//
// Exported rather than kept as a test-only helper, so tooling outside of
// tests can assert a sampler's internal consistency after a batch of
// mutations.
func Verify(s *Sampler) error {
	var wantSig [numBuckets]uint128
	var groupLen [numBuckets]int
	live := 0

	for i := 0; i < s.length; i++ {
		e := s.edit[i]
		if e.pos < 0 {
			continue
		}
		live++
		if e.pos < 0 || e.pos >= len(s.elems) {
			return fmt.Errorf("dwsampler: index %d has out-of-range arena position %d", i+1, e.pos)
		}
		el := s.elems[e.pos]
		if el.target != i+1 {
			return fmt.Errorf("dwsampler: index %d points at arena slot %d whose target is %d", i+1, e.pos, el.target)
		}
		k := bucketOf(int(e.exp))
		if k < 0 || k >= numBuckets {
			return fmt.Errorf("dwsampler: index %d has invalid exponent %d", i+1, e.exp)
		}
		wantSig[k] = wantSig[k].add(el.sig)
		groupLen[k]++
	}

	for k := 0; k < numBuckets; k++ {
		if groupLen[k] != s.groups[k].length {
			return fmt.Errorf("dwsampler: bucket %d group length %d, edit map implies %d", k, s.groups[k].length, groupLen[k])
		}
	}

	var wantTotalLo, wantTotalHi uint64
	wantFirst := numBuckets
	for k := 0; k < numBuckets; k++ {
		if wantSig[k] != s.sigSum[k] {
			return fmt.Errorf("dwsampler: bucket %d sigSum mismatch: want {%d,%d}, have {%d,%d}",
				k, wantSig[k].hi, wantSig[k].lo, s.sigSum[k].hi, s.sigSum[k].lo)
		}
		w := computeLevelWeight(wantSig[k], shiftForBucket(k, s.shift))
		if w != s.levelW[k] {
			return fmt.Errorf("dwsampler: bucket %d level weight mismatch: want %d, have %d", k, w, s.levelW[k])
		}
		if w != 0 && k < wantFirst {
			wantFirst = k
		}
		lo, carry := bits.Add64(wantTotalLo, w, 0)
		wantTotalLo = lo
		wantTotalHi += carry
	}
	if wantTotalHi != 0 {
		return fmt.Errorf("dwsampler: recomputed total overflows 64 bits")
	}
	if wantTotalLo != s.total {
		return fmt.Errorf("dwsampler: total mismatch: want %d, have %d", wantTotalLo, s.total)
	}
	if wantFirst != s.firstLevel {
		return fmt.Errorf("dwsampler: first nonempty level mismatch: want %d, have %d", wantFirst, s.firstLevel)
	}
	if s.total != 0 && s.total < twoPow32 {
		return fmt.Errorf("dwsampler: total %d is nonzero but below 2^32", s.total)
	}

	return verifyArenaLayout(s)
}

// verifyArenaLayout checks that live group ranges lie within [0, freePtr)
// and do not overlap.
func verifyArenaLayout(s *Sampler) error {
	type span struct {
		pos, end, k int
	}
	var spans []span
	for k := 0; k < numBuckets; k++ {
		g := s.groups[k]
		if g.length == 0 {
			continue
		}
		if g.pos < 0 || g.pos+g.length > s.freePtr {
			return fmt.Errorf("dwsampler: bucket %d group [%d,%d) lies outside used arena region [0,%d)", k, g.pos, g.pos+g.length, s.freePtr)
		}
		spans = append(spans, span{pos: g.pos, end: g.pos + g.length, k: k})
	}
	sort.Slice(spans, func(a, b int) bool { return spans[a].pos < spans[b].pos })
	for idx := 1; idx < len(spans); idx++ {
		if spans[idx].pos < spans[idx-1].end {
			return fmt.Errorf("dwsampler: bucket %d group overlaps bucket %d group", spans[idx].k, spans[idx-1].k)
		}
	}
	return nil
}

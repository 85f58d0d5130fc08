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
	"math/bits"

	"github.com/zintix-labs/dwsampler/rng"
)

// Sample draws a logical index with probability exactly proportional to
// its current weight. Requires Len(s) > 0 and a nonzero total weight;
// sampling a sampler with zero total weight returns an error rather than
// an undefined index.
func (s *Sampler) Sample(src rng.Source) (int, error) {
	if s.total == 0 {
		return 0, newInvalidWeight("sample called on a sampler with zero total weight")
	}
	for {
		x := rng.BoundedUint64(src, s.total)
		k := s.firstLevel
		for x >= s.levelW[k] {
			x -= s.levelW[k]
			k++
		}
		// The top unit of a level's weight window is the +1 rounding
		// slack computeLevelWeight added as an upper bound; landing on
		// it means the true weight may or may not actually extend this
		// far, so Stage 2 resolves the tie exactly instead of just
		// accepting.
		if x == s.levelW[k]-1 {
			if !s.refine(k, src) {
				continue
			}
		}
		return s.sampleInBucket(k, src), nil
	}
}

// refine resolves the Stage-1 tie for bucket k by rejection sampling over
// successive 64-bit windows of the true weight's fractional part. Returns
// true to accept bucket k, false to reject back to Stage 1.
func (s *Sampler) refine(k int, src rng.Source) bool {
	sig := s.sigSum[k]
	shift := shiftForBucket(k, s.shift)

	for t := int64(1); ; t++ {
		frac := shiftLow64(sig.hi, sig.lo, shift+64*t)
		xt := src.Uint64()
		switch {
		case xt > frac:
			return false
		case xt < frac:
			return true
		}
		if shift+64*t >= 0 {
			// Every window from here on is provably zero.
			return true
		}
	}
}

// sampleInBucket draws one element of bucket k by rejection sampling:
// pick a uniformly random slot among the next power of two at or above
// the group's length, retry if it lands past the end, then accept with
// probability proportional to the element's shifted significand. Every
// shifted significand lies in [2^63, 2^64), so the acceptance rate here
// is never worse than 1/2.
func (s *Sampler) sampleInBucket(k int, src rng.Source) int {
	g := &s.groups[k]
	capLog2 := bits.Len(uint(g.length - 1))
	for {
		r := src.Uint64()
		slot := int(r >> uint(64-capLog2))
		if slot >= g.length {
			continue
		}
		el := &s.elems[g.pos+slot]
		r2 := src.Uint64()
		if r2 < el.sig {
			return el.target
		}
	}
}

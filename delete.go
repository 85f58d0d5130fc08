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

// advanceFirstLevel scans forward from the current first nonempty level
// until it finds one, or runs off the end (meaning the sampler is empty).
func (s *Sampler) advanceFirstLevel() {
	k := s.firstLevel
	for k < numBuckets && s.levelW[k] == 0 {
		k++
	}
	s.firstLevel = k
}

// clear removes the active weight at logical index i (1-based), if any.
// A no-op if i currently has no active weight.
func (s *Sampler) clear(i int) {
	ee := s.edit[i-1]
	if ee.pos < 0 {
		return
	}
	k := bucketOf(int(ee.exp))
	el := s.elems[ee.pos]

	s.sigSum[k] = s.sigSum[k].sub(el.sig)
	old := s.levelW[k]
	nw := computeLevelWeight(s.sigSum[k], shiftForBucket(k, s.shift))
	s.levelW[k] = nw
	s.applyLevelDelta(old, nw)

	s.removeFromGroupSwap(k, ee.pos)
	s.edit[i-1] = editEntry{pos: -1}

	if k == s.firstLevel && s.levelW[k] == 0 {
		s.advanceFirstLevel()
	}

	// Shift-increase on underflow: deleting weight can drop the total
	// below 2^32 without zeroing it, which would otherwise leave too
	// few significant bits for Stage-1's linear scan to discriminate
	// between levels accurately.
	if s.total != 0 && s.total < twoPow32 {
		s.retarget(k)
	}
}

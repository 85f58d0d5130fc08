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

// Package sampler holds the integer-weight comparison baseline the bench
// CLI runs alongside dwsampler.Sampler.
//
// This file implements Vose's alias method for O(1) weighted sampling
// over a fixed []int weight vector.
//
// Algorithm:
//   - Any discrete distribution can be expressed as a combination of
//     uniform choices over buckets, each bucket holding at most two
//     outcomes: itself and an alias.
//   - Sampling picks a bucket uniformly, then a coin flip decides
//     whether to keep the bucket's own outcome or its alias.
//
// Properties:
//   - Build time: O(N).
//   - Sample time: O(1) (two IntN draws).
//   - Space: O(N), independent of the weight total.
//
// Unlike dwsampler.Sampler, AliasTable has no incremental update: any
// weight change requires a full rebuild. That tradeoff is exactly what
// makes it a useful comparison baseline.
//
// Implementation uses integer scaling throughout to avoid floating-point
// precision loss (0.999... != 1.0), with an overflow check on the
// build-time multiply.
package sampler

import (
	"math"
	"math/bits"

	"github.com/zintix-labs/dwsampler/rng"
)

// AliasTable is Vose's alias method, an O(1) weighted sampling structure
// for discrete distributions over []int weights.
//
// Fields:
//   - Prob: each element's scaled acceptance probability.
//   - Aliases: the alias index each bucket falls back to when the coin
//     flip rejects the bucket's own outcome.
//   - Size: number of elements.
//   - Total: sum of the input weights, used for scaling and sampling.
type AliasTable struct {
	Prob    []int
	Aliases []int
	Size    int
	Total   int
}

// BuildAliasTable builds an AliasTable from weights.
//
// weights must be non-negative; a negative weight or an all-zero vector
// panics. Build proceeds in the classic two-bucket form:
//
//  1. Scale each weight w by n (element count) to get an integer prob.
//  2. Partition indices into small/large buckets by comparing prob to
//     total.
//  3. Repeatedly pop one index from each bucket, assign the large index
//     as the small index's alias, and push the large index's leftover
//     probability back into whichever bucket it now belongs to.
//  4. Stop when either bucket empties.
func BuildAliasTable(weights []int) *AliasTable {
	if len(weights) == 0 {
		return &AliasTable{
			Prob:    []int{},
			Aliases: []int{},
			Size:    0,
			Total:   0,
		}
	}

	n := len(weights)
	total := uint64(0)
	for _, w := range weights {
		if w < 0 {
			panic("AliasTable: negative weight encountered")
		}
		if total > uint64(math.MaxInt)-uint64(w) {
			panic("AliasTable: total weight overflow int range")
		}
		total += uint64(w)
	}

	if total == 0 {
		panic("AliasTable: all weights are zero")
	}

	if !isSafeMultiply(int(total), n) {
		panic("AliasTable: weights are too large, causing overflow")
	}

	prob := make([]int, n)
	aliases := make([]int, n)

	small := make([]int, 0)
	large := make([]int, 0)

	for i, w := range weights {
		prob[i] = w * n // integer scaling: multiply the weight by n for integer comparisons
		if prob[i] < int(total) {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		aliases[s] = l                           // s's shortfall is made up by l
		prob[l] = prob[l] + prob[s] - int(total) // keep sum(prob) == total * n invariant

		if prob[l] < int(total) {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	return &AliasTable{
		Prob:    prob,
		Aliases: aliases,
		Size:    n,
		Total:   int(total),
	}
}

// isSafeMultiply reports whether a*b fits in int64 without overflow, using bits.Mul64
// to get the full 128-bit product without risking the overflow itself.
func isSafeMultiply(a, b int) bool {
	a1 := uint64(a)
	b1 := uint64(b)
	hi, lo := bits.Mul64(a1, b1)
	return hi == 0 && (lo <= math.MaxInt64)
}

// Pick draws one index from at, or -1 if at is empty.
//
// Sampling:
//  1. Pick a bucket idx uniformly via c.IntN(Size).
//  2. Draw c.IntN(Total) and accept idx if it falls below Prob[idx],
//     otherwise fall through to Aliases[idx].
//
// This is the integer-scaled equivalent of drawing U in [0,1) and
// comparing against a probability: Prob[idx] = weight[idx] * Size plays
// the role U is compared to, just scaled to stay in integer arithmetic
// end to end.
func (at *AliasTable) Pick(c *rng.Core) int {
	if at.Size == 0 {
		return -1
	}
	idx := c.IntN(at.Size)
	if c.IntN(at.Total) < at.Prob[idx] {
		return idx
	}
	return at.Aliases[idx]
}

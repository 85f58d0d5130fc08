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

// Package rng provides the random sources used across dwsampler: the
// minimal contract the sampler core itself requires, and a richer
// convenience wrapper for callers (the bench CLI, the demo server) who
// want determinism, seeding, and bounded draws without reimplementing
// them.
//
// Grounded on the sdk/core package pattern of a Core wrapping a PRNG
// interface; the sampler core itself only ever needs Source, a single
// uniform 64-bit integer source.
package rng

import (
	"math"
	"math/bits"
)

// Source is the RNG contract required by Sample: a uniform 64-bit integer
// generator. No assumptions are made about reseedability; Sample consumes
// between 2 and O(log N) draws per call.
type Source interface {
	Uint64() uint64
}

// PRNG is the richer contract used outside the sampler core: anything that
// can produce uniform 64-bit integers and uniform floats in [0,1).
type PRNG interface {
	Source
	Float64() float64
}

// Core wraps a PRNG and adds a few convenience draws used by the bench and
// demo tooling (bounded integers, exponential variates for synthetic
// weight generation).
type Core struct {
	PRNG
}

func New(p PRNG) *Core {
	return &Core{p}
}

// UintN returns a uniform value in [0, n). Returns 0 if n == 0.
//
// Uses Lemire's rejection-bounded multiplication.
func (c *Core) UintN(n uint64) uint64 {
	return BoundedUint64(c.PRNG, n)
}

// IntN returns a uniform value in [0, n). Returns -1 if n <= 0.
func (c *Core) IntN(n int) int {
	if n <= 0 {
		return -1
	}
	return int(BoundedUint64(c.PRNG, uint64(n)))
}

// ExpFloat64 draws a standard exponential variate via inversion, used by
// the bench CLI to synthesize heavy-tailed weight updates.
func (c *Core) ExpFloat64() float64 {
	u := c.PRNG.Float64()
	for u == 0 {
		u = c.PRNG.Float64()
	}
	return -math.Log(u)
}

// Pick returns a uniformly random element of src, or -1 if src is empty.
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	return src[c.IntN(len(src))]
}

// ShuffleInts performs an in-place Fisher-Yates shuffle of src: every one
// of the N! orderings is equally likely, in O(N) time and no extra
// allocation.
func (c *Core) ShuffleInts(src []int) {
	for i := len(src) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		src[i], src[j] = src[j], src[i]
	}
}

// BoundedUint64 draws a uniform value in [0, n) from src using Lemire's
// rejection-bounded multiplication: scale a 64-bit draw into [0, n) by
// taking the high 64 bits of the 128-bit product, rejecting low draws that
// would bias the distribution when n does not evenly divide 2^64.
//
// Exported so the sampler core can reuse it against the bare Source
// contract, a uniform 64-bit integer source, without needing the richer
// PRNG/Core wrapper.
func BoundedUint64(src Source, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	hi, lo := bits.Mul64(src.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(src.Uint64(), n)
		}
	}
	return hi
}

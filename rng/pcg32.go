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

package rng

import (
	"crypto/rand"
	"math"
	"math/big"
	"math/bits"
)

const pcg32Multiplier = 6364136223846793005

// PCG32 is a 64-bit-state, 32-bit-output PCG (XSH RR) generator. It trades
// Float64 precision (32 bits of mantissa instead of PCG64's 53) for a
// smaller state word, useful when benchpool seeds a large number of
// independent per-worker samplers and the state footprint matters more
// than per-draw precision.
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 seeds a PCG32 from a cryptographically random source.
func NewPCG32() *PCG32 {
	seed, _ := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	r := &PCG32{}
	r.initWithSeed(seed.Int64(), 1)
	return r
}

// NewPCG32WithSeed seeds a PCG32 deterministically.
func NewPCG32WithSeed(seed int64) *PCG32 {
	r := &PCG32{}
	r.initWithSeed(seed, 1)
	return r
}

// Uint32 returns a non-negative uniform uint32.
func (r *PCG32) Uint32() uint32 {
	return r.nextUint32()
}

// Uint64 returns a non-negative uniform uint64, assembled from two Uint32
// draws.
func (r *PCG32) Uint64() uint64 {
	return (uint64(r.nextUint32()) << 32) | uint64(r.nextUint32())
}

// Float64 returns a uniform float64 in [0,1) with 32 bits of precision.
func (r *PCG32) Float64() float64 {
	return float64(r.nextUint32()) / (1 << 32)
}

func (r *PCG32) initWithSeed(baseSeed int64, seq uint64) {
	inc := (seq << 1) | 1
	// PCG's recommended init: step once on the stream alone, add the
	// seed, then step again.
	g := pcg32Core{state: 0, inc: inc}
	g.next()
	g.state += uint64(baseSeed)
	g.next()
	r.state = g.state
	r.inc = inc
}

type pcg32Core struct {
	state uint64
	inc   uint64
}

func (p *pcg32Core) next() uint32 {
	oldstate := p.state
	p.state = oldstate*pcg32Multiplier + p.inc
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := uint32(oldstate >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}

func (r *PCG32) nextUint32() uint32 {
	oldstate := r.state
	r.state = oldstate*pcg32Multiplier + r.inc
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := uint32(oldstate >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}

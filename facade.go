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
	"math"

	"github.com/zintix-labs/dwsampler/errs"
)

func newOutOfBounds(msg string) *errs.E   { return errs.New(errs.OutOfBounds, msg) }
func newInvalidWeight(msg string) *errs.E { return errs.New(errs.InvalidWeight, msg) }
func newNotResizable(msg string) *errs.E  { return errs.New(errs.NotResizable, msg) }

// decompose splits a finite normal positive double into its exponent
// field and shifted significand: 2^63 | (mantissa << 11).
func decompose(w float64) (exp uint16, sig uint64) {
	b := math.Float64bits(w)
	exp = uint16(b >> 52)
	m := b & (1<<52 - 1)
	sig = (uint64(1) << 63) | (m << 11)
	return exp, sig
}

// weightFromParts reconstructs the double a (exp, sig) pair was derived
// from.
func weightFromParts(exp uint16, sig uint64) float64 {
	m := (sig &^ (uint64(1) << 63)) >> 11
	return math.Float64frombits(uint64(exp)<<52 | m)
}

// validWeight reports whether w is in-domain for Set/Insert: finite,
// positive, and normal (not subnormal). Zero is handled by the caller
// before this check runs, since w == 0 means "clear", not "reject".
func validWeight(w float64) bool {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return false
	}
	exp := math.Float64bits(w) >> 52
	return exp >= 1 && exp <= numBuckets
}

func (s *Sampler) checkIndex(i int) error {
	if i < 1 || i > s.length {
		return newOutOfBounds("index out of range")
	}
	return nil
}

// Get returns the current weight at index i, or 0 if it was never set or
// was last set to 0.
func (s *Sampler) Get(i int) (float64, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}
	e := s.edit[i-1]
	if e.pos < 0 {
		return 0, nil
	}
	return weightFromParts(e.exp, s.elems[e.pos].sig), nil
}

// Set assigns weight w to index i. w == 0 clears the index; otherwise w
// must be a finite positive normal double.
func (s *Sampler) Set(i int, w float64) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if w == 0 {
		s.clear(i)
		return nil
	}
	if !validWeight(w) {
		return newInvalidWeight("weight must be a finite, positive, normal double")
	}
	if s.edit[i-1].pos >= 0 {
		s.clear(i)
	}
	s.insert(i, w)
	return nil
}

// Insert is Set, but grows the sampler's length first if i exceeds it.
func (s *Sampler) Insert(i int, w float64) error {
	if i < 1 {
		return newOutOfBounds("index must be >= 1")
	}
	if i > s.length {
		if err := s.Resize(i); err != nil {
			return err
		}
	}
	return s.Set(i, w)
}

// Remove clears index i. Unlike Set(i, 0), it reports an error if the
// index had no active weight to remove.
func (s *Sampler) Remove(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if s.edit[i-1].pos < 0 {
		return newInvalidWeight("index has no active weight to remove")
	}
	s.clear(i)
	return nil
}

// InsertMany applies Insert for each (idxs[j], ws[j]) pair in order,
// stopping at the first error.
func (s *Sampler) InsertMany(idxs []int, ws []float64) error {
	if len(idxs) != len(ws) {
		return newOutOfBounds("idxs and ws must be the same length")
	}
	for j := range idxs {
		if err := s.Insert(idxs[j], ws[j]); err != nil {
			return err
		}
	}
	return nil
}

// Resize changes the logical length to n. Fixed samplers reject any call;
// Semi samplers reject growth past the capacity reserved at New; Resizable
// samplers accept any n >= 0. Shrinking clears every weight at an index
// beyond the new length first.
func (s *Sampler) Resize(n int) error {
	if n < 0 {
		return newOutOfBounds("negative length")
	}
	switch s.variant {
	case Fixed:
		return newNotResizable("fixed sampler cannot be resized")
	case Semi:
		if n > cap(s.edit) {
			return newNotResizable("resize exceeds capacity reserved at creation")
		}
	}

	switch {
	case n < s.length:
		for i := n + 1; i <= s.length; i++ {
			s.clear(i)
		}
		s.edit = s.edit[:n]
	case n > s.length:
		old := len(s.edit)
		if n > cap(s.edit) {
			grown := make([]editEntry, n)
			copy(grown, s.edit)
			s.edit = grown
		} else {
			s.edit = s.edit[:n]
		}
		for i := old; i < n; i++ {
			s.edit[i] = editEntry{pos: -1}
		}
	}
	s.length = n
	return nil
}

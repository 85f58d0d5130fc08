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
	"math"
	"testing"
)

func TestPCG64Determinism(t *testing.T) {
	c1 := New(NewPCG64WithSeed(7))
	c2 := New(NewPCG64WithSeed(7))
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.IntN(10) != c2.IntN(10) {
		t.Fatalf("IntN mismatch")
	}
	if c1.UintN(10) != c2.UintN(10) {
		t.Fatalf("UintN mismatch")
	}
}

func TestPCG32Determinism(t *testing.T) {
	c1 := New(NewPCG32WithSeed(13))
	c2 := New(NewPCG32WithSeed(13))
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
}

func TestIntNUintNEdgeCases(t *testing.T) {
	c := New(NewPCG64WithSeed(1))
	if got := c.IntN(0); got != -1 {
		t.Fatalf("IntN(0) = %d, want -1", got)
	}
	if got := c.IntN(-5); got != -1 {
		t.Fatalf("IntN(-5) = %d, want -1", got)
	}
	if got := c.UintN(0); got != 0 {
		t.Fatalf("UintN(0) = %d, want 0", got)
	}
}

func TestUintNBounded(t *testing.T) {
	c := New(NewPCG64WithSeed(3))
	for i := 0; i < 10000; i++ {
		v := c.UintN(37)
		if v >= 37 {
			t.Fatalf("UintN(37) returned %d, out of range", v)
		}
	}
}

func TestFloat64Range(t *testing.T) {
	c := New(NewPCG64WithSeed(5))
	for i := 0; i < 10000; i++ {
		f := c.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of [0,1): %v", f)
		}
	}
}

func TestExpFloat64Deterministic(t *testing.T) {
	c1 := New(NewPCG64WithSeed(11))
	c2 := New(NewPCG64WithSeed(11))
	v1 := c1.ExpFloat64()
	v2 := c2.ExpFloat64()
	if v1 != v2 {
		t.Fatalf("expected deterministic ExpFloat64")
	}
	if v1 <= 0 || math.IsNaN(v1) || math.IsInf(v1, 0) {
		t.Fatalf("unexpected ExpFloat64 value: %v", v1)
	}
}

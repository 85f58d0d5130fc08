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
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/zintix-labs/dwsampler/rng"
)

// -----------------------------------------------------------------------------
// Helper functions
// -----------------------------------------------------------------------------

// checkDistribution verifies that empirical sample counts track the given
// weights within tolerance.
func checkDistribution(t *testing.T, name string, weights map[int]float64, counts map[int]int, totalSamples int, tolerance float64) {
	t.Helper()
	var totalW float64
	for _, w := range weights {
		totalW += w
	}
	if totalW == 0 {
		return
	}
	for i, w := range weights {
		if w == 0 {
			if counts[i] > 0 {
				t.Errorf("[%s] expected 0 samples for index %d (weight 0), got %d", name, i, counts[i])
			}
			continue
		}
		expected := w / totalW
		actual := float64(counts[i]) / float64(totalSamples)
		if diff := math.Abs(expected - actual); diff > tolerance {
			t.Errorf("[%s] index %d: expected prob %.4f, got %.4f (diff %.4f > tol %.4f)", name, i, expected, actual, diff, tolerance)
		}
	}
}

func mustNew(t *testing.T, v Variant, n int) *Sampler {
	t.Helper()
	s, err := New(v, n)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Basic façade behavior
// -----------------------------------------------------------------------------

func TestGetSetRoundTrip(t *testing.T) {
	s := mustNew(t, Resizable, 4)
	if err := s.Set(1, 3.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 3.5 {
		t.Fatalf("Get after Set(1, 3.5) = %v, want bit-exact 3.5", got)
	}
	if err := s.Set(1, 0); err != nil {
		t.Fatalf("Set(1,0): %v", err)
	}
	got, _ = s.Get(1)
	if got != 0 {
		t.Fatalf("Get after Set(1,0) = %v, want 0", got)
	}
	got, _ = s.Get(2)
	if got != 0 {
		t.Fatalf("Get on never-set index = %v, want 0", got)
	}
	if err := Verify(s); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestOutOfBounds(t *testing.T) {
	s := mustNew(t, Resizable, 2)
	if err := s.Set(0, 1); err == nil {
		t.Fatal("Set(0, ...) should be out of bounds")
	}
	if err := s.Set(3, 1); err == nil {
		t.Fatal("Set(3, ...) should be out of bounds on a length-2 sampler")
	}
	if _, err := s.Get(3); err == nil {
		t.Fatal("Get(3) should be out of bounds on a length-2 sampler")
	}
}

func TestInvalidWeightRejected(t *testing.T) {
	s := mustNew(t, Resizable, 1)
	cases := []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1), math.SmallestNonzeroFloat64}
	for _, w := range cases {
		if err := s.Set(1, w); err == nil {
			t.Errorf("Set(1, %v) should be rejected as an invalid weight", w)
		}
	}
	if got, _ := s.Get(1); got != 0 {
		t.Fatalf("a rejected Set must not mutate state, got weight %v", got)
	}
}

func TestRemoveRequiresActiveWeight(t *testing.T) {
	s := mustNew(t, Resizable, 1)
	if err := s.Remove(1); err == nil {
		t.Fatal("Remove on an index with no active weight should error")
	}
	if err := s.Set(1, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got, _ := s.Get(1); got != 0 {
		t.Fatalf("Get after Remove = %v, want 0", got)
	}
}

func TestVariantResizePolicies(t *testing.T) {
	fixed := mustNew(t, Fixed, 3)
	if err := fixed.Resize(4); err == nil {
		t.Fatal("Fixed sampler should reject Resize")
	}

	semi := mustNew(t, Semi, 3)
	if err := semi.Resize(3); err != nil {
		t.Fatalf("Semi resize within capacity should succeed: %v", err)
	}
	if err := semi.Resize(10); err == nil {
		t.Fatal("Semi sampler should reject growth past its initial capacity")
	}

	resizable := mustNew(t, Resizable, 3)
	if err := resizable.Resize(1000); err != nil {
		t.Fatalf("Resizable sampler should accept arbitrary growth: %v", err)
	}
	if err := resizable.Resize(1); err != nil {
		t.Fatalf("Resizable sampler should accept shrinking: %v", err)
	}
}

func TestInsertAutoGrows(t *testing.T) {
	s := mustNew(t, Resizable, 1)
	if err := s.Insert(5, 2); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if s.Len() != 5 {
		t.Fatalf("Len after Insert(5, ...) = %d, want 5", s.Len())
	}
	got, _ := s.Get(5)
	if got != 2 {
		t.Fatalf("Get(5) = %v, want 2", got)
	}
}

func TestInsertMany(t *testing.T) {
	s := mustNew(t, Resizable, 1)
	if err := s.InsertMany([]int{1, 2, 3}, []float64{1, 2, 3}); err != nil {
		t.Fatalf("InsertMany: %v", err)
	}
	for i, want := range []float64{1, 2, 3} {
		got, _ := s.Get(i + 1)
		if got != want {
			t.Fatalf("Get(%d) = %v, want %v", i+1, got, want)
		}
	}
	if err := Verify(s); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestSampleOnEmptyErrors(t *testing.T) {
	s := mustNew(t, Resizable, 3)
	src := rng.NewPCG64WithSeed(1)
	if _, err := s.Sample(src); err == nil {
		t.Fatal("Sample on an all-zero sampler should error")
	}
}

// -----------------------------------------------------------------------------
// Concrete scenarios
// -----------------------------------------------------------------------------

func TestScenarioDeterministicSurvivor(t *testing.T) {
	s := mustNew(t, Resizable, 3)
	_ = s.Set(1, 1)
	_ = s.Set(2, 2)
	_ = s.Set(3, 4)
	_ = s.Set(1, 0)
	_ = s.Set(2, 0)

	src := rng.NewPCG64WithSeed(42)
	for i := 0; i < 100; i++ {
		got, err := s.Sample(src)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if got != 3 {
			t.Fatalf("Sample = %d, want 3 with probability 1", got)
		}
	}
}

func TestScenarioPowersOfTwo(t *testing.T) {
	s := mustNew(t, Resizable, 65)
	for i := 1; i <= 65; i++ {
		if err := s.Set(i, math.Pow(2, float64(i))); err != nil {
			t.Fatalf("Set(%d, 2^%d): %v", i, i, err)
		}
	}
	_ = s.Set(65, 0)
	_ = s.Set(65, 1.0)
	_ = s.Set(64, 0)
	if err := Verify(s); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	src := rng.NewPCG64WithSeed(7)
	for i := 0; i < 5000; i++ {
		got, err := s.Sample(src)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if got == 64 || got == 65 {
			t.Fatalf("Sample returned %d: index 64 has weight 0 and index 65's weight 1 is negligible next to the total", got)
		}
	}
}

func TestScenarioHugeSwings(t *testing.T) {
	s := mustNew(t, Resizable, 2)
	src := rng.NewPCG64WithSeed(3)

	_ = s.Set(1, 1e-300)
	if got, _ := s.Sample(src); got != 1 {
		t.Fatalf("Sample = %d, want 1", got)
	}
	_ = s.Set(2, 1e300)
	if got, _ := s.Sample(src); got != 2 {
		t.Fatalf("Sample = %d, want 2", got)
	}
	_ = s.Set(2, 0)
	if got, _ := s.Sample(src); got != 1 {
		t.Fatalf("Sample = %d, want 1", got)
	}
	if err := Verify(s); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestScenarioReinsertAfterClear(t *testing.T) {
	s := mustNew(t, Resizable, 2)
	_ = s.Set(2, 1e308)
	_ = s.Set(2, 0)
	_ = s.Set(2, 1e308)

	src := rng.NewPCG64WithSeed(9)
	if got, err := s.Sample(src); err != nil || got != 2 {
		t.Fatalf("Sample = (%d, %v), want (2, nil)", got, err)
	}
}

func TestScenarioStress(t *testing.T) {
	const n = 1500
	const rounds = 25000
	s := mustNew(t, Resizable, n)
	src := rng.New(rng.NewPCG64WithSeed(123))

	for i := 1; i <= n; i++ {
		if err := s.Set(i, 0.1); err != nil {
			t.Fatalf("Set(%d, 0.1): %v", i, err)
		}
	}
	if err := Verify(s); err != nil {
		t.Fatalf("Verify after initial fill: %v", err)
	}

	for round := 0; round < rounds; round++ {
		j, err := s.Sample(src)
		if err != nil {
			t.Fatalf("round %d: Sample: %v", round, err)
		}
		w := math.Exp(8 * (src.ExpFloat64() - src.ExpFloat64()))
		if err := s.Set(j, w); err != nil {
			t.Fatalf("round %d: Set(%d, %v): %v", round, j, w, err)
		}
		if err := Verify(s); err != nil {
			t.Fatalf("round %d: Verify: %v", round, err)
		}
	}
}

// TestScenarioSingleBucketOverflow drives one exponent bucket's
// significand sum far past 2^64 with tens of thousands of same-exponent
// weights, alongside a few indices in other buckets so the sampler's
// total never drops below 2^32 and the delete-path self-heal can't mask
// a corrupted level. Before the per-level overflow guard's off-by-one
// fix, a shifted significand sum landing exactly on the 64-bit boundary
// slipped past the guard, and the heavy bucket's level weight was
// recorded as the wrapped low64 value instead of being caught and
// retargeted — leaving every index in that bucket permanently
// under-sampled relative to the untouched light indices.
func TestScenarioSingleBucketOverflow(t *testing.T) {
	const heavyN = 65536
	const lightN = 4
	const n = heavyN + lightN
	s := mustNew(t, Resizable, n)

	for i := 1; i <= heavyN; i++ {
		if err := s.Set(i, 1.0); err != nil {
			t.Fatalf("Set(%d, 1.0): %v", i, err)
		}
	}
	lightWeights := []float64{0.5, 0.25, 0.125, 0.0625}
	for j, w := range lightWeights {
		if err := s.Set(heavyN+1+j, w); err != nil {
			t.Fatalf("Set(%d, %v): %v", heavyN+1+j, w, err)
		}
	}

	if err := Verify(s); err != nil {
		t.Fatalf("Verify after filling the heavy bucket: %v", err)
	}

	src := rng.New(rng.NewPCG64WithSeed(42))
	const trials = 200000
	heavyHits := 0
	for i := 0; i < trials; i++ {
		got, err := s.Sample(src)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if got <= heavyN {
			heavyHits++
		}
	}

	// The heavy bucket's true weight (heavyN) outweighs the light
	// indices' combined weight (< 1) by several orders of magnitude, so
	// nearly every draw should land there. A corrupted (wrapped) heavy
	// level weight would instead hand the light indices most or all of
	// the draws.
	frac := float64(heavyHits) / float64(trials)
	if frac < 0.95 {
		t.Fatalf("heavy bucket under-sampled: got fraction %.4f of draws, want > 0.95 (heavy weight %d vs light weight %.4f)",
			frac, heavyN, 0.5+0.25+0.125+0.0625)
	}
}

// -----------------------------------------------------------------------------
// Distributional properties
// -----------------------------------------------------------------------------

func TestSampleDistributionMatchesWeights(t *testing.T) {
	s := mustNew(t, Resizable, 4)
	weights := map[int]float64{1: 10, 2: 20, 3: 30, 4: 40}
	for i, w := range weights {
		if err := s.Set(i, w); err != nil {
			t.Fatalf("Set(%d, %v): %v", i, w, err)
		}
	}

	src := rng.NewPCG64WithSeed(11)
	const trials = 200000
	counts := make(map[int]int)
	for i := 0; i < trials; i++ {
		got, err := s.Sample(src)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		counts[got]++
	}
	checkDistribution(t, "linear weights", weights, counts, trials, 0.01)
}

func TestChiSquareGoodnessOfFit(t *testing.T) {
	const n = 100
	s := mustNew(t, Resizable, n)
	weights := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		weights[i] = float64(i)
		if err := s.Set(i, weights[i]); err != nil {
			t.Fatalf("Set(%d, %v): %v", i, weights[i], err)
		}
	}

	src := rng.NewPCG64WithSeed(99)
	const trials = 100000
	observed := make([]float64, n+1)
	for i := 0; i < trials; i++ {
		got, err := s.Sample(src)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		observed[got]++
	}

	var totalW float64
	for i := 1; i <= n; i++ {
		totalW += weights[i]
	}
	expected := make([]float64, n)
	obs := make([]float64, n)
	for i := 1; i <= n; i++ {
		expected[i-1] = weights[i] / totalW * trials
		obs[i-1] = observed[i]
	}

	chi2 := stat.ChiSquare(obs, expected)
	dist := distuv.ChiSquared{K: float64(n - 1)}
	pValue := dist.Survival(chi2)
	if pValue <= 0.002 {
		t.Fatalf("chi-square p-value %.6f <= 0.002 (statistic %.3f, df %d)", pValue, chi2, n-1)
	}
}

// -----------------------------------------------------------------------------
// Determinism
// -----------------------------------------------------------------------------

func TestDeterministicGivenSameSeed(t *testing.T) {
	build := func() *Sampler {
		s := mustNew(t, Resizable, 10)
		for i := 1; i <= 10; i++ {
			_ = s.Set(i, float64(i))
		}
		return s
	}

	s1, s2 := build(), build()
	src1 := rng.NewPCG64WithSeed(555)
	src2 := rng.NewPCG64WithSeed(555)

	for i := 0; i < 1000; i++ {
		g1, err1 := s1.Sample(src1)
		g2, err2 := s2.Sample(src2)
		if err1 != nil || err2 != nil {
			t.Fatalf("Sample errors: %v, %v", err1, err2)
		}
		if g1 != g2 {
			t.Fatalf("sample %d diverged: %d != %d", i, g1, g2)
		}
	}
}

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

package stats_test

import (
	"math"
	"testing"

	"github.com/zintix-labs/dwsampler/stats"
)

func TestChiSquareGoodnessOfFitAcceptsExactDraws(t *testing.T) {
	weights := []float64{1, 2, 3, 4}
	// Draws exactly proportional to weight (total=100 at 10x scale).
	counts := []int64{10, 20, 30, 40}

	got := stats.ChiSquareGoodnessOfFit(counts, weights)
	if got.Statistic > 1e-9 {
		t.Fatalf("statistic = %v, want ~0 for an exact match", got.Statistic)
	}
	if got.PValue < 0.99 {
		t.Fatalf("p-value = %v, want close to 1 for an exact match", got.PValue)
	}
}

func TestChiSquareGoodnessOfFitFlagsSkew(t *testing.T) {
	weights := []float64{1, 1, 1, 1}
	// All draws landed on index 0: badly inconsistent with equal weights.
	counts := []int64{400, 0, 0, 0}

	got := stats.ChiSquareGoodnessOfFit(counts, weights)
	if got.PValue > 0.01 {
		t.Fatalf("p-value = %v, want small for a heavily skewed sample", got.PValue)
	}
}

func TestChiSquareGoodnessOfFitSkipsZeroWeightIndices(t *testing.T) {
	weights := []float64{1, 0, 1}
	counts := []int64{50, 0, 50}

	got := stats.ChiSquareGoodnessOfFit(counts, weights)
	if got.DF != 1 {
		t.Fatalf("DF = %d, want 1 (the zero-weight index contributes no bin)", got.DF)
	}
}

func TestQuantilesOfMonotonic(t *testing.T) {
	data := make([]float64, 1000)
	for i := range data {
		data[i] = float64(i)
	}
	q := stats.QuantilesOf(data)
	if q.P10.Hat > q.Median.Hat || q.Median.Hat > q.P90.Hat || q.P90.Hat > q.P99.Hat {
		t.Fatalf("quantiles not monotonic: %+v", q)
	}
	if q.Median.CI.Lo > q.Median.Hat || q.Median.CI.Hi < q.Median.Hat {
		t.Fatalf("median %v not inside its own CI %+v", q.Median.Hat, q.Median.CI)
	}
}

func TestDrawProportionCIContainsEstimate(t *testing.T) {
	hat, ci := stats.DrawProportionCI(250, 1000)
	if hat != 0.25 {
		t.Fatalf("hat = %v, want 0.25", hat)
	}
	if ci.Lo > hat || ci.Hi < hat {
		t.Fatalf("CI %+v does not contain hat %v", ci, hat)
	}
}

func TestWeightBucketsIndexOrdering(t *testing.T) {
	b := stats.DefaultWeightBuckets
	if got := b.Index(0); got != 0 {
		t.Fatalf("Index(0) = %d, want 0", got)
	}
	if b.Index(0.5) >= b.Index(5) {
		t.Fatalf("Index not monotonic across decades: Index(0.5)=%d Index(5)=%d", b.Index(0.5), b.Index(5))
	}
	if b.Index(5) >= b.Index(500) {
		t.Fatalf("Index not monotonic across decades: Index(5)=%d Index(500)=%d", b.Index(5), b.Index(500))
	}
}

func TestWeightBucketsHistogramSumsWeights(t *testing.T) {
	b := stats.DefaultWeightBuckets
	weights := []float64{0, 0.5, 5, 5, 50000}
	counts, sums := b.Histogram(weights)

	total := 0.0
	for _, s := range sums {
		total += s
	}
	if math.Abs(total-55005.5) > 1e-9 {
		t.Fatalf("histogram sums total %v, want 55005.5", total)
	}
	n := 0
	for _, c := range counts {
		n += c
	}
	if n != len(weights) {
		t.Fatalf("histogram counts total %d, want %d", n, len(weights))
	}
}

func TestReportDoneIsIdempotent(t *testing.T) {
	r := &stats.Report{
		Name:        "test",
		Len:         4,
		NonZero:     4,
		TotalWeight: 10,
		Samples:     100,
		Counts:      []int64{10, 20, 30, 40},
		Weights:     []float64{1, 2, 3, 4},
	}
	r.Done()
	first := r.ChiSquare.PValue
	r.Done()
	if r.ChiSquare.PValue != first {
		t.Fatalf("Done recomputed on a second call")
	}
}

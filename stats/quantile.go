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

package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// WeightQuantile summarizes the spread of a sampler's weight distribution
// at a handful of fixed points, each reported with a 95% confidence
// interval on the order statistic.
type WeightQuantile struct {
	P10    PointStat `json:"P10"`
	Median PointStat `json:"Median"`
	P90    PointStat `json:"P90"`
	P99    PointStat `json:"P99"`
}

// PointStat is a point estimate plus a confidence interval around it.
type PointStat struct {
	Hat float64 `json:"Hat"`
	CI  CI      `json:"CI"`
}

// QuantilesOf computes fixed-point quantiles (with 95% CIs) over data,
// which is typically either the live weight set or the per-index draw
// counts of a completed sampling run.
func QuantilesOf(data []float64) *WeightQuantile {
	const confidence = 0.95
	q := func(p float64) PointStat {
		hat := quantilePoint(data, p)
		lo, hi := quantileCI(data, p, confidence)
		return PointStat{Hat: hat, CI: CI{Lo: lo, Hi: hi}}
	}
	return &WeightQuantile{
		P10:    q(0.10),
		Median: q(0.50),
		P90:    q(0.90),
		P99:    q(0.99),
	}
}

// DrawProportionCI reports the observed draw proportion for one index,
// with its Clopper-Pearson 95% confidence interval, out of samples total
// draws across the whole sampler.
func DrawProportionCI(count, samples int) (float64, CI) {
	return proportionCICP(count, samples, 0.95)
}

// proportionCICP is the Clopper-Pearson exact confidence interval for a
// binomial proportion (k successes out of n trials).
func proportionCICP(k, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

// quantileCI brackets the q-th order statistic of data using the same
// binomial-to-Beta inversion as proportionCICP: treat the rank of the
// quantile as a binomial proportion, find its Clopper-Pearson bounds,
// then map those bounds back onto sorted data.
func quantileCI(data []float64, q, confidence float64) (float64, float64) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}
	cp := make([]float64, n)
	copy(cp, data)
	sort.Float64s(cp)

	alpha := 1 - confidence
	k := int(q * float64(n))
	if k < 1 {
		k = 1
	} else if k > n-1 {
		k = n - 1
	}

	bLo := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
	bHi := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
	pLo := bLo.Quantile(alpha / 2)
	pHi := bHi.Quantile(1 - alpha/2)

	li := int(pLo * float64(n))
	ui := int(pHi * float64(n))
	if ui > 0 {
		ui--
	}
	li = clampIdx(li, n)
	ui = clampIdx(ui, n)
	return cp[li], cp[ui]
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// quantilePoint returns the nearest-rank empirical quantile of data at q.
func quantilePoint(data []float64, q float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, data)
	sort.Float64s(cp)
	idx := clampIdx(int(q*float64(n)), n)
	return cp[idx]
}

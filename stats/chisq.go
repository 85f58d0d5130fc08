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
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareTest is a goodness-of-fit result: do observed draw counts match
// the counts expected from the sampler's weights?
type ChiSquareTest struct {
	Statistic float64 `json:"Statistic"`
	DF        int     `json:"DF"`
	PValue    float64 `json:"PValue"`
}

// ChiSquareGoodnessOfFit compares observed draw counts against the counts
// expected under the weights that produced them, pooling any index whose
// expected count falls below 5 into a single catch-all bin so the
// chi-squared approximation stays valid.
//
// len(counts) must equal len(weights); entries with zero weight are
// skipped since they cannot be drawn and contribute nothing to either
// side of the comparison.
func ChiSquareGoodnessOfFit(counts []int64, weights []float64) ChiSquareTest {
	n := int64(0)
	total := 0.0
	for i, c := range counts {
		n += c
		total += weights[i]
	}
	if total <= 0 || n == 0 {
		return ChiSquareTest{}
	}

	const minExpected = 5.0
	var obs, exp []float64
	var pooledObs, pooledExp float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		e := w / total * float64(n)
		o := float64(counts[i])
		if e < minExpected {
			pooledObs += o
			pooledExp += e
			continue
		}
		obs = append(obs, o)
		exp = append(exp, e)
	}
	if pooledExp > 0 {
		obs = append(obs, pooledObs)
		exp = append(exp, pooledExp)
	}
	if len(obs) < 2 {
		return ChiSquareTest{}
	}

	statVal := stat.ChiSquare(obs, exp)
	df := len(obs) - 1
	dist := distuv.ChiSquared{K: float64(df)}
	pValue := 1 - dist.CDF(statVal)

	return ChiSquareTest{Statistic: statVal, DF: df, PValue: pValue}
}

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

// Command dwbench drives a pool of independently-owned samplers through a
// mutate-and-resample stress loop, then checks that one sampler's draws
// stay consistent with its weights under a chi-squared goodness-of-fit
// test, reporting throughput and the test result to the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/zintix-labs/dwsampler"
	"github.com/zintix-labs/dwsampler/benchpool"
	"github.com/zintix-labs/dwsampler/render"
	"github.com/zintix-labs/dwsampler/rng"
	"github.com/zintix-labs/dwsampler/sdk/perf"
	"github.com/zintix-labs/dwsampler/sdk/sampler"
	"github.com/zintix-labs/dwsampler/stats"
)

func main() {
	n := flag.Int("n", 1500, "sampler length")
	workers := flag.Int("workers", 8, "number of independent samplers to run concurrently")
	rounds := flag.Int("rounds", 25000, "mutate-resample rounds per worker")
	samples := flag.Int("samples", 100000, "draws taken for the chi-squared check")
	seed := flag.Int64("seed", 1, "base seed for per-worker RNG derivation")
	pprofMode := flag.String("pprof", "", "profile the stress loop: cpu, heap, allocs, or empty to disable")
	flag.Parse()

	perf.RunPProf(func() { run(*n, *workers, *rounds, *samples, *seed) }, *pprofMode)
}

func run(n, workers, rounds, samples int, seed int64) {
	pool, err := benchpool.New(workers, seed, func(workerID int, s int64) (*dwsampler.Sampler, error) {
		samp, err := dwsampler.New(dwsampler.Resizable, n)
		if err != nil {
			return nil, err
		}
		src := rng.New(rng.NewPCG64WithSeed(s))
		for i := 1; i <= n; i++ {
			if err := samp.Set(i, src.ExpFloat64()); err != nil {
				return nil, err
			}
		}
		return samp, nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "dwbench:", err)
		os.Exit(1)
	}

	bar := pb.StartNew(workers * rounds)
	start := time.Now()
	err = pool.Run(context.Background(), rounds, func(s *dwsampler.Sampler, src *rng.Core) error {
		i := 1 + src.IntN(s.Len())
		if _, sampleErr := s.Sample(src); sampleErr != nil {
			return sampleErr
		}
		if err := s.Set(i, src.ExpFloat64()); err != nil {
			return err
		}
		bar.Increment()
		return nil
	})
	bar.Finish()
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dwbench: stress loop failed:", err)
		os.Exit(1)
	}

	m := pool.Metrics()
	fmt.Println(render.Table("stress loop", []string{"workers", "completed", "failed", "panics", "rebuilds"}, map[string]string{
		"workers":   fmt.Sprintf("%d", m.Workers),
		"completed": fmt.Sprintf("%d", m.Completed),
		"failed":    fmt.Sprintf("%d", m.Failed),
		"panics":    fmt.Sprintf("%d", m.Panics),
		"rebuilds":  fmt.Sprintf("%d", m.Rebuilds),
	}))
	fmt.Printf("elapsed: %s, %.0f rounds/sec\n\n", elapsed, float64(m.Completed)/elapsed.Seconds())

	runChiSquareCheck(pool.Sampler(0), samples)
	runBaselineComparison(n, samples)
}

func runChiSquareCheck(s *dwsampler.Sampler, samples int) {
	n := s.Len()
	weights := make([]float64, n)
	for i := 1; i <= n; i++ {
		w, _ := s.Get(i)
		weights[i-1] = w
	}

	counts := make([]int64, n)
	src := rng.New(rng.NewPCG64())
	sampleBar := pb.StartNew(samples)
	for j := 0; j < samples; j++ {
		i, err := s.Sample(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, "dwbench: sample failed:", err)
			os.Exit(1)
		}
		counts[i-1]++
		sampleBar.Increment()
	}
	sampleBar.Finish()

	report := &stats.Report{
		Name:        "chi-squared goodness of fit",
		Len:         n,
		TotalWeight: sumWeights(weights),
		Samples:     samples,
		Counts:      counts,
		Weights:     weights,
	}
	for _, w := range weights {
		if w > 0 {
			report.NonZero++
		}
	}
	report.Done()

	ok := report.ChiSquare != nil && report.ChiSquare.PValue > 0.002
	fmt.Println(render.PassFail("chi-squared goodness of fit", ok))
	if report.ChiSquare != nil {
		fmt.Printf("  statistic=%.4f df=%d p-value=%.6f\n", report.ChiSquare.Statistic, report.ChiSquare.DF, report.ChiSquare.PValue)
	}

	bucketCounts, bucketSums := stats.DefaultWeightBuckets.Histogram(weights)
	fmt.Println()
	fmt.Println(render.Histogram(stats.DefaultWeightBuckets.Labels(), bucketCounts, 40))
	for i, label := range stats.DefaultWeightBuckets.Labels() {
		if bucketCounts[i] > 0 {
			fmt.Printf("  %s: %d indices, weight sum %.4g\n", label, bucketCounts[i], bucketSums[i])
		}
	}
}

func sumWeights(ws []float64) float64 {
	total := 0.0
	for _, w := range ws {
		total += w
	}
	return total
}

func runBaselineComparison(n, samples int) {
	fmt.Println("\n=== baseline comparators (integer-weight, rebuild-on-change) ===")
	weights := make([]int, n)
	src := rng.New(rng.NewPCG64())
	for i := range weights {
		weights[i] = 1 + src.IntN(1000)
	}

	buildStart := time.Now()
	at := sampler.BuildAliasTable(weights)
	buildElapsed := time.Since(buildStart)

	drawStart := time.Now()
	for j := 0; j < samples; j++ {
		_ = at.Pick(src)
	}
	drawElapsed := time.Since(drawStart)

	fmt.Println(render.Table("alias table", []string{"build", "draws/sec"}, map[string]string{
		"build":     buildElapsed.String(),
		"draws/sec": fmt.Sprintf("%.0f", float64(samples)/drawElapsed.Seconds()),
	}))
}

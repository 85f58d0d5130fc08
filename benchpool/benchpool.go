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

// Package benchpool runs a dynamic weighted discrete sampler's mutate/
// sample workload concurrently across many independently-owned samplers,
// to measure wall-clock throughput.
//
// A Sampler is not internally thread-safe and is not meant to be shared
// across goroutines. benchpool never does that: each worker owns exactly
// one *dwsampler.Sampler for its entire lifetime and drives it from a
// single goroutine. Concurrency here comes from running N such workers
// side by side, not from sharing state between them.
package benchpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/dwsampler"
	"github.com/zintix-labs/dwsampler/rng"
)

// Factory builds a fresh sampler for a worker, seeded independently so
// concurrent workers never share RNG state either.
type Factory func(workerID int, seed int64) (*dwsampler.Sampler, error)

// Workload is one unit of work a worker repeats against its own sampler
// and RNG. A non-nil error is treated as non-fatal (counted, logged by the
// caller if it wants to); a panic is treated as the sampler's internal
// state becoming untrustworthy and triggers a rebuild.
type Workload func(s *dwsampler.Sampler, src *rng.Core) error

// Pool runs Workload across n independently-owned samplers.
type Pool struct {
	factory Factory
	workers []*worker

	rebuilds  atomic.Int64
	panics    atomic.Int64
	failed    atomic.Int64
	completed atomic.Int64
}

type worker struct {
	id      int
	seed    int64
	sampler *dwsampler.Sampler
	src     *rng.Core
	mu      sync.Mutex
}

// New creates a pool of n workers (n forced to at least 1), each built by
// factory with a seed derived from baseSeed so a run is reproducible given
// the same baseSeed and n.
func New(n int, baseSeed int64, factory Factory) (*Pool, error) {
	n = max(1, n)
	p := &Pool{factory: factory}
	for i := 0; i < n; i++ {
		seed := deriveSeed(baseSeed, i)
		s, err := factory(i, seed)
		if err != nil {
			return nil, fmt.Errorf("benchpool: worker %d: %w", i, err)
		}
		p.workers = append(p.workers, &worker{id: i, seed: seed, sampler: s, src: rng.New(rng.NewPCG64WithSeed(seed))})
	}
	return p, nil
}

// deriveSeed turns a base seed and worker index into a distinct per-worker
// seed via splitmix64-style mixing, so workers never draw from the same
// stream even when baseSeed is shared.
func deriveSeed(base int64, idx int) int64 {
	x := uint64(base) + uint64(idx)*0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}

// Run drives every worker's Workload for rounds iterations, concurrently,
// one goroutine per worker. It blocks until every worker finishes its
// rounds or ctx is canceled. A workload panic rebuilds that worker's
// sampler from the pool's factory (fresh state, same seed) rather than
// taking the whole pool down.
func (p *Pool) Run(ctx context.Context, rounds int, work Workload) error {
	var wg sync.WaitGroup
	wg.Add(len(p.workers))
	for _, w := range p.workers {
		go func(w *worker) {
			defer wg.Done()
			p.runWorker(ctx, w, rounds, work)
		}(w)
	}
	wg.Wait()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func (p *Pool) runWorker(ctx context.Context, w *worker, rounds int, work Workload) {
	for round := 0; round < rounds; round++ {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if p.runOnce(w, work) {
			p.completed.Add(1)
		}
	}
}

// runOnce runs one workload iteration under panic recovery, reporting
// whether it completed without error.
func (p *Pool) runOnce(w *worker, work Workload) (ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			rebuilt, err := p.factory(w.id, w.seed)
			if err != nil {
				ok = false
				return
			}
			w.sampler = rebuilt
			w.src = rng.New(rng.NewPCG64WithSeed(w.seed))
			p.rebuilds.Add(1)
			ok = false
		}
	}()

	if err := work(w.sampler, w.src); err != nil {
		p.failed.Add(1)
		return false
	}
	return true
}

// Metrics is a pull-style observability snapshot: no metrics SDK is
// bound here, the caller decides how to log or export these counts.
type Metrics struct {
	Workers   int   `json:"workers"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Panics    int64 `json:"panics"`
	Rebuilds  int64 `json:"rebuilds"`
}

func (p *Pool) Metrics() Metrics {
	return Metrics{
		Workers:   len(p.workers),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		Panics:    p.panics.Load(),
		Rebuilds:  p.rebuilds.Load(),
	}
}

// Sampler returns worker i's current sampler, for post-run inspection
// (e.g. dwsampler.Verify). Not safe to call concurrently with Run.
func (p *Pool) Sampler(i int) *dwsampler.Sampler {
	return p.workers[i].sampler
}

// Len returns the number of workers in the pool.
func (p *Pool) Len() int { return len(p.workers) }

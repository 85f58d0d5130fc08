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

package benchpool

import (
	"context"
	"errors"
	"testing"

	"github.com/zintix-labs/dwsampler"
	"github.com/zintix-labs/dwsampler/rng"
)

func newTestSampler(workerID int, seed int64) (*dwsampler.Sampler, error) {
	s, err := dwsampler.New(dwsampler.Resizable, 8)
	if err != nil {
		return nil, err
	}
	for i := 1; i <= 8; i++ {
		if err := s.Set(i, float64(i)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func TestPoolRunsEveryWorkerIndependently(t *testing.T) {
	p, err := New(4, 1, newTestSampler)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const rounds = 50
	err = p.Run(context.Background(), rounds, func(s *dwsampler.Sampler, src *rng.Core) error {
		_, sampleErr := s.Sample(src)
		return sampleErr
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	m := p.Metrics()
	if m.Workers != 4 {
		t.Fatalf("Workers = %d, want 4", m.Workers)
	}
	if m.Completed != int64(4*rounds) {
		t.Fatalf("Completed = %d, want %d", m.Completed, 4*rounds)
	}
	if m.Panics != 0 || m.Rebuilds != 0 {
		t.Fatalf("unexpected panics=%d rebuilds=%d on a healthy workload", m.Panics, m.Rebuilds)
	}
}

func TestPoolRebuildsAfterWorkloadPanic(t *testing.T) {
	p, err := New(1, 2, newTestSampler)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	calls := 0
	err = p.Run(context.Background(), 3, func(s *dwsampler.Sampler, src *rng.Core) error {
		calls++
		if calls == 2 {
			panic("simulated corruption")
		}
		_, sampleErr := s.Sample(src)
		return sampleErr
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	m := p.Metrics()
	if m.Panics != 1 {
		t.Fatalf("Panics = %d, want 1", m.Panics)
	}
	if m.Rebuilds != 1 {
		t.Fatalf("Rebuilds = %d, want 1", m.Rebuilds)
	}
	if m.Completed != 2 {
		t.Fatalf("Completed = %d, want 2 (the panicking round doesn't count)", m.Completed)
	}
}

func TestPoolDerivesDistinctSeedsPerWorker(t *testing.T) {
	seen := map[int64]bool{}
	_, err := New(8, 99, func(workerID int, seed int64) (*dwsampler.Sampler, error) {
		if seen[seed] {
			t.Fatalf("worker %d got a seed already used by another worker", workerID)
		}
		seen[seed] = true
		return newTestSampler(workerID, seed)
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
}

func TestPoolFactoryErrorPropagates(t *testing.T) {
	_, err := New(2, 0, func(workerID int, seed int64) (*dwsampler.Sampler, error) {
		return nil, errors.New("simulated factory failure")
	})
	if err == nil {
		t.Fatal("New should propagate a factory error")
	}
}

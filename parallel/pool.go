// Copyright 2025 go-qsim Authors
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

package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Parallel splits [0, n) into workerCount contiguous slices and runs each
// on its own goroutine, joining with an errgroup.Group. It generalizes
// go-highway's contrib/workerpool.Pool.ParallelFor (which uses a raw
// sync.WaitGroup over a persistent worker channel) with errgroup's
// structured join; unlike workerpool.Pool, a Parallel is stateless and
// spawns fresh goroutines per call, since kernels here run far less often
// (once per fused gate) than the per-row activation calls workerpool.Pool
// was built for.
type Parallel struct {
	workerCount int
}

// NewParallel returns a Loop with workerCount workers. If workerCount <= 0,
// it uses runtime.GOMAXPROCS(0), mirroring workerpool.New's default.
func NewParallel(workerCount int) Parallel {
	if workerCount <= 0 {
		workerCount = runtime.GOMAXPROCS(0)
	}
	return Parallel{workerCount: workerCount}
}

func (p Parallel) NumWorkers() int { return p.workerCount }

func (p Parallel) GetIndex0(n uint64, w int) uint64 {
	k0, _ := split(n, w, p.workerCount)
	return k0
}

func (p Parallel) GetIndex1(n uint64, w int) uint64 {
	_, k1 := split(n, w, p.workerCount)
	return k1
}

func (p Parallel) Run(n uint64, body func(workerID, workerCount int, i uint64)) {
	if n == 0 {
		return
	}
	if p.workerCount <= 1 {
		for i := uint64(0); i < n; i++ {
			body(0, 1, i)
		}
		return
	}

	var g errgroup.Group
	for w := 0; w < p.workerCount; w++ {
		w := w
		g.Go(func() error {
			k0, k1 := split(n, w, p.workerCount)
			for i := k0; i < k1; i++ {
				body(w, p.workerCount, i)
			}
			return nil
		})
	}
	_ = g.Wait() // worker bodies never return an error
}

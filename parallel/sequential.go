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

// Sequential runs every body invocation on the calling goroutine, with a
// single worker (worker_count = 1). Use it for small state spaces where
// thread hand-off would cost more than the kernel itself, and in tests
// where deterministic single-threaded execution matters.
type Sequential struct{}

// NewSequential returns a Loop that never spawns a goroutine.
func NewSequential() Sequential {
	return Sequential{}
}

func (Sequential) NumWorkers() int { return 1 }

func (Sequential) GetIndex0(n uint64, w int) uint64 { return 0 }

func (Sequential) GetIndex1(n uint64, w int) uint64 { return n }

func (Sequential) Run(n uint64, body func(workerID, workerCount int, i uint64)) {
	for i := uint64(0); i < n; i++ {
		body(0, 1, i)
	}
}

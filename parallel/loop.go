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

// Package parallel provides ParallelLoop, the abstraction every
// statevec kernel runs its index space through (spec.md §5): a bounded
// index space [0, n) split into contiguous per-worker slices. Two
// implementations are provided — Sequential and a thread-pool based Parallel
// — sharing the Loop contract, the way go-highway's contrib/workerpool.Pool
// and a plain sequential loop share the same calling convention.
package parallel

// Loop is the data-parallel primitive every statevec kernel is built on.
// Run calls body once per index in [0, n), split into one contiguous
// [GetIndex0(n, w), GetIndex1(n, w)) slice per worker w. Within a worker's
// slice, indices are visited in increasing order and body never runs
// concurrently with itself; across workers, bodies for disjoint slices may
// run concurrently, so body must only touch memory at or derived from its
// own index.
type Loop interface {
	// NumWorkers returns the worker count this Loop was constructed with.
	NumWorkers() int

	// GetIndex0 returns the first index of worker w's slice of [0, n).
	GetIndex0(n uint64, w int) uint64

	// GetIndex1 returns the end (exclusive) index of worker w's slice of [0, n).
	GetIndex1(n uint64, w int) uint64

	// Run calls body(workerID, workerCount, i) once for every i in [0, n),
	// blocking until every call has returned.
	Run(n uint64, body func(workerID, workerCount int, i uint64))
}

// split computes the static, contiguous [k0, k1) boundaries worker w owns
// when splitting [0, n) across workerCount workers as evenly as possible.
func split(n uint64, w, workerCount int) (uint64, uint64) {
	if workerCount <= 0 {
		return 0, n
	}
	k0 := n * uint64(w) / uint64(workerCount)
	k1 := n * uint64(w+1) / uint64(workerCount)
	return k0, k1
}

// RunReduce runs body over every index in [0, n) and combines the results
// into one value with combine, an associative operator. Per-worker partial
// results are combined independently (spec.md §5: "deterministic only up to
// floating-point associativity"), then folded together in worker order.
//
// RunReduce is a free function rather than a Loop method because Go forbids
// generic methods on interface types: Loop stays a plain interface, and any
// caller can build a typed reduction over it.
func RunReduce[T any](l Loop, n uint64, zero T, body func(workerID, workerCount int, i uint64) T, combine func(a, b T) T) T {
	partials := RunReduceP(l, n, zero, body, combine)
	total := zero
	for _, p := range partials {
		total = combine(total, p)
	}
	return total
}

// RunReduceP runs body over every index in [0, n) and returns one partial
// result per worker (length l.NumWorkers()), each the fold of that worker's
// slice under combine. This is the primitive spec.md §4.2's PartialNorms is
// built on.
func RunReduceP[T any](l Loop, n uint64, zero T, body func(workerID, workerCount int, i uint64) T, combine func(a, b T) T) []T {
	partials := make([]T, l.NumWorkers())
	for i := range partials {
		partials[i] = zero
	}

	l.Run(n, func(workerID, workerCount int, i uint64) {
		partials[workerID] = combine(partials[workerID], body(workerID, workerCount, i))
	})

	return partials
}

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

// Package statevec owns the amplitude buffer and its kernels: the
// lane-interleaved state-vector storage (spec.md §3) and the data-parallel
// primitives that zero it, sample it, collapse it, and measure its norms.
//
// It follows go-highway's dispatch philosophy: a portable reference layout
// and a wide-lane layout share one contract (StateSpace[T]), and the active
// lane width is chosen once at init time, overridable via an environment
// variable for testing.
package statevec

// Float is the constraint on amplitude storage types: the simulator runs
// over either float32 (to fit more qubits in memory and widen SIMD lanes)
// or float64 (for numerically sensitive inner products).
type Float interface {
	~float32 | ~float64
}

// Buffer is the raw amplitude storage for a StateSpace: a contiguous,
// lane-interleaved array of 2*2^N (padded to a whole number of lane
// blocks) floating-point values. Buffer instances should only be created
// via StateSpace.NewBuffer.
type Buffer[T Float] []T

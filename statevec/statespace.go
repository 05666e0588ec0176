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

package statevec

import (
	"math"
	"unsafe"

	"github.com/go-qsim/qsim/parallel"
)

// maxQubits bounds numQubits well below the point where RawSize's
// 2*L*numBlocks or parallel's split's n*uint64(workerCount) could overflow:
// spec.md §1 targets "moderate (up to ~30-40 qubits)" workloads, and at
// N=40 even 2^23 workers couldn't overflow uint64 in split. Raising this
// bound requires overflow-safe arithmetic in RawSize and parallel.split.
const maxQubits = 40

// StateSpace describes the shape of an amplitude buffer for a fixed qubit
// count: its lane width (spec.md §3's L) and the Loop its kernels split
// work across. It holds no amplitude data itself — callers own one or more
// Buffer[T] values and pass them to every method, mirroring qsim's
// StateSpace/State split (lib/statespace.h).
type StateSpace[T Float] struct {
	numQubits int
	lanes     int
	loop      parallel.Loop
}

// New returns a StateSpace for numQubits qubits, whose kernels split work
// across loop. If loop is nil, a parallel.Sequential is used.
func New[T Float](numQubits int, loop parallel.Loop) (*StateSpace[T], error) {
	if numQubits <= 0 || numQubits > maxQubits {
		return nil, &InvalidQubitCountError{NumQubits: numQubits}
	}
	if loop == nil {
		loop = parallel.NewSequential()
	}
	return &StateSpace[T]{
		numQubits: numQubits,
		lanes:     LaneWidth[T](),
		loop:      loop,
	}, nil
}

func (ss *StateSpace[T]) NumQubits() int { return ss.numQubits }

// NumAmplitudes returns 2^NumQubits.
func (ss *StateSpace[T]) NumAmplitudes() uint64 { return uint64(1) << uint(ss.numQubits) }

// Lanes returns the lane width this StateSpace's buffers are interleaved by.
func (ss *StateSpace[T]) Lanes() int { return ss.lanes }

func (ss *StateSpace[T]) Loop() parallel.Loop { return ss.loop }

// RawSize returns the buffer length NewBuffer allocates: 2*L*numBlocks
// where numBlocks = ceil(NumAmplitudes/L), satisfying spec.md §3's
// max(2L, 2*2^N) floor automatically (numBlocks >= 1 whenever
// NumAmplitudes > 0).
func (ss *StateSpace[T]) RawSize() int {
	n := ss.NumAmplitudes()
	L := uint64(ss.lanes)
	numBlocks := (n + L - 1) / L
	return int(2 * L * numBlocks)
}

// NewBuffer allocates a zeroed amplitude buffer sized and aligned for ss.
func (ss *StateSpace[T]) NewBuffer() (Buffer[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	alignBytes := 2 * ss.lanes * elemSize
	buf, err := allocAligned[T](ss.RawSize(), alignBytes)
	if err != nil {
		return nil, err
	}
	ss.SetAllZeros(buf)
	return buf, nil
}

// checkSize returns a *SizeMismatchError if buf isn't sized for ss.
func (ss *StateSpace[T]) checkSize(op string, buf Buffer[T]) error {
	if want := ss.RawSize(); len(buf) != want {
		return &SizeMismatchError{Op: op, Got: len(buf), Want: want}
	}
	return nil
}

// SetAllZeros zeroes every amplitude of buf.
func (ss *StateSpace[T]) SetAllZeros(buf Buffer[T]) error {
	if err := ss.checkSize("SetAllZeros", buf); err != nil {
		return err
	}
	for i := range buf {
		buf[i] = 0
	}
	return nil
}

// SetZero sets buf to the computational basis state |00...0>.
func (ss *StateSpace[T]) SetZero(buf Buffer[T]) error {
	if err := ss.SetAllZeros(buf); err != nil {
		return err
	}
	ss.SetAmpl(buf, 0, complex(1, 0))
	return nil
}

// SetUniform sets buf to an equal-amplitude superposition of every
// computational basis state, normalized to unit norm.
func (ss *StateSpace[T]) SetUniform(buf Buffer[T]) error {
	if err := ss.checkSize("SetUniform", buf); err != nil {
		return err
	}
	n := ss.NumAmplitudes()
	amp := T(1.0 / math.Sqrt(float64(n)))
	ss.loop.Run(n, func(workerID, workerCount int, i uint64) {
		ss.SetAmpl(buf, i, complex(float64(amp), 0))
	})
	return nil
}

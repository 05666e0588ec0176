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

// Package simulator applies fused gates to an amplitude buffer in place.
// It holds no state of its own: every call takes the StateSpace and Buffer
// it operates on, the way run_qsim.h's ApplyFusedGate is a free function
// over an explicit state_space/state pair rather than a method on a
// stateful simulator object.
package simulator

import (
	"math/rand"

	"github.com/go-qsim/qsim/gate"
	"github.com/go-qsim/qsim/statevec"
)

// Simulator applies fused gates for a fixed numeric precision T. It carries
// no per-call state; NumQubits/lane width live on the StateSpace passed to
// Apply.
type Simulator[T statevec.Float] struct{}

// New returns a Simulator[T]. It is stateless, so the zero value works too;
// New exists for symmetry with the rest of the package constructors.
func New[T statevec.Float]() *Simulator[T] {
	return &Simulator[T]{}
}

// Apply applies fg to buf in place. For a unitary fused gate it multiplies
// the anchor and members' matrices into one effective operator (embedded
// onto the anchor's qubit subspace) and applies it block-by-block. For a
// measurement fused gate it samples an outcome, collapses buf onto it, and
// — if onMeasured is non-nil — reports the outcome's masked bits.
//
// rng is only consulted for measurement fused gates; pass nil for circuits
// with no measurements.
func (s *Simulator[T]) Apply(ss *statevec.StateSpace[T], buf statevec.Buffer[T], fg *gate.FusedGate, rng *rand.Rand, onMeasured func(fg *gate.FusedGate, outcome uint64)) error {
	if fg.IsMeasurement() {
		outcome, err := s.applyMeasurement(ss, buf, fg, rng)
		if err != nil {
			return err
		}
		if onMeasured != nil {
			onMeasured(fg, outcome)
		}
		return nil
	}
	return s.applyUnitary(ss, buf, fg)
}

func (s *Simulator[T]) applyUnitary(ss *statevec.StateSpace[T], buf statevec.Buffer[T], fg *gate.FusedGate) error {
	m, err := effectiveMatrix(fg)
	if err != nil {
		return err
	}
	applyLocalUnitary(ss, buf, fg.Qubits, m)
	return nil
}

func (s *Simulator[T]) applyMeasurement(ss *statevec.StateSpace[T], buf statevec.Buffer[T], fg *gate.FusedGate, rng *rand.Rand) (uint64, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	outcomes, err := ss.Sample(buf, 1, rng)
	if err != nil {
		return 0, err
	}
	mask := qubitsMask(fg.Qubits)
	bits := outcomes[0] & mask
	if err := ss.Collapse(buf, mask, bits); err != nil {
		return 0, err
	}
	return bits, nil
}

func qubitsMask(qubits []int) uint64 {
	var mask uint64
	for _, q := range qubits {
		mask |= uint64(1) << uint(q)
	}
	return mask
}

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

// Package gate defines the immutable input data model shared by the fuser,
// the simulator, and the runner: time-ordered unitary and measurement gates,
// and the fused gate groups the planner produces from them.
package gate

// Kind discriminates ordinary unitary gates from measurement.
type Kind int

const (
	// Unitary is an ordinary 1- or 2-qubit unitary gate.
	Unitary Kind = iota
	// Measurement marks a computational-basis measurement of one or more qubits.
	Measurement
)

func (k Kind) String() string {
	switch k {
	case Unitary:
		return "unitary"
	case Measurement:
		return "measurement"
	default:
		return "unknown"
	}
}

// MaxQubitsPerGate bounds the qubits a single unitary gate may act on.
// Measurement gates are exempt: they may name any number of qubits.
const MaxQubitsPerGate = 2

// Gate is an immutable, caller-owned unitary or measurement operation.
// Gate times must be non-decreasing across any sequence passed to the fuser.
type Gate struct {
	Kind Kind

	// Time is the (possibly non-contiguous) logical timestep this gate
	// occupies. Must be monotonically non-decreasing within a sequence.
	Time uint64

	// Qubits lists the qubit indices this gate acts on, in gate-defined
	// order. For unitary gates, len(Qubits) is 1 or 2. For measurement
	// gates, it may be any length >= 1.
	Qubits []int

	// Unfusible, when true, forces this single-qubit gate to anchor its
	// own fused gate rather than be absorbed into a neighboring anchor.
	// Ignored for 2-qubit and measurement gates.
	Unfusible bool

	// Matrix is the dense row-major unitary for a unitary gate: length 4
	// (2x2) for a 1-qubit gate, length 16 (4x4) for a 2-qubit gate. Nil
	// for measurement gates.
	Matrix []complex128
}

// NumQubits returns len(Qubits), the arity this specific gate was built with.
func (g *Gate) NumQubits() int {
	return len(g.Qubits)
}

// Validate checks the structural invariants spec.md places on a single gate,
// independent of its position in a sequence (time ordering is a property of
// the sequence, checked by the fuser instead).
func (g *Gate) Validate() error {
	switch g.Kind {
	case Measurement:
		if len(g.Qubits) == 0 {
			return &InvalidGateError{Gate: g, Reason: "measurement gate names no qubits"}
		}
	case Unitary:
		n := len(g.Qubits)
		if n < 1 || n > MaxQubitsPerGate {
			return &UnsupportedGateError{Gate: g, NumQubits: n}
		}
		wantLen := 1 << (2 * n) // 4 for 1 qubit, 16 for 2 qubits
		if len(g.Matrix) != wantLen {
			return &InvalidGateError{
				Gate:   g,
				Reason: "matrix length does not match qubit count",
			}
		}
	default:
		return &InvalidGateError{Gate: g, Reason: "unknown gate kind"}
	}
	return nil
}

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

package gate

// FusedGate is a group of gates the fuser has determined can be applied as
// one composite operation on Anchor's qubit subspace. Members hold only
// non-owning references (pointers) into the gate sequence the fuser was
// given; that sequence's backing slice must outlive the FusedGate.
type FusedGate struct {
	Kind      Kind
	Time      uint64
	NumQubits int
	Qubits    []int

	// Anchor is the gate whose qubit set defines this fused gate: the
	// 2-qubit gate, the unfusible 1-qubit gate, the first measurement at
	// its time, or the orphan 1-qubit gate.
	Anchor *Gate

	// Members lists every gate to be multiplied onto Anchor's qubit
	// subspace, in time order, Anchor included. The simulator multiplies
	// matrices left-to-right at apply time; fusion never premultiplies them.
	Members []*Gate
}

// IsMeasurement reports whether this fused gate is a (possibly merged)
// measurement rather than a unitary.
func (fg *FusedGate) IsMeasurement() bool {
	return fg.Kind == Measurement
}

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

package fuser

import (
	"testing"

	"github.com/go-qsim/qsim/diag"
	"github.com/go-qsim/qsim/gate"
)

func unitary1(t uint64, q int, unfusible bool) gate.Gate {
	return gate.Gate{Kind: gate.Unitary, Time: t, Qubits: []int{q}, Unfusible: unfusible, Matrix: make([]complex128, 4)}
}

func unitary2(t uint64, q0, q1 int) gate.Gate {
	return gate.Gate{Kind: gate.Unitary, Time: t, Qubits: []int{q0, q1}, Matrix: make([]complex128, 16)}
}

func measurement(t uint64, qubits ...int) gate.Gate {
	return gate.Gate{Kind: gate.Measurement, Time: t, Qubits: qubits}
}

func TestFuseEmptyInput(t *testing.T) {
	fused, err := Fuse(2, nil, nil, diag.Nop{})
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if len(fused) != 0 {
		t.Errorf("fused = %v, want empty", fused)
	}
}

// Scenario 3: a chain of fusible 1-qubit gates on qubit 0 followed by a
// CNOT should fuse into a single 2-qubit fused gate whose members are the
// three 1-qubit gates, then the CNOT anchor.
func TestFuseSingleQubitChainMergesIntoCNOT(t *testing.T) {
	gates := []gate.Gate{
		unitary1(0, 0, false),
		unitary1(1, 0, false),
		unitary1(2, 0, false),
		unitary2(3, 0, 1),
	}
	fused, err := Fuse(2, gates, nil, diag.Nop{})
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if len(fused) != 1 {
		t.Fatalf("len(fused) = %d, want 1", len(fused))
	}
	fg := fused[0]
	if fg.NumQubits != 2 || fg.Qubits[0] != 0 || fg.Qubits[1] != 1 {
		t.Errorf("fg.Qubits = %v, want [0 1]", fg.Qubits)
	}
	if fg.Anchor != &gates[3] {
		t.Errorf("fg.Anchor = %p, want the CNOT at index 3", fg.Anchor)
	}
	if len(fg.Members) != 4 {
		t.Fatalf("len(fg.Members) = %d, want 4", len(fg.Members))
	}
	for i := 0; i < 3; i++ {
		if fg.Members[i] != &gates[i] {
			t.Errorf("fg.Members[%d] = %p, want %p", i, fg.Members[i], &gates[i])
		}
	}
	if fg.Members[3] != &gates[3] {
		t.Errorf("fg.Members[3] should be the CNOT anchor")
	}
}

// Scenario 4: an unfusible gate in the middle of a 1-qubit chain anchors its
// own fused gate, absorbing the gate before it and the gate after it.
func TestFuseUnfusibleGateSplitsChain(t *testing.T) {
	gates := []gate.Gate{
		unitary1(0, 0, false),
		unitary1(1, 0, true),
		unitary1(2, 0, false),
	}
	fused, err := Fuse(1, gates, nil, diag.Nop{})
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if len(fused) != 1 {
		t.Fatalf("len(fused) = %d, want 1", len(fused))
	}
	fg := fused[0]
	if fg.Anchor != &gates[1] {
		t.Errorf("fg.Anchor should be the unfusible gate at index 1")
	}
	if len(fg.Members) != 3 {
		t.Fatalf("len(fg.Members) = %d, want 3", len(fg.Members))
	}
	for i := range gates {
		if fg.Members[i] != &gates[i] {
			t.Errorf("fg.Members[%d] = %p, want %p", i, fg.Members[i], &gates[i])
		}
	}
}

// Scenario 5: H on qubit 0, MEASURE qubit 0, X on qubit 1 (an orphan, since
// it shares no 2-qubit anchor). Expect one fused H, one fused measurement,
// one fused orphan X, in that order.
func TestFuseMeasurementMidCircuit(t *testing.T) {
	gates := []gate.Gate{
		unitary1(0, 0, false),
		measurement(1, 0),
		unitary1(2, 1, false),
	}
	fused, err := Fuse(2, gates, nil, diag.Nop{})
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if len(fused) != 3 {
		t.Fatalf("len(fused) = %d, want 3", len(fused))
	}
	if fused[0].IsMeasurement() || fused[0].Qubits[0] != 0 {
		t.Errorf("fused[0] should be the H on qubit 0, got %+v", fused[0])
	}
	if !fused[1].IsMeasurement() || fused[1].Qubits[0] != 0 {
		t.Errorf("fused[1] should be the measurement of qubit 0, got %+v", fused[1])
	}
	if fused[2].IsMeasurement() || fused[2].Qubits[0] != 1 {
		t.Errorf("fused[2] should be the orphan X on qubit 1, got %+v", fused[2])
	}
}

// Scenario 6: out-of-order gate times fail the whole operation.
func TestFuseOutOfOrderFails(t *testing.T) {
	gates := []gate.Gate{
		unitary1(0, 0, false),
		unitary1(2, 0, false),
		unitary1(1, 0, false),
	}
	fused, err := Fuse(1, gates, nil, diag.Nop{})
	if err == nil {
		t.Fatal("Fuse: want error, got nil")
	}
	if fused != nil {
		t.Errorf("fused = %v, want nil on error", fused)
	}
}

func TestFuseRejectsTooManyQubits(t *testing.T) {
	gates := []gate.Gate{
		{Kind: gate.Unitary, Time: 0, Qubits: []int{0, 1, 2}, Matrix: make([]complex128, 64)},
	}
	if _, err := Fuse(3, gates, nil, diag.Nop{}); err == nil {
		t.Fatal("Fuse: want error for a 3-qubit unitary gate, got nil")
	}
}

// Fuser partition: every non-orphaned, non-measurement gate is referenced
// by exactly one fused gate (as anchor or member); no gate is referenced
// twice.
func TestFusePartitionsEveryGateExactlyOnce(t *testing.T) {
	gates := []gate.Gate{
		unitary1(0, 0, false),
		unitary1(1, 1, false),
		unitary2(2, 0, 1),
		unitary1(3, 0, false),
		unitary1(3, 1, false),
		unitary2(4, 1, 2),
		unitary1(5, 2, true),
	}
	fused, err := Fuse(3, gates, nil, diag.Nop{})
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}

	count := make(map[*gate.Gate]int)
	for _, fg := range fused {
		for _, m := range fg.Members {
			count[m]++
		}
	}
	for i := range gates {
		if c := count[&gates[i]]; c != 1 {
			t.Errorf("gates[%d] referenced %d times, want exactly 1", i, c)
		}
	}
}

// Fuser ordering: absorbed 1-qubit members for a given qubit keep their
// original input order within a fused gate.
func TestFuseAbsorbedMembersPreserveInputOrder(t *testing.T) {
	gates := []gate.Gate{
		unitary1(0, 0, false),
		unitary1(1, 0, false),
		unitary2(2, 0, 1),
		unitary1(3, 0, false),
		unitary1(4, 0, false),
	}
	fused, err := Fuse(2, gates, nil, diag.Nop{})
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if len(fused) != 1 {
		t.Fatalf("len(fused) = %d, want 1", len(fused))
	}
	members := fused[0].Members
	if len(members) != len(gates) {
		t.Fatalf("len(members) = %d, want %d", len(members), len(gates))
	}
	for i := range gates {
		if members[i] != &gates[i] {
			t.Errorf("members[%d] = %p, want %p (gates in original time order)", i, members[i], &gates[i])
		}
	}
}

// Fuser split-respect: no fused gate's members span two different windows
// defined by splitTimes.
func TestFuseNoFusedGateSpansASplit(t *testing.T) {
	gates := []gate.Gate{
		unitary1(0, 0, false),
		unitary1(1, 0, false),
		unitary1(2, 0, false),
		unitary1(3, 0, false),
	}
	splitTimes := []uint64{1}
	fused, err := Fuse(1, gates, splitTimes, diag.Nop{})
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if len(fused) != 2 {
		t.Fatalf("len(fused) = %d, want 2 (one per window)", len(fused))
	}
	for _, fg := range fused {
		for _, m := range fg.Members {
			if (m.Time <= 1) != (fg.Members[0].Time <= 1) {
				t.Errorf("fused gate mixes members across split at time 1: %+v", fg)
			}
		}
	}
	// First window's members must all be at or before the split time, the
	// second window's strictly after.
	for _, m := range fused[0].Members {
		if m.Time > 1 {
			t.Errorf("window 0 member at time %d, want <= 1", m.Time)
		}
	}
	for _, m := range fused[1].Members {
		if m.Time <= 1 {
			t.Errorf("window 1 member at time %d, want > 1", m.Time)
		}
	}
}

func TestFuseMergesSplitTimesWithMeasurementTimes(t *testing.T) {
	gates := []gate.Gate{
		unitary1(0, 0, false),
		measurement(1, 0),
		unitary1(2, 0, false),
	}
	// splitTimes requests a boundary at the same time as the measurement;
	// the merge should de-duplicate rather than produce an extra empty
	// window. Window 1 (times <= 1) holds gates[0] (orphaned, no 2-qubit
	// anchor ever appears on qubit 0) then the measurement; window 2
	// (time 2) holds the trailing orphan gates[2].
	fused, err := Fuse(1, gates, []uint64{1}, diag.Nop{})
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	if len(fused) != 3 {
		t.Fatalf("len(fused) = %d, want 3", len(fused))
	}
	if fused[0].IsMeasurement() || fused[0].Time != 0 {
		t.Errorf("fused[0] should be the orphan at time 0, got %+v", fused[0])
	}
	if !fused[1].IsMeasurement() {
		t.Errorf("fused[1] should be the measurement, got %+v", fused[1])
	}
	if fused[2].IsMeasurement() || fused[2].Time != 2 {
		t.Errorf("fused[2] should be the orphan at time 2, got %+v", fused[2])
	}
}

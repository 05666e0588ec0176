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

// Package fuser implements BasicFuser, the gate planner: it groups a
// time-ordered gate stream into fused gates acting on at most two qubits
// each, subject to hard split times (measurements, caller-requested
// measurement windows).
package fuser

import (
	"github.com/samber/lo"

	"github.com/go-qsim/qsim/diag"
	"github.com/go-qsim/qsim/gate"
)

// Fuse groups gates (a time-ordered gate sequence) into fused gates,
// honoring splitTimes as hard boundaries no fused gate may straddle. It
// returns an error (and reports it via io) if gate times are not
// non-decreasing, or if a non-measurement gate names more than
// gate.MaxQubitsPerGate qubits.
//
// The returned FusedGate.Members slices hold pointers into gates; gates
// must not be mutated or discarded while the result is in use.
func Fuse(numQubits int, gates []gate.Gate, splitTimes []uint64, io diag.IO) ([]*gate.FusedGate, error) {
	io = diag.OrNop(io)

	if len(gates) == 0 {
		return nil, nil
	}

	for i := range gates {
		if err := gates[i].Validate(); err != nil {
			io.Errorf("%s\n", err)
			return nil, err
		}
		if i > 0 && gates[i].Time < gates[i-1].Time {
			err := &OutOfOrderError{Time: gates[i].Time, PrevTime: gates[i-1].Time}
			io.Errorf("%s\n", err)
			return nil, err
		}
	}

	windows := mergeWithMeasurementTimes(gates, splitTimes)

	result := make([]*gate.FusedGate, 0, len(gates))
	gateIdx := 0

	for _, splitAt := range windows {
		window, err := fuseWindow(numQubits, gates, &gateIdx, splitAt, io)
		if err != nil {
			return nil, err
		}
		result = append(result, window...)

		if gateIdx >= len(gates) {
			break
		}
	}

	return result, nil
}

// fuseWindow fuses gates[*gateIdx:] up to and including splitAt, advancing
// *gateIdx past the consumed gates.
func fuseWindow(numQubits int, gates []gate.Gate, gateIdx *int, splitAt uint64, io diag.IO) ([]*gate.FusedGate, error) {
	seq := make([]*gate.Gate, 0, len(gates)-*gateIdx)
	lat := make([][]*gate.Gate, numQubits)
	measurementsAtTime := make(map[uint64][]*gate.Gate)

	prevTime := gates[*gateIdx].Time

	for ; *gateIdx < len(gates); *gateIdx++ {
		g := &gates[*gateIdx]
		if g.Time > splitAt {
			break
		}
		if g.Time < prevTime {
			err := &OutOfOrderError{Time: g.Time, PrevTime: prevTime}
			io.Errorf("%s\n", err)
			return nil, err
		}
		prevTime = g.Time

		switch {
		case g.Kind == gate.Measurement:
			if len(measurementsAtTime[g.Time]) == 0 {
				seq = append(seq, g)
			}
			measurementsAtTime[g.Time] = append(measurementsAtTime[g.Time], g)
		case g.NumQubits() == 1:
			q0 := g.Qubits[0]
			lat[q0] = append(lat[q0], g)
			if g.Unfusible {
				seq = append(seq, g)
			}
		case g.NumQubits() == 2:
			q0, q1 := g.Qubits[0], g.Qubits[1]
			lat[q0] = append(lat[q0], g)
			lat[q1] = append(lat[q1], g)
			seq = append(seq, g)
		}
	}

	last := make([]int, numQubits)
	var delayedMeasurement *gate.Gate
	fused := make([]*gate.FusedGate, 0, len(seq))

	for _, anchor := range seq {
		switch {
		case anchor.Kind == gate.Measurement:
			delayedMeasurement = anchor

		case anchor.NumQubits() == 1:
			q0 := anchor.Qubits[0]
			fg := &gate.FusedGate{Kind: gate.Unitary, Time: anchor.Time, NumQubits: 1, Qubits: []int{q0}, Anchor: anchor}

			last[q0] = advanceFusible(last[q0], lat[q0], &fg.Members)
			fg.Members = append(fg.Members, lat[q0][last[q0]])
			last[q0] = advanceFusible(last[q0]+1, lat[q0], &fg.Members)

			fused = append(fused, fg)

		case anchor.NumQubits() == 2:
			q0, q1 := anchor.Qubits[0], anchor.Qubits[1]
			if anchorConsumed(last[q0], anchor.Time, lat[q0]) {
				continue
			}

			fg := &gate.FusedGate{Kind: gate.Unitary, Time: anchor.Time, NumQubits: 2, Qubits: []int{q0, q1}, Anchor: anchor}

			for {
				last[q0] = advanceFusible(last[q0], lat[q0], &fg.Members)
				last[q1] = advanceFusible(last[q1], lat[q1], &fg.Members)
				// lat[q0][last[q0]] == lat[q1][last[q1]] here: the same
				// shared 2-qubit gate is the next head on both cursors.

				fg.Members = append(fg.Members, lat[q0][last[q0]])

				last[q0] = advanceFusible(last[q0]+1, lat[q0], &fg.Members)
				last[q1] = advanceFusible(last[q1]+1, lat[q1], &fg.Members)

				if !sameHead(last[q0], lat[q0], last[q1], lat[q1]) {
					break
				}
			}

			fused = append(fused, fg)
		}
	}

	for q := 0; q < numQubits; q++ {
		if last[q] == len(lat[q]) {
			continue
		}
		// Orphaned qubit: leftover 1-qubit gates with no 2-qubit anchor.
		anchor := lat[q][last[q]]
		fg := &gate.FusedGate{Kind: gate.Unitary, Time: anchor.Time, NumQubits: 1, Qubits: []int{q}, Anchor: anchor}
		fg.Members = append(fg.Members, anchor)
		last[q] = advanceFusible(last[q]+1, lat[q], &fg.Members)
		fused = append(fused, fg)
	}

	if delayedMeasurement != nil {
		mgates := measurementsAtTime[delayedMeasurement.Time]

		qubits := make([]int, 0, len(mgates))
		for _, mg := range mgates {
			qubits = append(qubits, mg.Qubits...)
		}
		qubits = lo.Uniq(qubits)

		fused = append(fused, &gate.FusedGate{
			Kind:      gate.Measurement,
			Time:      delayedMeasurement.Time,
			NumQubits: len(qubits),
			Qubits:    qubits,
			Anchor:    delayedMeasurement,
			Members:   mgates,
		})
	}

	return fused, nil
}

// advanceFusible walks wl[k:] forward over consecutive fusible 1-qubit
// gates (not unfusible, not 2-qubit), appending each to *members. It
// returns the index of the first gate it could not absorb.
func advanceFusible(k int, wl []*gate.Gate, members *[]*gate.Gate) int {
	for k < len(wl) && wl[k].NumQubits() == 1 && !wl[k].Unfusible {
		*members = append(*members, wl[k])
		k++
	}
	return k
}

// anchorConsumed reports whether the qubit-q0 cursor has already passed a
// 2-qubit anchor at time t: true when the shared gate was already absorbed
// while walking the other qubit of an earlier anchor sharing this pointer.
func anchorConsumed(k int, t uint64, wl []*gate.Gate) bool {
	return k >= len(wl) || wl[k].Time > t
}

// sameHead reports whether the next unabsorbed gate on both qubit cursors
// is the same shared 2-qubit gate, meaning the current fused gate should
// keep absorbing.
func sameHead(k1 int, wl1 []*gate.Gate, k2 int, wl2 []*gate.Gate) bool {
	return k1 < len(wl1) && k2 < len(wl2) && wl1[k1] == wl2[k2]
}

// mergeWithMeasurementTimes computes the effective split list: splitTimes
// merged with every distinct measurement time, union preserving order,
// de-duplicating adjacent entries, with the last gate's time appended if it
// falls beyond the last split.
func mergeWithMeasurementTimes(gates []gate.Gate, splitTimes []uint64) []uint64 {
	merged := make([]uint64, 0, len(gates)+len(splitTimes))
	next := 0

	for i := range gates {
		g := &gates[i]

		if g.Kind == gate.Measurement && (len(merged) == 0 || merged[len(merged)-1] < g.Time) {
			merged = append(merged, g.Time)
		}

		if next < len(splitTimes) && g.Time > splitTimes[next] {
			for next < len(splitTimes) && splitTimes[next] <= g.Time {
				prev := splitTimes[next]
				next++
				if len(merged) == 0 || merged[len(merged)-1] < prev {
					merged = append(merged, prev)
				}
				for next < len(splitTimes) && splitTimes[next] <= prev {
					next++
				}
			}
		}
	}

	lastGateTime := gates[len(gates)-1].Time
	if len(merged) == 0 || merged[len(merged)-1] < lastGateTime {
		merged = append(merged, lastGateTime)
	}

	return merged
}

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

package simulator

import "github.com/go-qsim/qsim/statevec"

// applyLocalUnitary applies the dim x dim (dim = 2^len(qubits)) operator m
// to every group of amplitudes selected by qubits, over every other qubit's
// bit combination. It runs through ss's Loop, one outer index per group —
// groups are disjoint amplitude sets, so this is safe to parallelize the
// way statespace_avx.h's ApplyGate iterates one SIMD block per worker.
func applyLocalUnitary[T statevec.Float](ss *statevec.StateSpace[T], buf statevec.Buffer[T], qubits []int, m []complex128) {
	k := len(qubits)
	dim := uint64(1) << uint(k)
	mask := localMask(qubits)
	numQubits := ss.NumQubits()
	outerCount := ss.NumAmplitudes() >> uint(k)

	ss.Loop().Run(outerCount, func(_, _ int, g uint64) {
		var amps, out [4]complex128
		base := depositBits(g, mask, numQubits)

		for local := uint64(0); local < dim; local++ {
			amps[local] = ss.GetAmpl(buf, localIndex(base, qubits, local))
		}
		for r := uint64(0); r < dim; r++ {
			var sum complex128
			for c := uint64(0); c < dim; c++ {
				sum += m[r*dim+c] * amps[c]
			}
			out[r] = sum
		}
		for local := uint64(0); local < dim; local++ {
			ss.SetAmpl(buf, localIndex(base, qubits, local), out[local])
		}
	})
}

// localMask returns the bitmask of qubits' positions in the global index.
func localMask(qubits []int) uint64 {
	var mask uint64
	for _, q := range qubits {
		mask |= uint64(1) << uint(q)
	}
	return mask
}

// localIndex sets qubits[b]'s bit in base according to bit b of local
// (qubits[0] is the most significant local bit, matching the matrix's
// row-major convention).
func localIndex(base uint64, qubits []int, local uint64) uint64 {
	idx := base
	k := len(qubits)
	for b := 0; b < k; b++ {
		if (local>>uint(k-1-b))&1 == 1 {
			idx |= uint64(1) << uint(qubits[b])
		}
	}
	return idx
}

// depositBits scatters g's bits into every position in [0, numBits) not
// covered by excludeMask, in ascending order, leaving excludeMask's
// positions zero. This is the "spread g's bits around the gate's qubits"
// step every apply needs, generalizing statespace_avx.h's hardcoded
// single/double-qubit index arithmetic to any qubit count.
func depositBits(g, excludeMask uint64, numBits int) uint64 {
	var idx uint64
	var gi uint
	for b := 0; b < numBits; b++ {
		bit := uint64(1) << uint(b)
		if excludeMask&bit != 0 {
			continue
		}
		if g&(uint64(1)<<gi) != 0 {
			idx |= bit
		}
		gi++
	}
	return idx
}

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

import "github.com/go-qsim/qsim/gate"

// effectiveMatrix multiplies fg's members' matrices into one dense operator
// on fg's anchor qubit subspace, per spec.md §4.3: each member is embedded
// onto the anchor's qubit set (a 1-qubit member acting on q is M⊗I or I⊗M
// depending on whether q is the anchor's first or second qubit), then
// left-multiplied onto the running product in list (time) order — so the
// last member in the list ends up leftmost, matching the order a sequence
// of gates would actually compose in: state' = M_last·...·M_first·state.
func effectiveMatrix(fg *gate.FusedGate) ([]complex128, error) {
	dim := 1 << fg.NumQubits
	product := identity(dim)

	for _, m := range fg.Members {
		local, err := embedded(m, fg)
		if err != nil {
			return nil, err
		}
		product = matMul(local, product, dim)
	}
	return product, nil
}

func embedded(m *gate.Gate, fg *gate.FusedGate) ([]complex128, error) {
	if len(m.Qubits) == fg.NumQubits {
		if fg.NumQubits == 2 && m.Qubits[0] == fg.Qubits[1] {
			// Same qubit pair in the opposite order: swap the two local
			// bits of every row and column index.
			swap := func(i int) int { return (i&1)<<1 | (i>>1)&1 }
			out := make([]complex128, 16)
			for r := 0; r < 4; r++ {
				for c := 0; c < 4; c++ {
					out[r*4+c] = m.Matrix[swap(r)*4+swap(c)]
				}
			}
			return out, nil
		}
		return m.Matrix, nil
	}
	if len(m.Qubits) != 1 || fg.NumQubits != 2 {
		return nil, &gate.InvalidGateError{Gate: m, Reason: "member qubit count does not fit anchor subspace"}
	}
	pos := 0
	if m.Qubits[0] == fg.Qubits[1] {
		pos = 1
	}
	return embed1Into2(m.Matrix, pos), nil
}

// embed1Into2 embeds a 2x2 matrix acting alone on local position pos (0 or
// 1, within a 2-qubit local basis where position 0 is the more significant
// bit) into a 4x4 operator: pos==0 gives m⊗I, pos==1 gives I⊗m.
func embed1Into2(m []complex128, pos int) []complex128 {
	id2 := identity(2)
	if pos == 0 {
		return kron(m, id2)
	}
	return kron(id2, m)
}

// kron returns the Kronecker product of two square matrices a (dimA x dimA)
// and b (dimB x dimB), flattened row-major.
func kron(a, b []complex128) []complex128 {
	dimA := isqrt(len(a))
	dimB := isqrt(len(b))
	dim := dimA * dimB
	out := make([]complex128, dim*dim)
	for i0 := 0; i0 < dimA; i0++ {
		for i1 := 0; i1 < dimB; i1++ {
			for j0 := 0; j0 < dimA; j0++ {
				for j1 := 0; j1 < dimB; j1++ {
					row := i0*dimB + i1
					col := j0*dimB + j1
					out[row*dim+col] = a[i0*dimA+j0] * b[i1*dimB+j1]
				}
			}
		}
	}
	return out
}

func matMul(a, b []complex128, dim int) []complex128 {
	out := make([]complex128, dim*dim)
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			var sum complex128
			for k := 0; k < dim; k++ {
				sum += a[r*dim+k] * b[k*dim+c]
			}
			out[r*dim+c] = sum
		}
	}
	return out
}

func identity(dim int) []complex128 {
	out := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		out[i*dim+i] = 1
	}
	return out
}

func isqrt(n int) int {
	for d := 1; d*d <= n; d++ {
		if d*d == n {
			return d
		}
	}
	return 1
}

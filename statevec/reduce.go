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

import "github.com/go-qsim/qsim/parallel"

// Accumulation always happens in float64, even when T is float32: spec.md
// §4.2 requires reductions over a float32-backed state space not to lose
// precision to the storage type, the way naive float32 summation would.

// InnerProduct returns conj(a) . b, accumulated across ss's Loop via
// parallel.RunReduce.
func (ss *StateSpace[T]) InnerProduct(a, b Buffer[T]) (complex128, error) {
	if err := ss.checkSize("InnerProduct", a); err != nil {
		return 0, err
	}
	if err := ss.checkSize("InnerProduct", b); err != nil {
		return 0, err
	}

	n := ss.NumAmplitudes()
	result := parallel.RunReduce(ss.loop, n, complex128(0),
		func(_, _ int, i uint64) complex128 {
			av, bv := ss.GetAmpl(a, i), ss.GetAmpl(b, i)
			re := real(av)*real(bv) + imag(av)*imag(bv)
			im := real(av)*imag(bv) - imag(av)*real(bv)
			return complex(re, im)
		},
		func(x, y complex128) complex128 { return x + y },
	)
	return result, nil
}

// RealInnerProduct returns Re(conj(a) . b), skipping the imaginary-part
// work InnerProduct does. Most callers (norm checks, fidelity) only need
// the real part.
func (ss *StateSpace[T]) RealInnerProduct(a, b Buffer[T]) (float64, error) {
	if err := ss.checkSize("RealInnerProduct", a); err != nil {
		return 0, err
	}
	if err := ss.checkSize("RealInnerProduct", b); err != nil {
		return 0, err
	}

	n := ss.NumAmplitudes()
	result := parallel.RunReduce(ss.loop, n, float64(0),
		func(_, _ int, i uint64) float64 {
			av, bv := ss.GetAmpl(a, i), ss.GetAmpl(b, i)
			return real(av)*real(bv) + imag(av)*imag(bv)
		},
		func(x, y float64) float64 { return x + y },
	)
	return result, nil
}

// Norm returns the squared norm (sum of |amplitude|^2) of buf.
func (ss *StateSpace[T]) Norm(buf Buffer[T]) (float64, error) {
	return ss.RealInnerProduct(buf, buf)
}

// PartialNorms returns one squared-norm partial sum per Loop worker, the
// primitive FindMeasuredBits' cumulative scan is built on (spec.md §4.2).
func (ss *StateSpace[T]) PartialNorms(buf Buffer[T]) ([]float64, error) {
	if err := ss.checkSize("PartialNorms", buf); err != nil {
		return nil, err
	}
	n := ss.NumAmplitudes()
	partials := parallel.RunReduceP(ss.loop, n, float64(0),
		func(_, _ int, i uint64) float64 {
			v := ss.GetAmpl(buf, i)
			return real(v)*real(v) + imag(v)*imag(v)
		},
		func(x, y float64) float64 { return x + y },
	)
	return partials, nil
}

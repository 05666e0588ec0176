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

// ToNormalOrder converts buf from its lane-interleaved internal layout
// (L real parts followed by L imaginary parts, per block) into ordinary
// order: one complex128 per amplitude, index i holding amplitude i.
//
// statespace_avx.h's InternalToNormalOrder does this via an in-place SIMD
// shuffle keyed to a hardcoded lane width of 8; laneIndexes already
// generalizes that addressing to any L (including L=1, where internal and
// normal order coincide), so the conversion here is a
// plain gather rather than a shuffle.
func (ss *StateSpace[T]) ToNormalOrder(buf Buffer[T]) ([]complex128, error) {
	if err := ss.checkSize("ToNormalOrder", buf); err != nil {
		return nil, err
	}
	n := ss.NumAmplitudes()
	out := make([]complex128, n)
	for i := uint64(0); i < n; i++ {
		out[i] = ss.GetAmpl(buf, i)
	}
	return out, nil
}

// FromNormalOrder is the inverse of ToNormalOrder: it scatters in (one
// complex128 per amplitude) into buf's lane-interleaved internal layout.
// len(in) must equal ss.NumAmplitudes().
func (ss *StateSpace[T]) FromNormalOrder(in []complex128, buf Buffer[T]) error {
	if err := ss.checkSize("FromNormalOrder", buf); err != nil {
		return err
	}
	n := ss.NumAmplitudes()
	if uint64(len(in)) != n {
		return &SizeMismatchError{Op: "FromNormalOrder", Got: len(in), Want: int(n)}
	}
	for i := uint64(0); i < n; i++ {
		ss.SetAmpl(buf, i, in[i])
	}
	return nil
}

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

// laneIndexes returns the raw offsets of amplitude i's real and imaginary
// parts within a buffer laid out with lane width L: amplitude i lives in
// block k = i/L at lane j = i%L, and each block occupies 2*L raw slots —
// L real parts followed by L imaginary parts. This generalizes
// statespace_avx.h's hardcoded 16*(i/8)+(i%8) (L=8) to any L, including
// L=1 where it degenerates to the identity (re, im) = (2*i, 2*i+1).
func laneIndexes(i uint64, lanes int) (re, im int) {
	L := uint64(lanes)
	k := i / L
	j := i % L
	base := int(k) * 2 * lanes
	return base + int(j), base + lanes + int(j)
}

// GetAmpl returns amplitude i of buf as a complex128, regardless of T's
// underlying precision.
func (ss *StateSpace[T]) GetAmpl(buf Buffer[T], i uint64) complex128 {
	re, im := laneIndexes(i, ss.lanes)
	return complex(float64(buf[re]), float64(buf[im]))
}

// SetAmpl writes amplitude i of buf.
func (ss *StateSpace[T]) SetAmpl(buf Buffer[T], i uint64, v complex128) {
	re, im := laneIndexes(i, ss.lanes)
	buf[re] = T(real(v))
	buf[im] = T(imag(v))
}

// addAmpl adds src's amplitude i into dst's amplitude i, in place on dst.
func (ss *StateSpace[T]) addAmpl(dst, src Buffer[T], i uint64) {
	re, im := laneIndexes(i, ss.lanes)
	dst[re] += src[re]
	dst[im] += src[im]
}

// scaleAmpl scales amplitude i of buf by the real scalar c.
func (ss *StateSpace[T]) scaleAmpl(buf Buffer[T], i uint64, c T) {
	re, im := laneIndexes(i, ss.lanes)
	buf[re] *= c
	buf[im] *= c
}

// AddState adds every amplitude of src into dst elementwise, in place on
// dst: dst += src.
func (ss *StateSpace[T]) AddState(dst, src Buffer[T]) error {
	if err := ss.checkSize("AddState", dst); err != nil {
		return err
	}
	if err := ss.checkSize("AddState", src); err != nil {
		return err
	}
	n := ss.NumAmplitudes()
	ss.loop.Run(n, func(_, _ int, i uint64) {
		ss.addAmpl(dst, src, i)
	})
	return nil
}

// Multiply scales every amplitude of buf by the real scalar c: buf *= c.
func (ss *StateSpace[T]) Multiply(buf Buffer[T], c T) error {
	if err := ss.checkSize("Multiply", buf); err != nil {
		return err
	}
	n := ss.NumAmplitudes()
	ss.loop.Run(n, func(_, _ int, i uint64) {
		ss.scaleAmpl(buf, i, c)
	})
	return nil
}

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

import (
	"math/rand"
	"sort"
)

// FindMeasuredBits takes rs, random draws sorted ascending and each in
// [0, total) where total is buf's squared norm, and returns the masked
// bits of the basis state each draw landed on under the |amplitude|^2
// distribution. Matching statespace_avx.h's FindMeasuredBits, this walks
// the cumulative distribution once per worker slice rather than once over
// the whole buffer: PartialNorms supplies each worker's share of total up
// front, so a worker only needs the prefix sum of the workers before it to
// know which sub-range of rs falls inside its own slice.
func (ss *StateSpace[T]) FindMeasuredBits(buf Buffer[T], mask uint64, rs []float64) ([]uint64, error) {
	if err := ss.checkSize("FindMeasuredBits", buf); err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, nil
	}

	partials, err := ss.PartialNorms(buf)
	if err != nil {
		return nil, err
	}
	offsets := make([]float64, len(partials))
	for w := 1; w < len(partials); w++ {
		offsets[w] = offsets[w-1] + partials[w-1]
	}

	n := ss.NumAmplitudes()
	bits := make([]uint64, len(rs))

	ss.loop.Run(uint64(ss.loop.NumWorkers()), func(_, _ int, wi uint64) {
		w := int(wi)
		lo := offsets[w]
		hi := lo + partials[w]

		a := sort.Search(len(rs), func(k int) bool { return rs[k] >= lo })
		b := sort.Search(len(rs), func(k int) bool { return rs[k] >= hi })
		if a >= b {
			return
		}

		k0, k1 := ss.loop.GetIndex0(n, w), ss.loop.GetIndex1(n, w)
		cumulative := lo
		ptr := a
		for i := k0; i < k1 && ptr < b; i++ {
			v := ss.GetAmpl(buf, i)
			cumulative += real(v)*real(v) + imag(v)*imag(v)
			for ptr < b && rs[ptr] < cumulative {
				bits[ptr] = i & mask
				ptr++
			}
		}
		// Floating-point rounding can leave a trailing draw just short of
		// its worker's final cumulative value; it belongs to the last
		// amplitude in this slice.
		for ; ptr < b && k1 > 0; ptr++ {
			bits[ptr] = (k1 - 1) & mask
		}
	})

	return bits, nil
}

// Sample draws numSamples basis-state indices from buf's |amplitude|^2
// distribution, using rng to generate each draw. It is a thin convenience
// wrapper over FindMeasuredBits with mask set to select every bit.
func (ss *StateSpace[T]) Sample(buf Buffer[T], numSamples int, rng *rand.Rand) ([]uint64, error) {
	if numSamples <= 0 {
		return nil, nil
	}
	total, err := ss.Norm(buf)
	if err != nil {
		return nil, err
	}

	rs := make([]float64, numSamples)
	for i := range rs {
		rs[i] = rng.Float64() * total
	}
	sort.Float64s(rs)

	mask := ss.NumAmplitudes() - 1
	return ss.FindMeasuredBits(buf, mask, rs)
}

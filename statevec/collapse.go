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
	"math"

	"github.com/go-qsim/qsim/parallel"
)

// Collapse projects buf onto the subspace where (i & mask) == bits and
// renormalizes the survivors to unit norm, implementing a measurement
// outcome's effect on the state (spec.md §4.3). It returns ErrZeroMass if
// no amplitude survives the projection.
func (ss *StateSpace[T]) Collapse(buf Buffer[T], mask, bits uint64) error {
	if err := ss.checkSize("Collapse", buf); err != nil {
		return err
	}

	n := ss.NumAmplitudes()
	mass := parallel.RunReduce(ss.loop, n, float64(0),
		func(_, _ int, i uint64) float64 {
			if i&mask != bits {
				return 0
			}
			v := ss.GetAmpl(buf, i)
			return real(v)*real(v) + imag(v)*imag(v)
		},
		func(x, y float64) float64 { return x + y },
	)
	if mass == 0 {
		return ErrZeroMass
	}

	scale := T(1 / math.Sqrt(mass))
	ss.loop.Run(n, func(_, _ int, i uint64) {
		if i&mask != bits {
			ss.SetAmpl(buf, i, 0)
			return
		}
		ss.scaleAmpl(buf, i, scale)
	})
	return nil
}

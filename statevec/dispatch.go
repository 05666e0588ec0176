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
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel names the lane width the current process is using for the
// amplitude buffer layout. Unlike hwy's dispatch levels (which pick between
// several real SIMD instruction sets), the core only ever needs two: a
// portable reference layout and one wide-lane layout, per spec.md §9.
type DispatchLevel int

const (
	// DispatchScalar uses a lane width sized to a 128-bit register (matching
	// qsim's SSE layout tier): 4 lanes for float32, 2 for float64. This is
	// the portable reference back-end, used whenever the wide back-end's
	// CPU requirements aren't met.
	DispatchScalar DispatchLevel = iota

	// DispatchWide uses a lane width sized to a 256-bit SIMD register,
	// matching qsim's AVX layout: 8 lanes for float32, 4 for float64.
	DispatchWide
)

func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchWide:
		return "wide"
	default:
		return "unknown"
	}
}

// currentLevel and currentWidth are set once by init() in dispatch_amd64.go
// or dispatch_other.go, mirroring hwy/dispatch.go's currentLevel/currentWidth.
var (
	currentLevel DispatchLevel
	currentWidth int // register width in bytes
)

// CurrentLevel returns the dispatch level chosen for this process.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the simulated SIMD register width in bytes: 16 for
// the scalar reference layout (a 128-bit register), 32 for the wide layout.
func CurrentWidth() int {
	return currentWidth
}

// NoSimdEnv reports whether QSIM_NO_SIMD is set, forcing the scalar
// reference layout regardless of runtime CPU detection. Mirrors hwy's
// HWY_NO_SIMD.
func NoSimdEnv() bool {
	val := os.Getenv("QSIM_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// LaneWidth returns the number of T amplitudes' real (or imaginary) parts
// that fit in one lane block at the current dispatch level: spec.md §3's L.
func LaneWidth[T Float]() int {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return 1
	}
	lanes := currentWidth / elemSize
	if lanes < 1 {
		return 1
	}
	return lanes
}

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
	"testing"

	"github.com/go-qsim/qsim/parallel"
)

func TestNewRejectsInvalidQubitCount(t *testing.T) {
	for _, n := range []int{0, -1, maxQubits + 1} {
		if _, err := New[float64](n, nil); err == nil {
			t.Errorf("New(%d): want error, got nil", n)
		}
	}
}

func TestNewBufferZeroed(t *testing.T) {
	ss, err := New[float64](4, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	buf, err := ss.NewBuffer()
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if len(buf) != ss.RawSize() {
		t.Fatalf("len(buf) = %d, want %d", len(buf), ss.RawSize())
	}
	for i := uint64(0); i < ss.NumAmplitudes(); i++ {
		if v := ss.GetAmpl(buf, i); v != 0 {
			t.Errorf("amplitude %d = %v, want 0", i, v)
		}
	}
}

func TestSetZeroIsBasisState(t *testing.T) {
	ss, _ := New[float64](3, nil)
	buf, _ := ss.NewBuffer()
	if err := ss.SetZero(buf); err != nil {
		t.Fatalf("SetZero: %v", err)
	}
	if v := ss.GetAmpl(buf, 0); v != complex(1, 0) {
		t.Errorf("amplitude 0 = %v, want 1", v)
	}
	for i := uint64(1); i < ss.NumAmplitudes(); i++ {
		if v := ss.GetAmpl(buf, i); v != 0 {
			t.Errorf("amplitude %d = %v, want 0", i, v)
		}
	}
}

func TestSetUniformHasUnitNorm(t *testing.T) {
	for _, loop := range []parallel.Loop{parallel.NewSequential(), parallel.NewParallel(4)} {
		ss, _ := New[float64](5, loop)
		buf, _ := ss.NewBuffer()
		if err := ss.SetUniform(buf); err != nil {
			t.Fatalf("SetUniform: %v", err)
		}
		norm, err := ss.Norm(buf)
		if err != nil {
			t.Fatalf("Norm: %v", err)
		}
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("norm = %v, want ~1", norm)
		}
	}
}

func TestSetAmplRoundTrip(t *testing.T) {
	ss, _ := New[float32](6, parallel.NewParallel(3))
	buf, _ := ss.NewBuffer()
	for i := uint64(0); i < ss.NumAmplitudes(); i++ {
		ss.SetAmpl(buf, i, complex(float64(i), -float64(i)))
	}
	for i := uint64(0); i < ss.NumAmplitudes(); i++ {
		want := complex(float64(i), -float64(i))
		if got := ss.GetAmpl(buf, i); got != want {
			t.Errorf("amplitude %d = %v, want %v", i, got, want)
		}
	}
}

func TestAddStateSumsElementwise(t *testing.T) {
	ss, _ := New[float64](3, parallel.NewParallel(2))
	dst, _ := ss.NewBuffer()
	src, _ := ss.NewBuffer()
	for i := uint64(0); i < ss.NumAmplitudes(); i++ {
		ss.SetAmpl(dst, i, complex(float64(i), 0))
		ss.SetAmpl(src, i, complex(0, float64(i)))
	}
	if err := ss.AddState(dst, src); err != nil {
		t.Fatalf("AddState: %v", err)
	}
	for i := uint64(0); i < ss.NumAmplitudes(); i++ {
		want := complex(float64(i), float64(i))
		if got := ss.GetAmpl(dst, i); got != want {
			t.Errorf("dst[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestMultiplyScalesEveryAmplitude(t *testing.T) {
	ss, _ := New[float64](3, nil)
	buf, _ := ss.NewBuffer()
	ss.SetUniform(buf)
	if err := ss.Multiply(buf, 2); err != nil {
		t.Fatalf("Multiply: %v", err)
	}
	norm, _ := ss.Norm(buf)
	if math.Abs(norm-4) > 1e-9 {
		t.Errorf("norm after Multiply(2) = %v, want 4", norm)
	}
}

func TestCheckSizeRejectsWrongLength(t *testing.T) {
	ss, _ := New[float64](3, nil)
	if err := ss.SetAllZeros(make(Buffer[float64], 1)); err == nil {
		t.Error("SetAllZeros with wrong buffer length: want error, got nil")
	}
}

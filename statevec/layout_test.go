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

import "testing"

func TestNormalOrderRoundTrip(t *testing.T) {
	ss, _ := New[float64](5, nil)
	buf, _ := ss.NewBuffer()
	for i := uint64(0); i < ss.NumAmplitudes(); i++ {
		ss.SetAmpl(buf, i, complex(float64(i)+0.5, float64(i)-0.25))
	}

	normal, err := ss.ToNormalOrder(buf)
	if err != nil {
		t.Fatalf("ToNormalOrder: %v", err)
	}
	if len(normal) != int(ss.NumAmplitudes()) {
		t.Fatalf("len(normal) = %d, want %d", len(normal), ss.NumAmplitudes())
	}
	for i, v := range normal {
		want := complex(float64(i)+0.5, float64(i)-0.25)
		if v != want {
			t.Errorf("normal[%d] = %v, want %v", i, v, want)
		}
	}

	buf2, _ := ss.NewBuffer()
	if err := ss.FromNormalOrder(normal, buf2); err != nil {
		t.Fatalf("FromNormalOrder: %v", err)
	}
	for i := uint64(0); i < ss.NumAmplitudes(); i++ {
		if got, want := ss.GetAmpl(buf2, i), ss.GetAmpl(buf, i); got != want {
			t.Errorf("amplitude %d = %v, want %v", i, got, want)
		}
	}
}

func TestFromNormalOrderRejectsWrongLength(t *testing.T) {
	ss, _ := New[float64](3, nil)
	buf, _ := ss.NewBuffer()
	if err := ss.FromNormalOrder(make([]complex128, 1), buf); err == nil {
		t.Error("FromNormalOrder with wrong length: want error, got nil")
	}
}

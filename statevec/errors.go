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
	"errors"
	"fmt"
)

// ErrAllocationFailure is returned when an amplitude buffer could not be
// allocated, e.g. because the requested qubit count overflows addressable
// memory.
var ErrAllocationFailure = errors.New("amplitude buffer allocation failed")

// ErrZeroMass is returned by Collapse when the surviving mass of a
// measurement outcome is zero: there is nothing to renormalize onto.
var ErrZeroMass = errors.New("collapse: zero surviving mass")

// SizeMismatchError indicates a kernel was called with a buffer whose
// length doesn't match the StateSpace it was allocated for.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type SizeMismatchError struct {
	Op       string
	Got      int
	Want     int
	cause    error
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%s: buffer size %d, want %d", e.Op, e.Got, e.Want)
}

func (e *SizeMismatchError) Unwrap() error { return e.cause }

// InvalidQubitCountError indicates a qubit count outside the supported
// range (e.g. negative, or large enough that 2^N overflows uint64).
type InvalidQubitCountError struct {
	NumQubits int
}

func (e *InvalidQubitCountError) Error() string {
	return fmt.Sprintf("invalid qubit count: %d", e.NumQubits)
}

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

package gate

import "fmt"

// UnsupportedGateError indicates a non-measurement gate whose qubit count
// exceeds MaxQubitsPerGate. Per spec.md's open question, such gates are
// rejected rather than silently dropped during fuser classification.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type UnsupportedGateError struct {
	Gate      *Gate
	NumQubits int
	cause     error
}

func (e *UnsupportedGateError) Error() string {
	return fmt.Sprintf("unsupported gate: %d qubits (max %d) at time %d",
		e.NumQubits, MaxQubitsPerGate, e.Gate.Time)
}

func (e *UnsupportedGateError) Unwrap() error { return e.cause }

// InvalidGateError indicates a structurally malformed gate: a mismatched
// matrix length, a measurement naming no qubits, or an unrecognized Kind.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type InvalidGateError struct {
	Gate   *Gate
	Reason string
	cause  error
}

func (e *InvalidGateError) Error() string {
	return fmt.Sprintf("invalid gate at time %d: %s", e.Gate.Time, e.Reason)
}

func (e *InvalidGateError) Unwrap() error { return e.cause }

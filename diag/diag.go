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

// Package diag is the IO collaborator spec.md §6 calls for: a pair of sinks
// the core reports diagnostics through, injected rather than hardwired to
// any particular output. The core never opens files or sockets itself; it
// only ever talks to the IO interface.
package diag

import (
	"fmt"
	"io"
	"os"
)

// IO is the sink the fuser and the runner report through. The statevec
// kernels and the simulator take no IO: they only return errors, which the
// runner reports through its IO when it receives them.
// Errorf carries failures (in the fuser and the runner, an invocation
// always precedes an error return);
// Messagef carries progress/verbosity output that never affects control flow.
type IO interface {
	Errorf(format string, args ...any)
	Messagef(format string, args ...any)
}

// Std writes errors to one writer and progress messages to another. The
// zero value writes errors to os.Stderr and messages to os.Stdout.
type Std struct {
	ErrWriter io.Writer
	MsgWriter io.Writer
}

// NewStd returns a Std wired to os.Stderr/os.Stdout.
func NewStd() *Std {
	return &Std{ErrWriter: os.Stderr, MsgWriter: os.Stdout}
}

func (s *Std) Errorf(format string, args ...any) {
	w := s.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format, args...)
}

func (s *Std) Messagef(format string, args ...any) {
	w := s.MsgWriter
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, format, args...)
}

// Nop discards every diagnostic. Useful as a default when the caller hasn't
// injected an IO collaborator, and in tests that don't care about output.
type Nop struct{}

func (Nop) Errorf(string, ...any)   {}
func (Nop) Messagef(string, ...any) {}

// orNop returns io unchanged, or Nop{} if io is nil, so callers never need
// to nil-check before use.
func orNop(io IO) IO {
	if io == nil {
		return Nop{}
	}
	return io
}

// OrNop returns the given IO, or a no-op IO if it is nil. Core components
// take an IO parameter and should route it through OrNop once at
// construction so the rest of their code can call it unconditionally.
func OrNop(io IO) IO {
	return orNop(io)
}

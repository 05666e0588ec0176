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

// Package runner drives a circuit end to end: it fuses gates, applies each
// fused gate through a Simulator, and invokes a caller-supplied measurement
// callback at requested time boundaries. It is the glue run_qsim.h's
// RunQSim/RunQSimOptions provide over BasicGateFuser and StateSpace.
package runner

import (
	"math/rand"

	"github.com/go-qsim/qsim/diag"
	"github.com/go-qsim/qsim/fuser"
	"github.com/go-qsim/qsim/gate"
	"github.com/go-qsim/qsim/parallel"
	"github.com/go-qsim/qsim/simulator"
	"github.com/go-qsim/qsim/statevec"
)

// Params configures a run: how many workers the state space's kernels
// split across, how much progress gets reported, and (optionally) a time
// source for that reporting.
type Params struct {
	WorkerCount int

	// Verbosity gates timing messages reported through IO.Messagef:
	// 0 is silent, 1 reports total elapsed wall time once, 2 additionally
	// reports each fused gate's own elapsed time. Mirrors run_qsim.h's
	// param.verbosity levels.
	Verbosity int

	// Now returns the current time in seconds, consulted only when
	// Verbosity > 0. If nil, no timing messages are emitted regardless of
	// Verbosity: the runner never reads the wall clock itself.
	Now func() float64
}

// Circuit is the caller-owned gate stream a Runner executes.
type Circuit struct {
	NumQubits int
	Gates     []gate.Gate
}

// MeasureFunc is invoked once per split-time window, after every fused gate
// at or before that window's boundary has been applied.
type MeasureFunc[T statevec.Float] func(windowIndex int, ss *statevec.StateSpace[T], buf statevec.Buffer[T])

// Runner executes circuits at a fixed numeric precision T.
type Runner[T statevec.Float] struct {
	io  diag.IO
	rng *rand.Rand
}

// New returns a Runner reporting through io (or discarding diagnostics if
// io is nil) and drawing measurement outcomes from rng (or a fixed default
// seed if rng is nil).
func New[T statevec.Float](io diag.IO, rng *rand.Rand) *Runner[T] {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Runner[T]{io: diag.OrNop(io), rng: rng}
}

func (r *Runner[T]) loop(workerCount int) parallel.Loop {
	if workerCount <= 1 {
		return parallel.NewSequential()
	}
	return parallel.NewParallel(workerCount)
}

// Run constructs a fresh StateSpace and buffer for circuit, fuses its gates
// against splitTimes, applies each fused gate in order, and calls measure
// once per entry of splitTimes (spec.md §4.4's first entry point). It
// returns the final buffer.
func (r *Runner[T]) Run(params Params, splitTimes []uint64, circuit Circuit, measure MeasureFunc[T]) (statevec.Buffer[T], error) {
	ss, err := statevec.New[T](circuit.NumQubits, r.loop(params.WorkerCount))
	if err != nil {
		r.io.Errorf("%s\n", err)
		return nil, err
	}
	buf, err := ss.NewBuffer()
	if err != nil {
		r.io.Errorf("%s\n", err)
		return nil, err
	}
	if err := ss.SetZero(buf); err != nil {
		r.io.Errorf("%s\n", err)
		return nil, err
	}

	start := r.now(params)

	fused, err := fuser.Fuse(circuit.NumQubits, circuit.Gates, splitTimes, r.io)
	if err != nil {
		return nil, err
	}

	sim := simulator.New[T]()
	cur := 0
	for i, fg := range fused {
		gateStart := r.now(params)
		if err := sim.Apply(ss, buf, fg, r.rng, nil); err != nil {
			r.io.Errorf("%s\n", err)
			return nil, err
		}
		r.reportGateTiming(params, gateStart)

		last := i == len(fused)-1
		crossedSplit := !last && cur < len(splitTimes) && fused[i+1].Time > splitTimes[cur]
		if (last || crossedSplit) && cur < len(splitTimes) {
			if measure != nil {
				measure(cur, ss, buf)
			}
			cur++
		}
	}
	// A window with no fused gates before its boundary still needs its callback.
	for ; cur < len(splitTimes); cur++ {
		if measure != nil {
			measure(cur, ss, buf)
		}
	}

	r.reportTotalTiming(params, start)
	return buf, nil
}

// RunWithBuffer advances buf (already holding the caller's initial state)
// through circuit's gates up to maxtime, emitting no measurement callbacks
// (spec.md §4.4's second entry point). If maxtime is less than the
// circuit's last gate time, it is clamped up to that time so no gate is
// silently dropped.
func (r *Runner[T]) RunWithBuffer(params Params, maxtime uint64, circuit Circuit, ss *statevec.StateSpace[T], buf statevec.Buffer[T]) error {
	if len(circuit.Gates) > 0 {
		if last := circuit.Gates[len(circuit.Gates)-1].Time; last > maxtime {
			maxtime = last
		}
	}

	start := r.now(params)

	fused, err := fuser.Fuse(circuit.NumQubits, circuit.Gates, []uint64{maxtime}, r.io)
	if err != nil {
		return err
	}

	sim := simulator.New[T]()
	for _, fg := range fused {
		gateStart := r.now(params)
		if err := sim.Apply(ss, buf, fg, r.rng, nil); err != nil {
			r.io.Errorf("%s\n", err)
			return err
		}
		r.reportGateTiming(params, gateStart)
	}

	r.reportTotalTiming(params, start)
	return nil
}

func (r *Runner[T]) now(params Params) float64 {
	if params.Verbosity <= 0 || params.Now == nil {
		return 0
	}
	return params.Now()
}

func (r *Runner[T]) reportGateTiming(params Params, gateStart float64) {
	if params.Verbosity < 2 || params.Now == nil {
		return
	}
	r.io.Messagef("fused gate applied in %.6fs\n", params.Now()-gateStart)
}

func (r *Runner[T]) reportTotalTiming(params Params, start float64) {
	if params.Verbosity < 1 || params.Now == nil {
		return
	}
	r.io.Messagef("run completed in %.6fs\n", params.Now()-start)
}

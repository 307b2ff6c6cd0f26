/*
   gpsim - Multi-core fetch/commit scheduling driver.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

// Package sim drives the execution core: one goroutine per hardware
// core, round-robining its warps through decode and core.Execute, and
// implementing the BARRIER rendezvous the core itself only marks in
// the trace.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rcornwell/gpsim/core"
	"github.com/rcornwell/gpsim/decode"
	"github.com/rcornwell/gpsim/emu/memory"
	"github.com/rcornwell/gpsim/isa"
)

// Scheduler owns every hardware core in a simulation run.
type Scheduler struct {
	Cores []*core.Core

	// Breakpoints halts RunUntilBreak once any warp's PC lands on one
	// of these addresses. Set directly by the console.
	Breakpoints map[uint32]bool

	wg      sync.WaitGroup
	barrier []map[uint32]*barrierState // per-core: barrier PC -> in-flight rendezvous.
	timers  timerList                  // pending timer interrupts, delivered as instructions retire.
}

// ScheduleInterrupt arms code on w, cycles instructions from now,
// counted against total retired instructions across every warp.
func (s *Scheduler) ScheduleInterrupt(w *core.Warp, cycles int, code int) {
	s.timers.schedule(w, cycles, code)
}

// CancelInterrupt removes every pending timer event targeting w.
func (s *Scheduler) CancelInterrupt(w *core.Warp) {
	s.timers.cancel(w)
}

// NewScheduler builds numCores cores, each with warpsPerCore warps of
// lanesPerWarp hardware threads, sharing one flat memory.
func NewScheduler(numCores, warpsPerCore, lanesPerWarp int, mem *memory.Memory) *Scheduler {
	s := &Scheduler{
		Cores:       make([]*core.Core, numCores),
		Breakpoints: make(map[uint32]bool),
		barrier:     make([]map[uint32]*barrierState, numCores),
	}
	for i := range s.Cores {
		s.Cores[i] = core.NewCore(warpsPerCore, lanesPerWarp, mem)
		s.barrier[i] = make(map[uint32]*barrierState)
	}
	return s
}

// Boot wakes warp 0 of core 0 at entry, the only warp running at
// startup; all others are woken by WSPAWN.
func (s *Scheduler) Boot(entry uint32) {
	w := s.Cores[0].Warps[0]
	w.PC = entry
	w.ActiveThreads = 1
	w.TMask[0] = true
	w.SupervisorMode = true
	w.Spawned = true
}

// Run drives every core concurrently until ctx is cancelled or every
// warp has retired.
func (s *Scheduler) Run(ctx context.Context) {
	for i := range s.Cores {
		s.wg.Add(1)
		go func(idx int) {
			defer s.wg.Done()
			s.runCore(ctx, idx)
		}(i)
	}
	s.wg.Wait()
}

func (s *Scheduler) runCore(ctx context.Context, idx int) {
	c := s.Cores[idx]
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !s.stepCore(idx, c) {
			return
		}
	}
}

// stepCore dispatches one instruction on each spawned warp of c, in
// warp index order. Returns false once no warp is spawned (the core has nothing left to
// run).
func (s *Scheduler) stepCore(idx int, c *core.Core) bool {
	anySpawned := false
	for _, w := range c.Warps {
		if !w.Spawned {
			continue
		}
		anySpawned = true
		if !s.dispatchOne(idx, w) {
			continue
		}
	}
	return anySpawned
}

// dispatchOne fetches, decodes, and executes one instruction for w.
// Returns false if w is parked at a barrier this tick.
func (s *Scheduler) dispatchOne(idx int, w *core.Warp) bool {
	raw, err := w.Core.Mem.ReadWord(w.PC &^ 3)
	if err != nil {
		slog.Error("fetch fault", "warp", w.ID, "pc", fmt.Sprintf("%#x", w.PC), "err", err)
		w.Spawned = false
		return true
	}

	inst, err := decode.Decode(raw)
	if err != nil {
		slog.Error("decode fault", "warp", w.ID, "pc", fmt.Sprintf("%#x", w.PC), "err", err)
		w.Spawned = false
		return true
	}

	w.PC += 4

	var trace core.Trace
	if err := core.Execute(inst, w, &trace); err != nil {
		slog.Error("execute fault", "warp", w.ID, "pc", fmt.Sprintf("%#x", w.PC-4), "err", err)
		w.Spawned = false
		return true
	}
	s.timers.advance(1)

	if inst.Op == isa.GPGPU && inst.Func3 == isa.FuncBARRIER {
		return s.arriveBarrier(idx, w)
	}
	return true
}

// StepWarp single-steps one instruction on Cores[coreIdx].Warps[warpIdx]
// for the console's "step" command. It returns false once that warp is
// no longer spawned.
func (s *Scheduler) StepWarp(coreIdx, warpIdx int) (bool, error) {
	if coreIdx < 0 || coreIdx >= len(s.Cores) {
		return false, fmt.Errorf("no such core: %d", coreIdx)
	}
	c := s.Cores[coreIdx]
	if warpIdx < 0 || warpIdx >= len(c.Warps) {
		return false, fmt.Errorf("no such warp: %d", warpIdx)
	}
	w := c.Warps[warpIdx]
	if !w.Spawned {
		return false, nil
	}
	s.dispatchOne(coreIdx, w)
	return w.Spawned, nil
}

// RunUntilBreak drives every core, round-robin and single-threaded so
// the console can inspect state between ticks, until ctx is cancelled,
// every warp retires, or any warp's PC matches s.Breakpoints.
func (s *Scheduler) RunUntilBreak(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		anyRunning := false
		for idx, c := range s.Cores {
			if s.stepCore(idx, c) {
				anyRunning = true
			}
		}
		if !anyRunning {
			return
		}

		for _, c := range s.Cores {
			for _, w := range c.Warps {
				if w.Spawned && s.Breakpoints[w.PC] {
					return
				}
			}
		}
	}
}

// arriveBarrier registers w's arrival at the barrier it just executed.
// Once every spawned warp on the core has arrived at the same PC, the
// rendezvous is marked released and every warp that arrived there
// proceeds, including the ones parked on an earlier visit: each
// collects its own release the next time the scheduler dispatches it,
// rather than all being woken in lockstep by the warp that completed
// the tally.
func (s *Scheduler) arriveBarrier(idx int, w *core.Warp) bool {
	c := s.Cores[idx]
	pc := w.PC - 4

	st := s.barrier[idx][pc]
	if st == nil {
		st = &barrierState{arrived: make(map[int]bool)}
		s.barrier[idx][pc] = st
	}

	if st.released {
		delete(st.arrived, w.ID)
		if len(st.arrived) == 0 {
			delete(s.barrier[idx], pc)
		}
		return true
	}

	st.arrived[w.ID] = true

	spawned := 0
	for _, other := range c.Warps {
		if other.Spawned {
			spawned++
		}
	}
	if len(st.arrived) >= spawned {
		st.released = true
		delete(st.arrived, w.ID)
		if len(st.arrived) == 0 {
			delete(s.barrier[idx], pc)
		}
		return true
	}

	w.PC = pc
	return false
}

// barrierState tracks one in-flight rendezvous at a given PC: which
// warp IDs have arrived, and whether the tally has completed.
type barrierState struct {
	arrived  map[int]bool
	released bool
}

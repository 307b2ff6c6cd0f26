/*
   gpsim - Scheduler round-robin and barrier rendezvous tests.

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

package sim

import (
	"testing"

	"github.com/rcornwell/gpsim/emu/memory"
)

// encodeI builds an I-type word.
func encodeI(opcode, rd, func3, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xfff)<<20 | rs1<<15 | func3<<12 | rd<<7 | opcode
}

const (
	majorOpI   = 0b0010011
	majorTRAP  = 0b1111111
	majorGPGPU = 0b0101011
)

// TestStepWarpAdvancesPC checks a single StepWarp call fetches,
// decodes, executes one instruction and advances PC by 4.
func TestStepWarpAdvancesPC(t *testing.T) {
	mem := memory.New(1 << 16)
	// addi x1, x0, 5 at address 0.
	if err := mem.WriteWord(0, encodeI(majorOpI, 1, 0, 0, 5), 0xffffffff); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}

	s := NewScheduler(1, 1, 4, mem)
	s.Boot(0)

	running, err := s.StepWarp(0, 0)
	if err != nil {
		t.Fatalf("StepWarp: %v", err)
	}
	if !running {
		t.Fatalf("warp halted unexpectedly")
	}

	w := s.Cores[0].Warps[0]
	if w.PC != 4 {
		t.Errorf("PC = %#x, want 4", w.PC)
	}
	if w.Reg[0][1] != 5 {
		t.Errorf("x1 = %d, want 5", w.Reg[0][1])
	}
}

// TestStepWarpHaltsOnTrap checks TRAP retires the warp.
func TestStepWarpHaltsOnTrap(t *testing.T) {
	mem := memory.New(1 << 16)
	if err := mem.WriteWord(0, majorTRAP, 0xffffffff); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}

	s := NewScheduler(1, 1, 4, mem)
	s.Boot(0)

	running, err := s.StepWarp(0, 0)
	if err != nil {
		t.Fatalf("StepWarp: %v", err)
	}
	if running {
		t.Errorf("warp still running after TRAP")
	}
}

// TestBarrierRendezvousParksUntilAllArrive checks that a warp executing
// BARRIER is rolled back and re-arrives, only proceeding once every
// spawned warp on the core has reached the same PC.
func TestBarrierRendezvousParksUntilAllArrive(t *testing.T) {
	mem := memory.New(1 << 16)
	barrierWord := uint32(4<<12) | majorGPGPU // func3 = FuncBARRIER(4), rd/rs fields zero.
	if err := mem.WriteWord(0, barrierWord, 0xffffffff); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}

	s := NewScheduler(1, 2, 4, mem)
	s.Boot(0)
	// Manually spawn warp 1 at the same barrier instruction.
	w1 := s.Cores[0].Warps[1]
	w1.PC = 0
	w1.ActiveThreads = 1
	w1.TMask[0] = true
	w1.Spawned = true

	w0 := s.Cores[0].Warps[0]

	// Warp 0 arrives first: must park (PC rolled back to the barrier).
	s.dispatchOne(0, w0)
	if w0.PC != 0 {
		t.Fatalf("warp 0 PC = %#x, want 0 (parked at barrier)", w0.PC)
	}

	// Warp 1 arrives: rendezvous completes, both proceed past it.
	s.dispatchOne(0, w1)
	if w1.PC != 4 {
		t.Errorf("warp 1 PC = %#x, want 4 (released past barrier)", w1.PC)
	}

	// Warp 0 re-arrives at the barrier and now passes straight through.
	s.dispatchOne(0, w0)
	if w0.PC != 4 {
		t.Errorf("warp 0 PC = %#x, want 4 (released past barrier)", w0.PC)
	}
}

// TestScheduleInterruptDelivers checks the timer list delivers an
// interrupt to the target warp once enough cycles have advanced.
func TestScheduleInterruptDelivers(t *testing.T) {
	mem := memory.New(1 << 16)
	s := NewScheduler(1, 1, 4, mem)
	w := s.Cores[0].Warps[0]

	s.ScheduleInterrupt(w, 3, 7)
	s.timers.advance(1)
	s.timers.advance(1)
	if w.PendingInterrupt != -1 {
		t.Fatalf("interrupt delivered early: %d", w.PendingInterrupt)
	}
	s.timers.advance(1)
	if w.PendingInterrupt != 7 {
		t.Errorf("PendingInterrupt = %d, want 7", w.PendingInterrupt)
	}
}

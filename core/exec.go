/*
   gpsim - Instruction execution dispatch.

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

// Package core implements the SIMT execution dispatch for the GPGPU
// core: per-opcode RV32IM semantics over a warp of lock-stepped
// threads, the thread-mask/dominator-stack divergence machinery, and
// the sentinel-PC host-trap bridge.
package core

import (
	"fmt"
	"log/slog"

	"github.com/rcornwell/gpsim/emu/memory"
	"github.com/rcornwell/gpsim/isa"
)

// dispatch holds the per-instruction mutable state threaded through
// the lane loop. It exists so opcode handlers don't need a dozen
// pointer parameters.
type dispatch struct {
	inst *isa.Instruction
	w    *Warp
	t    *Trace

	nextActiveThreads int
	nextPC            uint32
	pcSet             bool
	sjOnce            bool
	curPC             uint32
}

// Execute advances w by one instruction. inst is assumed already
// decoded and addressed at w.PC-4 (the core's convention: PC always
// points one word past the instruction being dispatched).
func Execute(inst *isa.Instruction, w *Warp, trace *Trace) error {
	trace.reset()

	if isa.Table[inst.Op].Privileged && !w.SupervisorMode {
		w.Interrupt(3)
		return nil
	}

	d := &dispatch{
		inst:              inst,
		w:                 w,
		t:                 trace,
		nextActiveThreads: w.ActiveThreads,
		nextPC:            w.PC,
		curPC:             w.PC - 4,
	}

	if d.curPC == memory.TrapSentinelPC {
		if err := hostTrap(w); err != nil {
			slog.Error("host trap failed", "pc", fmt.Sprintf("%#x", d.curPC), "err", err)
		}
	}

	for t := 0; t < w.ActiveThreads && t < MaxThreads; t++ {
		if !w.TMask[t] {
			continue
		}
		if t != 0 && warpScoped(inst) {
			continue
		}

		w.Insts++

		if err := d.dispatchLane(t); err != nil {
			return err
		}
	}

	w.ActiveThreads = d.nextActiveThreads
	if d.pcSet {
		w.PC = d.nextPC
	}
	if w.ActiveThreads > w.Core.Lanes {
		return fmt.Errorf("warp %d overcommitted: %d active threads for %d lanes", w.ID, w.ActiveThreads, w.Core.Lanes)
	}
	return nil
}

func warpScoped(inst *isa.Instruction) bool {
	if inst.Op != isa.GPGPU {
		return false
	}
	switch inst.Func3 {
	case isa.FuncTMC, isa.FuncWSPAWN, isa.FuncBARRIER:
		return true
	default:
		return false
	}
}

func (d *dispatch) dispatchLane(t int) error {
	switch d.inst.Op {
	case isa.NOP, isa.FENCE:
		return nil
	case isa.OpR:
		return d.execR(t)
	case isa.OpI:
		return d.execI(t)
	case isa.OpL:
		return d.execL(t)
	case isa.OpS:
		return d.execS(t)
	case isa.OpB:
		return d.execB(t)
	case isa.LUI:
		d.setReg(t, d.inst.RDest, uint32(d.inst.Imm)<<12&0xFFFFF000)
		return nil
	case isa.AUIPC:
		d.setReg(t, d.inst.RDest, (uint32(d.inst.Imm)<<12&0xFFFFF000)+d.curPC)
		return nil
	case isa.JAL:
		return d.execJAL(t)
	case isa.JALR:
		return d.execJALR(t)
	case isa.SYS:
		return d.execSYS(t)
	case isa.TRAP:
		d.nextActiveThreads = 0
		d.w.Spawned = false
		d.w.Interrupt(0)
		return nil
	case isa.PJ:
		if d.w.Reg[t][d.inst.RSrc[0]] != 0 && !d.pcSet {
			d.nextPC = d.w.Reg[t][d.inst.RSrc[1]]
			d.pcSet = true
		}
		return nil
	case isa.GPGPU:
		return d.execGPGPU(t)
	default:
		return fmt.Errorf("unknown opcode %d at pc %#x", d.inst.Op, d.curPC)
	}
}

// setReg writes rd for lane t, discarding writes to register 0.
func (d *dispatch) setReg(t int, rd uint8, v uint32) {
	if rd == 0 {
		return
	}
	d.w.Reg[t][rd] = v
}

func (d *dispatch) src(t int, i int) uint32 {
	return d.w.Reg[t][d.inst.RSrc[i]]
}

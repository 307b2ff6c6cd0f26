/*
   gpsim - SIMT control: thread mask, dominator stack, warp spawn.

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

package core

import (
	"fmt"

	"github.com/rcornwell/gpsim/isa"
)

func (d *dispatch) execGPGPU(t int) error {
	if d.sjOnce {
		return nil
	}
	d.sjOnce = true

	switch d.inst.Func3 {
	case isa.FuncTMC:
		return d.execTMC(t)
	case isa.FuncWSPAWN:
		return d.execWSPAWN(t)
	case isa.FuncSPLIT:
		return d.execSPLIT()
	case isa.FuncJOIN:
		return d.execJOIN()
	case isa.FuncBARRIER:
		d.t.StallWarp = true
		return nil
	default:
		return fmt.Errorf("unknown gpgpu func3 %d at pc %#x", d.inst.Func3, d.curPC)
	}
}

func (d *dispatch) execTMC(t int) error {
	n := int(d.src(t, 0))
	d.nextActiveThreads = n
	for i := range d.w.TMask {
		d.w.TMask[i] = i < n
	}
	if n == 0 {
		d.w.Spawned = false
	}
	d.t.StallWarp = true
	return nil
}

func (d *dispatch) execWSPAWN(t int) error {
	n := int(d.src(t, 0))
	start := d.src(t, 1)
	d.t.Wspawn = true

	for i := 1; i < n; i++ {
		if i >= len(d.w.Core.Warps) {
			break
		}
		sib := d.w.Core.Warps[i]
		sib.PC = start
		sib.ActiveThreads = 1
		for lane := range sib.TMask {
			sib.TMask[lane] = lane == 0
		}
		sib.SupervisorMode = false
		sib.Spawned = true
	}
	return nil
}

func (d *dispatch) execSPLIT() error {
	predIdx := d.inst.Pred
	w := d.w

	var seen, uni bool
	var firstVal bool
	for i := 0; i < w.ActiveThreads && i < MaxThreads; i++ {
		if !w.TMask[i] {
			continue
		}
		v := w.Pred[i][predIdx]
		if !seen {
			firstVal, seen, uni = v, true, true
			continue
		}
		if v != firstVal {
			uni = false
		}
	}
	if !seen {
		return fmt.Errorf("split on empty active mask at pc %#x", d.curPC)
	}

	if uni {
		w.DomStack = append(w.DomStack, DomStackEntry{
			TMask:       w.TMask,
			Uni:         true,
			FallThrough: true,
		})
		return nil
	}

	restore := DomStackEntry{TMask: w.TMask, FallThrough: true}

	var taken [MaxThreads]bool
	for i := 0; i < w.ActiveThreads && i < MaxThreads; i++ {
		if w.TMask[i] && w.Pred[i][predIdx] {
			taken[i] = true
		}
	}
	elseFrame := DomStackEntry{TMask: taken, PC: d.w.PC, Uni: false, FallThrough: false}

	w.DomStack = append(w.DomStack, restore, elseFrame)

	for i := range w.TMask {
		w.TMask[i] = !taken[i] && w.TMask[i]
	}
	d.t.StallWarp = true
	return nil
}

func (d *dispatch) execJOIN() error {
	w := d.w
	if len(w.DomStack) == 0 {
		return fmt.Errorf("join with empty dominator stack at pc %#x", d.curPC)
	}
	top := w.DomStack[len(w.DomStack)-1]
	w.DomStack = w.DomStack[:len(w.DomStack)-1]

	if !top.Uni && !top.FallThrough && !d.pcSet {
		d.nextPC = top.PC
		d.pcSet = true
	}
	w.TMask = top.TMask
	return nil
}

/*
   gpsim - Load/store opcode semantics.

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
	"os"

	"github.com/rcornwell/gpsim/emu/memory"
)

// Load/store func3 width+sign codes.
const (
	widthByte  = 0
	widthHalf  = 1
	widthWord  = 2
	widthByteU = 4
	widthHalfU = 5
)

func (d *dispatch) execL(t int) error {
	addr := d.src(t, 0) + uint32(d.inst.Imm)
	d.t.IsLoad = true
	d.t.MemAddresses[t] = addr

	var width int
	switch d.inst.Func3 {
	case widthByte, widthByteU:
		width = 1
	case widthHalf, widthHalfU:
		width = 2
	default:
		width = 4
	}

	v, err := d.w.Core.Mem.Read(addr, width)
	if err != nil {
		return fmt.Errorf("load fault at pc %#x: %w", d.curPC, err)
	}

	switch d.inst.Func3 {
	case widthByte:
		v = uint32(int32(int8(v)))
	case widthHalf:
		v = uint32(int32(int16(v)))
	}
	d.setReg(t, d.inst.RDest, v)
	return nil
}

func (d *dispatch) execS(t int) error {
	addr := d.src(t, 0) + uint32(d.inst.Imm)
	d.t.IsStore = true
	d.t.MemAddresses[t] = addr

	if addr == memory.CharOutAddr && t == 0 {
		fmt.Fprintf(os.Stderr, "%c", byte(d.src(t, 1)))
		d.w.Stores++
		return nil
	}

	var width int
	switch d.inst.Func3 {
	case widthByte:
		width = 1
	case widthHalf:
		width = 2
	default:
		width = 4
	}

	if err := d.w.Core.Mem.Write(addr, d.src(t, 1), width); err != nil {
		return fmt.Errorf("store fault at pc %#x: %w", d.curPC, err)
	}
	d.w.Stores++
	return nil
}

/*
   gpsim - Branch, jump, and CSR opcode semantics.

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

// Branch func3 codes.
const (
	funcBEQ = iota
	funcBNE
	_
	_
	funcBLT
	funcBGE
	funcBLTU
	funcBGEU
)

// CSR immediates read by SYS. Only these two are implemented; the
// original simulator's broader CSR space is out of scope for this core.
const (
	csrThreadID = 0x20
	csrWarpID   = 0x21
)

func (d *dispatch) execB(t int) error {
	a := d.src(t, 0)
	b := d.src(t, 1)
	var taken bool
	switch d.inst.Func3 {
	case funcBEQ:
		taken = a == b
	case funcBNE:
		taken = a != b
	case funcBLT:
		taken = int32(a) < int32(b)
	case funcBGE:
		taken = int32(a) >= int32(b)
	case funcBLTU:
		taken = a < b
	case funcBGEU:
		taken = a >= b
	}
	d.t.StallWarp = true
	if taken && !d.pcSet {
		d.nextPC = d.curPC + uint32(d.inst.Imm)
		d.pcSet = true
	}
	return nil
}

func (d *dispatch) execJAL(t int) error {
	if !d.pcSet {
		d.nextPC = d.curPC + uint32(d.inst.Imm)
		d.pcSet = true
	}
	d.setReg(t, d.inst.RDest, d.w.PC)
	return nil
}

func (d *dispatch) execJALR(t int) error {
	if !d.pcSet {
		d.nextPC = d.src(t, 0) + uint32(d.inst.Imm)
		d.pcSet = true
	}
	d.setReg(t, d.inst.RDest, d.w.PC)
	return nil
}

func (d *dispatch) execSYS(t int) error {
	switch uint32(d.inst.Imm) {
	case csrThreadID:
		d.setReg(t, d.inst.RDest, uint32(t))
	case csrWarpID:
		d.setReg(t, d.inst.RDest, uint32(d.w.ID))
	default:
		// Unimplemented CSR: a no-op, matching the original.
	}
	return nil
}

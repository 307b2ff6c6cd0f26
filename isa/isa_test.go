/*
   gpsim - Opcode table sanity checks.

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

package isa

import "testing"

func TestTableCoversEveryOpcode(t *testing.T) {
	for op := NOP; op < numOpcodes; op++ {
		if Table[op].Mnemonic == "" {
			t.Errorf("opcode %d has no mnemonic", op)
		}
	}
}

func TestPrivilegedOpcodes(t *testing.T) {
	cases := map[Opcode]bool{
		NOP:   false,
		OpR:   false,
		TRAP:  true,
		GPGPU: true,
	}
	for op, want := range cases {
		if got := Table[op].Privileged; got != want {
			t.Errorf("Table[%d].Privileged = %v, want %v", op, got, want)
		}
	}
}

func TestInstructionString(t *testing.T) {
	inst := Instruction{Op: GPGPU}
	if got := inst.String(); got != "gpgpu" {
		t.Errorf("String() = %q, want %q", got, "gpgpu")
	}
}

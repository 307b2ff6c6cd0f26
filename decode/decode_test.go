/*
   gpsim - Decoder round-trip checks.

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

package decode

import (
	"testing"

	"github.com/rcornwell/gpsim/isa"
)

// encodeR builds an R-type word: func7 rs2 rs1 func3 rd opcode.
func encodeR(opcode, rd, func3, rs1, rs2, func7 uint32) uint32 {
	return (func7 << 25) | (rs2 << 20) | (rs1 << 15) | (func3 << 12) | (rd << 7) | opcode
}

func TestDecodeOpR(t *testing.T) {
	// add x3, x1, x2
	word := encodeR(majorOpR, 3, 0, 1, 2, 0)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != isa.OpR {
		t.Errorf("Op = %v, want OpR", inst.Op)
	}
	if inst.RDest != 3 || inst.RSrc[0] != 1 || inst.RSrc[1] != 2 {
		t.Errorf("rd/rs1/rs2 = %d/%d/%d, want 3/1/2", inst.RDest, inst.RSrc[0], inst.RSrc[1])
	}
	if !inst.RDestPresent {
		t.Errorf("RDestPresent = false, want true")
	}
}

func TestDecodeOpIImmSignExtend(t *testing.T) {
	// addi x1, x0, -1  (imm field all ones)
	word := (uint32(0xfff) << 20) | (0 << 15) | (0 << 12) | (1 << 7) | majorOpI
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Imm != -1 {
		t.Errorf("Imm = %d, want -1", inst.Imm)
	}
}

func TestDecodeBranchImmBits(t *testing.T) {
	// beq with imm = 8: bit layout spreads imm[12|10:5|4:1|11] across the word.
	imm := uint32(8)
	bit12 := (imm >> 12) & 1
	bit11 := (imm >> 11) & 1
	bit10_5 := (imm >> 5) & 0x3f
	bit4_1 := (imm >> 1) & 0xf
	word := (bit12 << 31) | (bit10_5 << 25) | (2 << 20) | (1 << 15) |
		(0 << 12) | (bit4_1 << 8) | (bit11 << 7) | majorOpB
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != isa.OpB {
		t.Errorf("Op = %v, want OpB", inst.Op)
	}
	if inst.Imm != 8 {
		t.Errorf("Imm = %d, want 8", inst.Imm)
	}
}

func TestDecodeGPGPUPred(t *testing.T) {
	// split predicate register 2: bits 27:25 = 010
	word := (uint32(2) << 25) | (3 << 12) | majorGPGPU
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != isa.GPGPU {
		t.Errorf("Op = %v, want GPGPU", inst.Op)
	}
	if inst.Pred != 2 {
		t.Errorf("Pred = %d, want 2", inst.Pred)
	}
	if inst.Func3 != 3 {
		t.Errorf("Func3 = %d, want 3", inst.Func3)
	}
}

func TestDecodeUnknownMajorOpcode(t *testing.T) {
	if _, err := Decode(0b1111010); err == nil {
		t.Errorf("expected error for unknown major opcode")
	}
}

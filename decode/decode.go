/*
   gpsim - Minimal RV32IM + GPGPU instruction decoder.

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

// Package decode turns a raw 32-bit guest word into an isa.Instruction.
// Decoding is explicitly not the interesting part of this simulator;
// this is a compact, standard RV32 field layout plus the GPGPU major
// opcode, enough to drive core.Execute end to end.
package decode

import (
	"fmt"

	"github.com/rcornwell/gpsim/isa"
)

// Standard RV32 major opcode field (bits 6:0).
const (
	majorOpR     = 0b0110011
	majorOpI     = 0b0010011
	majorOpL     = 0b0000011
	majorOpS     = 0b0100011
	majorOpB     = 0b1100011
	majorLUI     = 0b0110111
	majorAUIPC   = 0b0010111
	majorJAL     = 0b1101111
	majorJALR    = 0b1100111
	majorSYS     = 0b1110011
	majorFENCE   = 0b0001111
	majorTRAP    = 0b1111111
	majorPJ      = 0b0001011
	majorGPGPU   = 0b0101011
)

func bits(word uint32, hi, lo uint) uint32 {
	return (word >> lo) & ((1 << (hi - lo + 1)) - 1)
}

func signExt(v uint32, bit uint) int32 {
	shift := 31 - bit
	return int32(v<<shift) >> shift
}

// Decode extracts an isa.Instruction from one guest word.
func Decode(word uint32) (*isa.Instruction, error) {
	major := bits(word, 6, 0)
	inst := &isa.Instruction{
		Func3: uint8(bits(word, 14, 12)),
		Func7: uint8(bits(word, 31, 25)),
		RDest: uint8(bits(word, 11, 7)),
	}
	inst.RSrc[0] = uint8(bits(word, 19, 15))
	inst.RSrc[1] = uint8(bits(word, 24, 20))

	switch major {
	case majorOpR:
		inst.Op = isa.OpR
		inst.RDestPresent = true
	case majorOpI:
		inst.Op = isa.OpI
		inst.RDestPresent = true
		inst.Imm = signExt(bits(word, 31, 20), 11)
		inst.ImmPresent = true
	case majorOpL:
		inst.Op = isa.OpL
		inst.RDestPresent = true
		inst.Imm = signExt(bits(word, 31, 20), 11)
		inst.ImmPresent = true
	case majorOpS:
		inst.Op = isa.OpS
		imm := (bits(word, 31, 25) << 5) | bits(word, 11, 7)
		inst.Imm = signExt(imm, 11)
		inst.ImmPresent = true
	case majorOpB:
		inst.Op = isa.OpB
		imm := (bits(word, 31, 31) << 12) | (bits(word, 7, 7) << 11) |
			(bits(word, 30, 25) << 5) | (bits(word, 11, 8) << 1)
		inst.Imm = signExt(imm, 12)
		inst.ImmPresent = true
	case majorLUI:
		inst.Op = isa.LUI
		inst.RDestPresent = true
		inst.Imm = int32(bits(word, 31, 12))
		inst.ImmPresent = true
	case majorAUIPC:
		inst.Op = isa.AUIPC
		inst.RDestPresent = true
		inst.Imm = int32(bits(word, 31, 12))
		inst.ImmPresent = true
	case majorJAL:
		inst.Op = isa.JAL
		inst.RDestPresent = true
		imm := (bits(word, 31, 31) << 20) | (bits(word, 19, 12) << 12) |
			(bits(word, 20, 20) << 11) | (bits(word, 30, 21) << 1)
		inst.Imm = signExt(imm, 20)
		inst.ImmPresent = true
	case majorJALR:
		inst.Op = isa.JALR
		inst.RDestPresent = true
		inst.Imm = signExt(bits(word, 31, 20), 11)
		inst.ImmPresent = true
	case majorSYS:
		inst.Op = isa.SYS
		inst.RDestPresent = true
		inst.Imm = int32(bits(word, 31, 20))
		inst.ImmPresent = true
	case majorFENCE:
		inst.Op = isa.FENCE
	case majorTRAP:
		inst.Op = isa.TRAP
	case majorPJ:
		inst.Op = isa.PJ
	case majorGPGPU:
		inst.Op = isa.GPGPU
		inst.RDestPresent = true
		inst.Pred = uint8(bits(word, 27, 25))
	default:
		return nil, fmt.Errorf("unknown major opcode %#07b in word %#08x", major, word)
	}

	return inst, nil
}

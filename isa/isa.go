/*
   gpsim - RV32IM + GPGPU opcode table.

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

// Opcode identifies the major instruction group a decoded word belongs
// to: a condensed group index: func3/func7 further select behavior
// within a group.
type Opcode uint8

const (
	NOP Opcode = iota
	OpR        // Register-register ALU and RV32M.
	OpL        // Load.
	OpI        // Register-immediate ALU.
	OpS        // Store.
	OpB        // Branch.
	LUI
	AUIPC
	JAL
	JALR
	SYS
	TRAP
	FENCE
	PJ    // Predicated indirect jump.
	GPGPU // TMC, WSPAWN, SPLIT, JOIN, BARRIER.
	numOpcodes
)

// GPGPU func3 sub-opcodes.
const (
	FuncTMC = 0 + iota
	FuncWSPAWN
	FuncSPLIT
	FuncJOIN
	FuncBARRIER
)

// RV32M is func7 bit 0 of an OpR instruction.
const MulDivBit = 0x01

// OpInfo carries non-semantic metadata about an opcode: how to print
// it and whether it requires supervisor mode.
type OpInfo struct {
	Mnemonic   string
	Privileged bool
}

// Table is indexed by Opcode and describes every entry in the enum.
var Table = [numOpcodes]OpInfo{
	NOP:   {"nop", false},
	OpR:   {"op.r", false},
	OpL:   {"load", false},
	OpI:   {"op.i", false},
	OpS:   {"store", false},
	OpB:   {"branch", false},
	LUI:   {"lui", false},
	AUIPC: {"auipc", false},
	JAL:   {"jal", false},
	JALR:  {"jalr", false},
	SYS:   {"sys", false},
	TRAP:  {"trap", true},
	FENCE: {"fence", false},
	PJ:    {"pj", false},
	GPGPU: {"gpgpu", true},
}

// Instruction is the decoded form of one guest word, the input to
// core.Execute. The decoder is responsible for sign-extending Imm.
type Instruction struct {
	Op    Opcode
	Func3 uint8
	Func7 uint8

	RDest        uint8
	RDestPresent bool

	RSrc [2]uint8

	PSrc       [2]uint8
	PDest      uint8
	Predicated bool
	PredPresent bool

	// Pred names the predicate register SPLIT tests.
	Pred uint8

	Imm        int32
	ImmPresent bool
}

// String prints the instruction's mnemonic, matching the original
// simulator's disassembly: informational only, no operands.
func (i Instruction) String() string {
	return Table[i.Op].Mnemonic
}

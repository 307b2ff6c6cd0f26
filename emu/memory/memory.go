package memory

/*
 * gpsim - Guest memory and host-trap scratch buffers.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import "fmt"

// Fixed addresses recognized by the memory adapter. These do not back
// onto regular guest RAM; they are scratch regions used by the
// host-trap bridge and the character-output sink.
const (
	TrapSentinelPC  uint32 = 0x70000000 // PC that triggers a host-trap dispatch.
	TrapReadBase    uint32 = 0x71000000 // Host-trap request buffer.
	TrapWriteBase   uint32 = 0x72000000 // Host-trap response buffer.
	TrapBufSize     uint32 = 1 << 16    // Size of each trap scratch buffer.
	CharOutAddr     uint32 = 0x00010000 // Byte store here prints to stderr.
)

// Memory is the flat guest address space shared by all cores and warps
// in a simulation run.
type Memory struct {
	mem     []uint32 // Word-addressed guest RAM, mem[addr>>2].
	size    uint32   // Size of mem in bytes.
	readBuf [TrapBufSize]byte
	wrtBuf  [TrapBufSize]byte
}

// New returns a Memory sized to hold sizeBytes of guest RAM, rounded
// up to a whole number of words.
func New(sizeBytes uint32) *Memory {
	words := (sizeBytes + 3) / 4
	return &Memory{
		mem:  make([]uint32, words),
		size: words * 4,
	}
}

// SetSize resizes guest RAM in place, discarding contents.
func (m *Memory) SetSize(sizeBytes uint32) {
	words := (sizeBytes + 3) / 4
	m.mem = make([]uint32, words)
	m.size = words * 4
}

// Size returns the size of guest RAM in bytes.
func (m *Memory) Size() uint32 {
	return m.size
}

// Translate is the identity map. There is no MMU in this core; the
// hook exists so the memory-access trace can carry a "physical"
// address alongside the effective one, same as an adapter with real
// translation would.
func (m *Memory) Translate(addr uint32) uint32 {
	return addr
}

// ReadWord reads one aligned 32-bit word from guest RAM.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	if addr >= m.size {
		return 0, fmt.Errorf("memory read out of range: %#x", addr)
	}
	return m.mem[addr>>2], nil
}

// WriteWord writes one aligned 32-bit word to guest RAM, optionally
// masked to only some bytes.
func (m *Memory) WriteWord(addr, data, mask uint32) error {
	if addr >= m.size {
		return fmt.Errorf("memory write out of range: %#x", addr)
	}
	idx := addr >> 2
	m.mem[idx] = (m.mem[idx] &^ mask) | (data & mask)
	return nil
}

// trapByteSlice maps addr to the trap buffer it falls in and the offset
// within it; ok is false when addr lies outside both the
// TrapReadBase and TrapWriteBase ranges.
func (m *Memory) trapByteSlice(addr uint32) (buf *[TrapBufSize]byte, off uint32, ok bool) {
	switch {
	case addr >= TrapReadBase && addr < TrapReadBase+TrapBufSize:
		return &m.readBuf, addr - TrapReadBase, true
	case addr >= TrapWriteBase && addr < TrapWriteBase+TrapBufSize:
		return &m.wrtBuf, addr - TrapWriteBase, true
	default:
		return nil, 0, false
	}
}

// ReadTrapByte reads a single byte from one of the two host-trap
// scratch buffers.
func (m *Memory) ReadTrapByte(addr uint32) (byte, error) {
	buf, off, ok := m.trapByteSlice(addr)
	if !ok {
		return 0, fmt.Errorf("address %#x is not a trap buffer address", addr)
	}
	return buf[off], nil
}

// WriteTrapByte writes a single byte into one of the two host-trap
// scratch buffers.
func (m *Memory) WriteTrapByte(addr uint32, v byte) error {
	buf, off, ok := m.trapByteSlice(addr)
	if !ok {
		return fmt.Errorf("address %#x is not a trap buffer address", addr)
	}
	buf[off] = v
	return nil
}

// Read reads a byteWidth-wide value (1, 2 or 4) at a possibly
// unaligned address, zero-extended into the low bits of the result.
func (m *Memory) Read(addr uint32, byteWidth int) (uint32, error) {
	word, err := m.ReadWord(addr &^ 3)
	if err != nil {
		return 0, err
	}
	shift := (addr & 3) * 8
	word >>= shift
	switch byteWidth {
	case 1:
		return word & 0xff, nil
	case 2:
		return word & 0xffff, nil
	case 4:
		return word, nil
	default:
		return 0, fmt.Errorf("invalid memory access width: %d", byteWidth)
	}
}

// Write stores a byteWidth-wide value (1, 2 or 4) at a possibly
// unaligned address.
func (m *Memory) Write(addr uint32, value uint32, byteWidth int) error {
	base := addr &^ 3
	shift := (addr & 3) * 8
	var mask uint32
	switch byteWidth {
	case 1:
		mask = 0xff
	case 2:
		mask = 0xffff
	case 4:
		mask = 0xffffffff
	default:
		return fmt.Errorf("invalid memory access width: %d", byteWidth)
	}
	return m.WriteWord(base, value<<shift, mask<<shift)
}

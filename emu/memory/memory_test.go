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

import (
	"testing"
)

func TestSetSize(t *testing.T) {
	m := New(1024)
	if m.Size() != 1024 {
		t.Errorf("Size not correct got: %d expected: %d", m.Size(), 1024)
	}

	m.SetSize(4096)
	if m.Size() != 4096 {
		t.Errorf("Size after resize not correct got: %d expected: %d", m.Size(), 4096)
	}
}

func TestReadWriteWord(t *testing.T) {
	m := New(4096)
	if err := m.WriteWord(0x100, 0x12345678, 0xffffffff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := m.ReadWord(0x100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x12345678 {
		t.Errorf("got: %#x expected: %#x", v, 0x12345678)
	}
}

func TestReadWriteOutOfRange(t *testing.T) {
	m := New(4096)
	if _, err := m.ReadWord(0x10000); err == nil {
		t.Errorf("expected error reading out of range address")
	}
	if err := m.WriteWord(0x10000, 0, 0xffffffff); err == nil {
		t.Errorf("expected error writing out of range address")
	}
}

func TestByteHalfWidths(t *testing.T) {
	m := New(4096)
	if err := m.Write(0x200, 0xab, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := m.Read(0x200, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0xab {
		t.Errorf("byte got: %#x expected: %#x", v, 0xab)
	}

	if err := m.Write(0x204, 0xdead, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err = m.Read(0x204, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0xdead {
		t.Errorf("half got: %#x expected: %#x", v, 0xdead)
	}
}

func TestUnalignedAccess(t *testing.T) {
	m := New(4096)
	if err := m.WriteWord(0x300, 0x11223344, 0xffffffff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := m.Read(0x301, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x33 {
		t.Errorf("got: %#x expected: %#x", v, 0x33)
	}
}

func TestTrapBuffers(t *testing.T) {
	m := New(4096)
	if err := m.WriteTrapByte(TrapReadBase+4, 0x42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := m.ReadTrapByte(TrapReadBase + 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x42 {
		t.Errorf("got: %#x expected: %#x", v, 0x42)
	}

	if _, err := m.ReadTrapByte(0x100); err == nil {
		t.Errorf("expected error reading non-trap address as trap buffer")
	}
}

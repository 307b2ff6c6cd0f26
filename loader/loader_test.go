/*
   gpsim - Flat image loader tests.

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

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rcornwell/gpsim/emu/memory"
)

func TestLoadFlatWordAligned(t *testing.T) {
	mem := memory.New(1 << 12)
	image := []byte{0xef, 0xbe, 0xad, 0xde, 0x01}

	if err := LoadFlat(mem, 0x100, image); err != nil {
		t.Fatalf("LoadFlat: %v", err)
	}

	w0, err := mem.ReadWord(0x100)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if w0 != 0xdeadbeef {
		t.Errorf("word 0 = %#x, want 0xdeadbeef", w0)
	}

	w1, err := mem.ReadWord(0x104)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if w1 != 0x00000001 {
		t.Errorf("word 1 = %#x, want 0x00000001 (zero padded)", w1)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3, 4}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mem := memory.New(1 << 12)
	if err := LoadFile(mem, 0, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	w, err := mem.ReadWord(0)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if w != 0x04030201 {
		t.Errorf("word = %#x, want 0x04030201", w)
	}
}

func TestLoadFileMissing(t *testing.T) {
	mem := memory.New(1 << 12)
	if err := LoadFile(mem, 0, "/nonexistent/path/image.bin"); err == nil {
		t.Errorf("expected error for missing file")
	}
}

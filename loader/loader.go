/*
   gpsim - Flat binary image loader.

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

// Package loader copies a flat program image into guest memory. A
// real ELF loader is out of scope for this core; this is the minimal
// stand-in needed to get a .text/.data blob into simulated RAM.
package loader

import (
	"fmt"
	"os"

	"github.com/rcornwell/gpsim/emu/memory"
)

// LoadFlat copies image into mem starting at base, word at a time.
// image is padded with zero bytes up to the next word boundary.
func LoadFlat(mem *memory.Memory, base uint32, image []byte) error {
	for off := 0; off < len(image); off += 4 {
		var word uint32
		for i := 0; i < 4 && off+i < len(image); i++ {
			word |= uint32(image[off+i]) << (8 * i)
		}
		if err := mem.WriteWord(base+uint32(off), word, 0xffffffff); err != nil {
			return fmt.Errorf("loading image at %#x: %w", base+uint32(off), err)
		}
	}
	return nil
}

// LoadFile reads path and loads it as a flat image at base.
func LoadFile(mem *memory.Memory, base uint32, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading image %s: %w", path, err)
	}
	return LoadFlat(mem, base, data)
}

/*
   gpsim - Sentinel-PC host-trap bridge.

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
	"log/slog"
	"syscall"
	"unsafe"

	"github.com/rcornwell/gpsim/emu/memory"
)

// Host-trap command tags, matching the original simulator. Only
// write and fstat are implemented; the rest log and return untouched,
// same as the original's "not supported yet" branches.
const (
	cmdClose  = 1
	cmdIsatty = 2
	cmdLseek  = 3
	cmdRead   = 4
	cmdWrite  = 5
	cmdFstat  = 6
)

// bufReader walks one of the two fixed trap buffers byte by byte, the
// wire format the original simulator uses: no bulk word copies.
type bufReader struct {
	mem  *memory.Memory
	base uint32
	off  uint32
}

func (r *bufReader) readWord() (uint32, error) {
	var v uint32
	for i := uint32(0); i < 4; i++ {
		b, err := r.mem.ReadTrapByte(r.base + r.off + i)
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << (8 * i)
	}
	r.off += 4
	return v, nil
}

func (r *bufReader) readBlob() ([]byte, error) {
	n, err := r.readWord()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	for i := uint32(0); i < n; i++ {
		b, err := r.mem.ReadTrapByte(r.base + r.off + i)
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	r.off += n
	return buf, nil
}

type bufWriter struct {
	mem  *memory.Memory
	base uint32
	off  uint32
}

func (w *bufWriter) writeWord(v uint32) error {
	for i := uint32(0); i < 4; i++ {
		if err := w.mem.WriteTrapByte(w.base+w.off+i, byte(v>>(8*i))); err != nil {
			return err
		}
	}
	w.off += 4
	return nil
}

func (w *bufWriter) writeBlob(data []byte) error {
	if err := w.writeWord(uint32(len(data))); err != nil {
		return err
	}
	for i, b := range data {
		if err := w.mem.WriteTrapByte(w.base+w.off+uint32(i), b); err != nil {
			return err
		}
	}
	w.off += uint32(len(data))
	return nil
}

// hostTrap marshals one guest request out of the read buffer,
// performs the corresponding host operation, and marshals the
// response into the write buffer.
func hostTrap(w *Warp) error {
	r := &bufReader{mem: w.Core.Mem, base: memory.TrapReadBase}
	wr := &bufWriter{mem: w.Core.Mem, base: memory.TrapWriteBase}

	cmd, err := r.readWord()
	if err != nil {
		return err
	}

	switch cmd {
	case cmdWrite:
		return hostWrite(r, wr)
	case cmdFstat:
		return hostFstat(r, wr)
	case cmdClose, cmdIsatty, cmdLseek, cmdRead:
		slog.Debug("host trap command not supported yet", "cmd", cmd)
		return nil
	default:
		slog.Warn("unknown host trap command", "cmd", cmd)
		return nil
	}
}

func hostWrite(r *bufReader, wr *bufWriter) error {
	file, err := r.readWord()
	if err != nil {
		return err
	}
	if file == 1 {
		file = 2 // Redirect guest stdout to host stderr.
	}
	data, err := r.readBlob()
	if err != nil {
		return err
	}

	n, werr := syscall.Write(int(file), data)
	if werr != nil {
		n = -1
	}
	return wr.writeWord(uint32(int32(n)))
}

func hostFstat(r *bufReader, wr *bufWriter) error {
	file, err := r.readWord()
	if err != nil {
		return err
	}

	var stat syscall.Stat_t
	if err := syscall.Fstat(int(file), &stat); err != nil {
		return fmt.Errorf("fstat fd %d: %w", file, err)
	}

	raw := (*[unsafeSizeofStat]byte)(statBytes(&stat))
	return wr.writeBlob(raw[:])
}

// unsafeSizeofStat and statBytes isolate the one unsafe cast needed
// to upload a raw syscall.Stat_t, matching the original's byte-exact
// struct upload.
const unsafeSizeofStat = int(unsafe.Sizeof(syscall.Stat_t{}))

func statBytes(stat *syscall.Stat_t) unsafe.Pointer {
	return unsafe.Pointer(stat)
}

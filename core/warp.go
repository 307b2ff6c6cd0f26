/*
   gpsim - Warp and core state.

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

import "github.com/rcornwell/gpsim/emu/memory"

// MaxThreads is the number of hardware lanes per warp.
const MaxThreads = 32

// NumPred is the number of predicate registers each lane carries.
// Only read by SPLIT.
const NumPred = 4

// NoInterrupt marks a warp with nothing pending.
const NoInterrupt = -1

// DomStackEntry is one frame of a warp's dominator/reconvergence
// stack, pushed by SPLIT and popped by JOIN.
type DomStackEntry struct {
	TMask       [MaxThreads]bool
	PC          uint32
	Uni         bool // Unanimous: SPLIT found no divergence.
	FallThrough bool // false: JOIN must set PC from this frame.
}

// Warp is one group of lock-stepped lanes.
type Warp struct {
	ID    int
	Core  *Core
	PC    uint32
	ActiveThreads int
	TMask [MaxThreads]bool

	Reg  [MaxThreads][32]uint32
	Pred [MaxThreads][NumPred]bool

	DomStack []DomStackEntry

	SupervisorMode   bool
	Spawned          bool
	PendingInterrupt int

	Insts  uint64
	Stores uint64
}

// NewWarp returns a dormant warp belonging to c.
func NewWarp(id int, c *Core) *Warp {
	return &Warp{
		ID:               id,
		Core:             c,
		PendingInterrupt: NoInterrupt,
	}
}

// Interrupt records a pending guest interrupt, picked up the next
// time this warp is dispatched.
func (w *Warp) Interrupt(code int) {
	w.PendingInterrupt = code
}

// Core owns the shared memory and the set of warps scheduled onto it.
type Core struct {
	Warps []*Warp
	Mem   *memory.Memory
	Lanes int
}

// NewCore allocates numWarps dormant warps sharing mem, each with
// lanes hardware threads.
func NewCore(numWarps, lanes int, mem *memory.Memory) *Core {
	c := &Core{Mem: mem, Lanes: lanes}
	c.Warps = make([]*Warp, numWarps)
	for i := range c.Warps {
		c.Warps[i] = NewWarp(i, c)
	}
	return c
}

/*
   gpsim - Console command dispatch tests.

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

package console

import (
	"testing"

	"github.com/rcornwell/gpsim/emu/memory"
	"github.com/rcornwell/gpsim/sim"
)

func newTestScheduler() *sim.Scheduler {
	return sim.NewScheduler(1, 2, 4, memory.New(1<<16))
}

func TestMatchCommandExactAndPrefix(t *testing.T) {
	if _, ok := matchCommand("regs"); !ok {
		t.Errorf("exact match for 'regs' failed")
	}
	if _, ok := matchCommand("re"); !ok {
		t.Errorf("unambiguous prefix 're' failed to match regs")
	}
	if _, ok := matchCommand("r"); ok {
		t.Errorf("ambiguous prefix 'r' (run/regs) should not match")
	}
	if _, ok := matchCommand("bogus"); ok {
		t.Errorf("unknown command should not match")
	}
}

func TestProcessCommandQuit(t *testing.T) {
	s := newTestScheduler()
	quit, err := ProcessCommand("quit", s)
	if err != nil {
		t.Fatalf("ProcessCommand: %v", err)
	}
	if !quit {
		t.Errorf("quit command did not signal exit")
	}
}

func TestProcessCommandBreakAndMem(t *testing.T) {
	s := newTestScheduler()
	if _, err := ProcessCommand("break 0x1000", s); err != nil {
		t.Fatalf("break: %v", err)
	}
	if !s.Breakpoints[0x1000] {
		t.Errorf("breakpoint at 0x1000 not set")
	}

	if _, err := ProcessCommand("mem 0x0 2", s); err != nil {
		t.Fatalf("mem: %v", err)
	}
}

func TestProcessCommandUnknown(t *testing.T) {
	s := newTestScheduler()
	if _, err := ProcessCommand("frobnicate", s); err == nil {
		t.Errorf("expected error for unknown command")
	}
}

func TestCompleteCmd(t *testing.T) {
	matches := CompleteCmd("s")
	if len(matches) != 1 || matches[0] != "step" {
		t.Errorf("CompleteCmd(%q) = %v, want [step]", "s", matches)
	}
}

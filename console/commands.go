/*
   gpsim - Console command implementations.

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
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/gpsim/config/configparser"
	"github.com/rcornwell/gpsim/loader"
	"github.com/rcornwell/gpsim/sim"
)

// parseIndex defaults to 0 when args has nothing at pos.
func parseIndex(args []string, pos int) (int, error) {
	if pos >= len(args) {
		return 0, nil
	}
	v, err := strconv.Atoi(args[pos])
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", args[pos])
	}
	return v, nil
}

func cmdStep(s *sim.Scheduler, args []string) error {
	coreIdx, err := parseIndex(args, 0)
	if err != nil {
		return err
	}
	warpIdx, err := parseIndex(args, 1)
	if err != nil {
		return err
	}

	running, err := s.StepWarp(coreIdx, warpIdx)
	if err != nil {
		return err
	}
	if !running {
		fmt.Printf("core %d warp %d halted\n", coreIdx, warpIdx)
		return nil
	}

	w := s.Cores[coreIdx].Warps[warpIdx]
	fmt.Printf("core %d warp %d pc=%#010x\n", coreIdx, warpIdx, w.PC)
	return nil
}

func cmdRun(s *sim.Scheduler, _ []string) error {
	s.RunUntilBreak(context.Background())
	fmt.Println("stopped")
	return nil
}

func cmdRegs(s *sim.Scheduler, args []string) error {
	coreIdx, err := parseIndex(args, 0)
	if err != nil {
		return err
	}
	warpIdx, err := parseIndex(args, 1)
	if err != nil {
		return err
	}
	if coreIdx < 0 || coreIdx >= len(s.Cores) {
		return fmt.Errorf("no such core: %d", coreIdx)
	}
	c := s.Cores[coreIdx]
	if warpIdx < 0 || warpIdx >= len(c.Warps) {
		return fmt.Errorf("no such warp: %d", warpIdx)
	}
	w := c.Warps[warpIdx]

	fmt.Printf("pc=%#010x active=%d spawned=%v\n", w.PC, w.ActiveThreads, w.Spawned)
	for lane := 0; lane < c.Lanes; lane++ {
		if !w.TMask[lane] {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "lane %2d:", lane)
		for r := 0; r < 8; r++ {
			fmt.Fprintf(&b, " x%d=%#010x", r, w.Reg[lane][r])
		}
		fmt.Println(b.String())
	}
	return nil
}

func cmdMem(s *sim.Scheduler, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("mem requires an address")
	}
	addr, err := configparser.ParseHex32(args[0])
	if err != nil {
		return err
	}
	count := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[1])
		}
		count = n
	}

	mem := s.Cores[0].Mem
	for i := 0; i < count; i++ {
		word, err := mem.ReadWord(addr + uint32(i)*4)
		if err != nil {
			return err
		}
		fmt.Printf("%#010x: %#010x\n", addr+uint32(i)*4, word)
	}
	return nil
}

func cmdBreak(s *sim.Scheduler, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("break requires an address")
	}
	addr, err := configparser.ParseHex32(args[0])
	if err != nil {
		return err
	}
	s.Breakpoints[addr] = true
	fmt.Printf("breakpoint set at %#010x\n", addr)
	return nil
}

func cmdLoad(s *sim.Scheduler, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("load requires a file and an address")
	}
	addr, err := configparser.ParseHex32(args[1])
	if err != nil {
		return err
	}
	return loader.LoadFile(s.Cores[0].Mem, addr, args[0])
}

func cmdQuit(_ *sim.Scheduler, _ []string) error {
	return nil
}

func cmdHelp(_ *sim.Scheduler, _ []string) error {
	fmt.Println("commands: step [core warp], run, regs [core warp], mem addr [count], break addr, load file addr, quit")
	return nil
}

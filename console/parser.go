/*
   gpsim - Console command table and dispatch.

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
	"fmt"
	"strings"

	"github.com/rcornwell/gpsim/sim"
)

// cmd is one console command: a name, the minimum unambiguous prefix
// length, and the function that runs it against the given arguments.
type cmd struct {
	name    string
	min     int
	process func(s *sim.Scheduler, args []string) error
}

var cmdList = []cmd{
	{"step", 2, cmdStep},
	{"run", 2, cmdRun},
	{"regs", 2, cmdRegs},
	{"mem", 2, cmdMem},
	{"break", 3, cmdBreak},
	{"load", 2, cmdLoad},
	{"quit", 1, cmdQuit},
	{"help", 1, cmdHelp},
}

// matchCommand returns the cmd whose name word is an unambiguous
// prefix of, or exactly names. An empty or ambiguous word matches
// nothing.
func matchCommand(word string) (cmd, bool) {
	word = strings.ToLower(word)
	if word == "" {
		return cmd{}, false
	}

	var found cmd
	matches := 0
	for _, c := range cmdList {
		if c.name == word {
			return c, true
		}
		if len(word) >= c.min && strings.HasPrefix(c.name, word) {
			found = c
			matches++
		}
	}
	if matches == 1 {
		return found, true
	}
	return cmd{}, false
}

// ProcessCommand parses and runs one line of input. It returns true
// when the console should exit.
func ProcessCommand(line string, s *sim.Scheduler) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	c, ok := matchCommand(fields[0])
	if !ok {
		return false, fmt.Errorf("unknown command: %s", fields[0])
	}

	if c.name == "quit" {
		return true, nil
	}
	return false, c.process(s, fields[1:])
}

// CompleteCmd returns every command name partial is a prefix of, for
// liner's tab completion. An ambiguous partial returns all candidates.
func CompleteCmd(partial string) []string {
	partial = strings.ToLower(partial)
	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, partial) {
			out = append(out, c.name)
		}
	}
	return out
}

/*
   gpsim - Interactive debug console reader.

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

// Package console is a liner-based REPL for driving a sim.Scheduler
// by hand: single-stepping warps, dumping registers and memory, and
// setting breakpoints.
package console

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/peterh/liner"
	"github.com/rcornwell/gpsim/sim"
)

// Reader runs the interactive prompt until the user quits or aborts
// with Ctrl-C.
func Reader(s *sim.Scheduler) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return CompleteCmd(partial)
	})

	for {
		command, err := line.Prompt("gpsim> ")
		if err == nil {
			line.AppendHistory(command)
			quit, perr := ProcessCommand(command, s)
			if perr != nil {
				fmt.Println("Error: " + perr.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		slog.Error("error reading line: " + err.Error())
	}
}

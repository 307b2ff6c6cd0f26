/*
 * gpsim - Log debug data to a file
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

package debug

import (
	"fmt"
	"os"

	config "github.com/rcornwell/gpsim/config/configparser"
)

var logFile *os.File

// Debugf writes a gated trace line for module, e.g. "core" or "sim".
// Nothing is written until a DEBUGFILE directive has registered a
// destination; level is ANDed against mask so callers can carry a
// single configured bitmask across many call sites.
func Debugf(module string, mask int, level int, format string, a ...interface{}) {
	if logFile == nil || (mask&level) == 0 {
		return
	}
	fmt.Fprintf(logFile, module+": "+format+"\n", a...)
}

func init() {
	config.RegisterFile("DEBUGFILE", create)
}

func create(fileName string) error {
	if logFile != nil {
		return fmt.Errorf("can't have more than one debug file, previous: %s", logFile.Name())
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create debug file: %s", fileName)
	}

	logFile = file
	return nil
}

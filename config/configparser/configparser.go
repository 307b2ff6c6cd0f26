/*
 * gpsim - Configuration file parser
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

// Package configparser reads the simulator's text configuration file
// and dispatches each directive to whichever package registered
// interest in it, a registration-callback design trimmed down to the
// line grammar this simulator actually needs: one directive name per
// line plus a value.
package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Option is a single name[=value] token following a directive.
type Option struct {
	Name     string
	EqualOpt string
}

const (
	TypeOption = 1 + iota // Accepts a single value parameter.
	TypeSwitch            // Boolean flag, no value.
	TypeFile              // Accepts a file name to create.
)

type directive struct {
	ty     int
	option func(string, []Option) error
	file   func(string) error
}

var directives = map[string]directive{}

// RegisterOption registers fn to run when directive mod appears
// followed by a value, e.g. "MEMSIZE 16M".
func RegisterOption(mod string, fn func(string, []Option) error) {
	directives[strings.ToUpper(mod)] = directive{ty: TypeOption, option: fn}
}

// RegisterSwitch registers fn to run when directive mod appears with
// no value, e.g. "VMASSIST".
func RegisterSwitch(mod string, fn func(string, []Option) error) {
	directives[strings.ToUpper(mod)] = directive{ty: TypeSwitch, option: fn}
}

// RegisterFile registers fn to run when directive mod appears
// followed by a file path to create, e.g. "DEBUGFILE trace.log".
func RegisterFile(mod string, fn func(string) error) {
	directives[strings.ToUpper(mod)] = directive{ty: TypeFile, file: fn}
}

// LoadConfigFile reads name line by line. '#' starts a comment that
// runs to end of line. Each non-blank line is "DIRECTIVE value...".
func LoadConfigFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("unable to open configuration file %s: %w", name, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := stripComment(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		mod := strings.ToUpper(fields[0])
		d, ok := directives[mod]
		if !ok {
			return fmt.Errorf("line %d: unknown directive %q", lineNumber, fields[0])
		}

		switch d.ty {
		case TypeFile:
			if len(fields) < 2 {
				return fmt.Errorf("line %d: %s requires a file name", lineNumber, mod)
			}
			if err := d.file(fields[1]); err != nil {
				return fmt.Errorf("line %d: %w", lineNumber, err)
			}
		case TypeSwitch:
			if err := d.option("", parseOptions(fields[1:])); err != nil {
				return fmt.Errorf("line %d: %w", lineNumber, err)
			}
		case TypeOption:
			if len(fields) < 2 {
				return fmt.Errorf("line %d: %s requires a value", lineNumber, mod)
			}
			if err := d.option(fields[1], parseOptions(fields[2:])); err != nil {
				return fmt.Errorf("line %d: %w", lineNumber, err)
			}
		}
	}
	return scanner.Err()
}

func parseOptions(fields []string) []Option {
	opts := make([]Option, 0, len(fields))
	for _, f := range fields {
		name, eq, found := strings.Cut(f, "=")
		if !found {
			opts = append(opts, Option{Name: name})
			continue
		}
		opts = append(opts, Option{Name: name, EqualOpt: eq})
	}
	return opts
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// ParseSize parses a decimal size with an optional K or M suffix into
// bytes, the convention the MEMSIZE directive uses.
func ParseSize(s string) (uint32, error) {
	if s == "" {
		return 0, errors.New("empty size value")
	}
	mult := uint64(1)
	switch s[len(s)-1] {
	case 'K', 'k':
		mult = 1024
		s = s[:len(s)-1]
	case 'M', 'm':
		mult = 1024 * 1024
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return uint32(v * mult), nil
}

// ParseHex32 parses a hexadecimal 32-bit value, accepting an optional
// leading "0x". Digits are always read as hex, so "10" yields 0x10.
func ParseHex32(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return uint32(v), nil
}

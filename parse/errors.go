// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parse

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrLineFormat indicates a line that could not be parsed.
var ErrLineFormat = errors.New("bad line format")

// LineError is a parse error for a line. It matches ErrLineFormat with
// errors.Is.
type LineError struct {
	// Line is the raw line that failed to parse.
	Line string

	Err error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%v: %v: %q", ErrLineFormat, e.Err, e.Line)
}

func (e *LineError) Unwrap() error { return e.Err }

// Is reports whether target is ErrLineFormat.
func (e *LineError) Is(target error) bool { return target == ErrLineFormat }

func lineErr(line string, format string, args ...any) error {
	return &LineError{Line: line, Err: fmt.Errorf(format, args...)}
}

// fields is a cursor over the space separated fields of a line.
type fields struct {
	line   string
	tokens []string
	pos    int
	err    error
}

func (f *fields) remaining() int {
	return len(f.tokens) - f.pos
}

func (f *fields) next(name string) string {
	if f.err != nil {
		return ""
	}
	if f.pos >= len(f.tokens) {
		f.err = lineErr(f.line, "missing %s", name)
		return ""
	}
	t := f.tokens[f.pos]
	f.pos++
	return t
}

func (f *fields) integer(name string, base int) int {
	t := f.next(name)
	if f.err != nil {
		return 0
	}
	n, err := strconv.ParseInt(t, base, 32)
	if err != nil {
		f.err = lineErr(f.line, "%s: %w", name, err)
		return 0
	}
	return int(n)
}

// count reads a count and checks that at least n*width fields follow.
func (f *fields) count(name string, base, width int) int {
	n := f.integer(name, base)
	if f.err != nil {
		return 0
	}
	if n < 0 || n*width > f.remaining() {
		f.err = lineErr(f.line, "%s %d exceeds the remaining %d fields", name, n, f.remaining())
		return 0
	}
	return n
}

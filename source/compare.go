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

package source

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Comparator compares two line keys. It returns a negative number when
// a < b, a positive number when a > b and zero when they are equal.
type Comparator func(a, b string) int

// Lexical compares keys byte by byte.
func Lexical(a, b string) int {
	return strings.Compare(a, b)
}

// CaseInsensitive compares keys after Unicode case folding.
func CaseInsensitive(a, b string) int {
	if isASCII(a) && isASCII(b) {
		return compareASCIIFold(a, b)
	}
	// Casers keep state and are not safe for concurrent use.
	return strings.Compare(cases.Fold().String(a), cases.Fold().String(b))
}

// ZeroFilledNumeric compares decimal keys that may be padded with leading
// zeros, e.g. "00001740" and "1740" are equal. Non-numeric keys are compared
// lexically.
func ZeroFilledNumeric(a, b string) int {
	if !isDigits(a) || !isDigits(b) {
		return strings.Compare(a, b)
	}
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

// DefaultComparator returns the comparator the files of kind k are sorted
// with.
func DefaultComparator(k Kind) Comparator {
	switch k {
	case Data:
		return ZeroFilledNumeric
	case Index, Exception, Sense:
		return CaseInsensitive
	default:
		return Lexical
	}
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func compareASCIIFold(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		ca, cb := lowerASCII(a[i]), lowerASCII(b[i])
		if ca != cb {
			return int(ca) - int(cb)
		}
	}
	return len(a) - len(b)
}

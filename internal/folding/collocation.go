// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// CollocationFolder joins the words of a collocation with Separator. Runs of
// whitespace and Separator runes between words become a single Separator and
// runs at the start or end of the input are dropped, so "take a  breath",
// " take_a breath" and "take__a_breath" all fold to "take_a_breath".
type CollocationFolder struct {
	// Separator joins words. The zero value means an underscore.
	Separator rune

	// inWord is true once a word rune has been written.
	inWord bool

	// pending is true if a separator run follows the last word rune.
	pending bool
}

func (f *CollocationFolder) sep() rune {
	if f.Separator == 0 {
		return '_'
	}
	return f.Separator
}

func (f *CollocationFolder) isSeparator(c rune) bool {
	return c == f.sep() || unicode.IsSpace(c)
}

// Transform implements [transform.Transformer.Transform].
func (f *CollocationFolder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if f.isSeparator(c) {
			// Separators are written lazily so that trailing runs are dropped.
			f.pending = f.inWord
			nSrc += size
			continue
		}

		// c may be utf8.RuneError for invalid input, whose encoding is longer
		// than size.
		need := utf8.RuneLen(c)
		if f.pending {
			need += utf8.RuneLen(f.sep())
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if f.pending {
			nDst += utf8.EncodeRune(dst[nDst:], f.sep())
			f.pending = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], c)
		f.inWord = true
		nSrc += size
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *CollocationFolder) Reset() {
	f.inWord = false
	f.pending = false
}

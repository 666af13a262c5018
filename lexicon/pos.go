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

package lexicon

import (
	"errors"
	"fmt"
)

// ErrUnknownPOS indicates a part of speech tag or number that is not known.
var ErrUnknownPOS = errors.New("unknown part of speech")

// POS is a part of speech. It partitions every file and map in the database.
type POS uint8

const (
	// Noun is the noun part of speech.
	Noun POS = iota + 1

	// Verb is the verb part of speech.
	Verb

	// Adjective is the adjective part of speech. Adjective satellites are
	// adjectives too.
	Adjective

	// Adverb is the adverb part of speech.
	Adverb
)

// AllPOS lists every part of speech in canonical order.
var AllPOS = []POS{Noun, Verb, Adjective, Adverb}

// String returns the lower case name of the part of speech.
func (p POS) String() string {
	switch p {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	case Adverb:
		return "adverb"
	default:
		return fmt.Sprintf("POS(%d)", uint8(p))
	}
}

// Tag returns the single letter tag used in data and index files.
func (p POS) Tag() byte {
	switch p {
	case Noun:
		return 'n'
	case Verb:
		return 'v'
	case Adjective:
		return 'a'
	case Adverb:
		return 'r'
	default:
		return '?'
	}
}

// Number returns the digit used for the part of speech in sense keys.
func (p POS) Number() int {
	return int(p)
}

// FileName returns the name used for the part of speech in file names, e.g.
// "adj" for data.adj.
func (p POS) FileName() string {
	switch p {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adj"
	case Adverb:
		return "adv"
	default:
		return ""
	}
}

// SynsetType returns the part of speech for a synset type tag. The satellite
// tag 's' is reported as Adjective with satellite set to true.
func SynsetType(tag byte) (pos POS, satellite bool, err error) {
	switch tag {
	case 'n':
		return Noun, false, nil
	case 'v':
		return Verb, false, nil
	case 'a':
		return Adjective, false, nil
	case 's':
		return Adjective, true, nil
	case 'r':
		return Adverb, false, nil
	default:
		return 0, false, fmt.Errorf("%w: tag %q", ErrUnknownPOS, tag)
	}
}

// SynsetTypeNumber returns the part of speech for a sense key synset type
// number. 5 is an adjective satellite.
func SynsetTypeNumber(n int) (pos POS, satellite bool, err error) {
	switch n {
	case 1, 2, 3, 4:
		return POS(n), false, nil
	case 5:
		return Adjective, true, nil
	default:
		return 0, false, fmt.Errorf("%w: synset type %d", ErrUnknownPOS, n)
	}
}

// ParsePOS returns the part of speech named by s. It accepts the names
// returned by String and FileName and the single letter tags.
func ParsePOS(s string) (POS, error) {
	for _, p := range AllPOS {
		if s == p.String() || s == p.FileName() || (len(s) == 1 && s[0] == p.Tag()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPOS, s)
}

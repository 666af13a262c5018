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
	"strings"

	"github.com/ianlewis/go-wordnet/lexicon"
)

// IndexLine parses an index file line of the form:
//
//	lemma pos synset_cnt p_cnt [ptr_symbol...] sense_cnt tagsense_cnt
//	synset_offset [synset_offset...]
//
// synset_cnt is redundant with sense_cnt and is ignored.
func IndexLine(line string) (*lexicon.SenseIndex, error) {
	f := &fields{line: line, tokens: strings.Fields(line)}

	lemma := f.next("lemma")
	tag := f.next("part of speech")
	f.integer("synset count", 10)
	if f.err != nil {
		return nil, f.err
	}
	if len(tag) != 1 {
		return nil, lineErr(line, "bad part of speech %q", tag)
	}
	pos, _, err := lexicon.SynsetType(tag[0])
	if err != nil {
		return nil, &LineError{Line: line, Err: err}
	}

	pointerCount := f.count("pointer count", 10, 1)
	var pointers []*lexicon.Pointer
	for range pointerCount {
		symbol := f.next("pointer symbol")
		if f.err != nil {
			return nil, f.err
		}
		ptr, err := lexicon.PointerFor(symbol, pos)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		pointers = append(pointers, ptr)
	}

	senseCount := f.integer("sense count", 10)
	tagged := f.integer("tagged sense count", 10)
	if f.err != nil {
		return nil, f.err
	}
	if senseCount != f.remaining() {
		return nil, lineErr(line, "sense count %d does not match %d offsets", senseCount, f.remaining())
	}

	senses := make([]lexicon.SenseID, 0, senseCount)
	for range senseCount {
		offset := f.integer("synset offset", 10)
		if f.err != nil {
			return nil, f.err
		}
		senses = append(senses, lexicon.SenseID{
			Synset: lexicon.SynsetID{Offset: offset, POS: pos},
			Lemma:  lemma,
		})
	}

	return &lexicon.SenseIndex{
		Lemma:       lemma,
		POS:         pos,
		Pointers:    pointers,
		TaggedCount: tagged,
		Senses:      senses,
	}, nil
}

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

// DataRecord is a parsed data file line whose synset has not been built yet.
type DataRecord struct {
	Synset lexicon.SynsetData
	Senses []lexicon.SenseData
}

// Build creates the synset and its senses.
func (r *DataRecord) Build() *lexicon.Synset {
	builders := make([]lexicon.SenseBuilder, len(r.Senses))
	for i, d := range r.Senses {
		builders[i] = d.Builder()
	}
	return lexicon.NewSynset(r.Synset, builders)
}

// DataLine parses a data file line into a synset.
//
// Satellite sense keys are returned without their head fields; the head
// synset is in another line and must be looked up by the caller.
func DataLine(line string) (*lexicon.Synset, error) {
	r, err := DataLineRecord(line)
	if err != nil {
		return nil, err
	}
	return r.Build(), nil
}

// DataLineRecord parses a data file line. The line has the form:
//
//	offset lex_filenum ss_type w_cnt word lex_id [word lex_id...] p_cnt
//	[ptr...] [frames...] | gloss
//
// w_cnt and lex_id are hexadecimal. Each pointer is
// "pointer_symbol synset_offset pos source/target" where source/target is
// four hexadecimal digits. Verb lines carry "f_cnt + f_num w_num..." frames.
func DataLineRecord(line string) (*DataRecord, error) {
	head, gloss, _ := strings.Cut(line, "|")
	f := &fields{line: line, tokens: strings.Fields(head)}

	offset := f.integer("synset offset", 10)
	lexFile := f.integer("lexicographer file number", 10)
	ssType := f.next("synset type")
	if f.err != nil {
		return nil, f.err
	}
	if len(ssType) != 1 {
		return nil, lineErr(line, "bad synset type %q", ssType)
	}
	pos, satellite, err := lexicon.SynsetType(ssType[0])
	if err != nil {
		return nil, &LineError{Line: line, Err: err}
	}
	id := lexicon.SynsetID{Offset: offset, POS: pos}

	wordCount := f.count("word count", 16, 2)
	senses := make([]lexicon.SenseData, 0, wordCount)
	for range wordCount {
		raw := f.next("word")
		lexID := f.integer("lexical id", 16)
		if f.err != nil {
			return nil, f.err
		}
		lemma, marker := raw, (*lexicon.AdjMarker)(nil)
		if pos == lexicon.Adjective {
			lemma, marker = lexicon.SplitAdjMarker(raw)
		}
		senses = append(senses, lexicon.SenseData{
			Lemma:  lemma,
			LexID:  lexID,
			Marker: marker,
			Key:    lexicon.NewSenseKey(lemma, lexID, pos, satellite, lexFile),
		})
	}

	var synsetPointers map[*lexicon.Pointer][]lexicon.SynsetID
	pointerCount := f.count("pointer count", 10, 4)
	for range pointerCount {
		symbol := f.next("pointer symbol")
		targetOffset := f.integer("pointer offset", 10)
		targetTag := f.next("pointer part of speech")
		sourceTarget := f.integer("pointer source/target", 16)
		if f.err != nil {
			return nil, f.err
		}
		ptr, err := lexicon.PointerFor(symbol, pos)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		if len(targetTag) != 1 {
			return nil, lineErr(line, "bad pointer part of speech %q", targetTag)
		}
		targetPOS, _, err := lexicon.SynsetType(targetTag[0])
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		target := lexicon.SynsetID{Offset: targetOffset, POS: targetPOS}

		if sourceTarget == 0 {
			if synsetPointers == nil {
				synsetPointers = map[*lexicon.Pointer][]lexicon.SynsetID{}
			}
			synsetPointers[ptr] = append(synsetPointers[ptr], target)
			continue
		}

		// The packed number is two bytes: source sense then target sense.
		source, targetNum := sourceTarget/256, sourceTarget&255
		if source < 1 || source > len(senses) {
			return nil, lineErr(line, "pointer source %d out of range", source)
		}
		w := &senses[source-1]
		if w.Pointers == nil {
			w.Pointers = map[*lexicon.Pointer][]lexicon.SenseID{}
		}
		w.Pointers[ptr] = append(w.Pointers[ptr], lexicon.SenseID{
			Synset: target,
			Number: targetNum,
		})
	}

	if pos == lexicon.Verb && f.remaining() > 0 {
		frameCount := f.count("frame count", 10, 3)
		for range frameCount {
			if plus := f.next("frame marker"); f.err == nil && plus != "+" {
				return nil, lineErr(line, "bad frame marker %q", plus)
			}
			frame := f.integer("frame number", 10)
			wordNum := f.integer("frame word number", 16)
			if f.err != nil {
				return nil, f.err
			}
			if wordNum > len(senses) {
				return nil, lineErr(line, "frame word number %d out of range", wordNum)
			}
			for i := range senses {
				if wordNum == 0 || wordNum == i+1 {
					senses[i].Frames = append(senses[i].Frames, frame)
				}
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.remaining() > 0 {
		return nil, lineErr(line, "%d unexpected trailing fields", f.remaining())
	}

	return &DataRecord{
		Synset: lexicon.SynsetData{
			ID:        id,
			LexFile:   lexFile,
			Satellite: satellite,
			// Heads are detected by lexicographer file 0 (adj.all) alone.
			// Some heads in the distributed data lack an antonym.
			AdjectiveHead: pos == lexicon.Adjective && !satellite && lexFile == 0,
			Gloss:         strings.TrimSpace(gloss),
			Pointers:      synsetPointers,
		},
		Senses: senses,
	}, nil
}

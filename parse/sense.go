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
	"strconv"
	"strings"

	"github.com/ianlewis/go-wordnet/lexicon"
)

// SenseKey parses a sense key of the form
// lemma%ss_type:lex_filenum:lex_id:head_word:head_id. The head fields are
// only read for adjective satellites. A satellite key with an empty head
// word is returned without head so that it can be set later.
func SenseKey(key string) (*lexicon.SenseKey, error) {
	lemma, rest, ok := strings.Cut(key, "%")
	if !ok || lemma == "" {
		return nil, lineErr(key, "missing lemma separator")
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 5 {
		return nil, lineErr(key, "want 5 sense key fields, got %d", len(parts))
	}

	ssType, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, lineErr(key, "synset type: %w", err)
	}
	pos, satellite, err := lexicon.SynsetTypeNumber(ssType)
	if err != nil {
		return nil, &LineError{Line: key, Err: err}
	}
	lexFile, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, lineErr(key, "lexicographer file number: %w", err)
	}
	lexID, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, lineErr(key, "lexical id: %w", err)
	}

	if !satellite || parts[3] == "" {
		return lexicon.NewSenseKey(lemma, lexID, pos, satellite, lexFile), nil
	}
	headID, err := strconv.Atoi(parts[4])
	if err != nil {
		return nil, lineErr(key, "head id: %w", err)
	}
	return lexicon.NewSatelliteSenseKey(lemma, lexID, lexFile, parts[3], headID), nil
}

// SenseLine parses an index.sense line of the form:
//
//	sense_key synset_offset sense_number tag_cnt
func SenseLine(line string) (*lexicon.SenseEntry, error) {
	keyToken, rest, ok := strings.Cut(line, " ")
	if !ok {
		return nil, lineErr(line, "missing sense entry fields")
	}
	key, err := SenseKey(keyToken)
	if err != nil {
		var le *LineError
		if errors.As(err, &le) {
			err = le.Err
		}
		return nil, &LineError{Line: line, Err: err}
	}

	f := &fields{line: line, tokens: strings.Fields(rest)}
	offset := f.integer("synset offset", 10)
	number := f.integer("sense number", 10)
	tagCount := f.integer("tag count", 10)
	if f.err != nil {
		return nil, f.err
	}
	if f.remaining() > 0 {
		return nil, lineErr(line, "%d unexpected trailing fields", f.remaining())
	}

	return &lexicon.SenseEntry{
		Key:      key,
		Offset:   offset,
		Number:   number,
		TagCount: tagCount,
	}, nil
}

// ExceptionLine parses an exception file line of the form:
//
//	surface_form base_form [base_form...]
//
// The part of speech is given by the file the line was read from.
func ExceptionLine(line string) (*lexicon.ExceptionEntryProxy, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return nil, lineErr(line, "want a surface form and at least one root")
	}
	return &lexicon.ExceptionEntryProxy{
		Surface: tokens[0],
		Roots:   tokens[1:],
	}, nil
}

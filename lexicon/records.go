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
	"strings"
)

// AdjMarker is the syntactic marker of an adjective, written after the lemma
// in data files, e.g. "galore(ip)".
type AdjMarker struct {
	Symbol string
	Name   string
}

// Adjective markers.
var (
	Predicate              = &AdjMarker{"(p)", "predicate"}
	Prenominal             = &AdjMarker{"(a)", "prenominal"}
	ImmediatelyPostnominal = &AdjMarker{"(ip)", "immediately postnominal"}
)

// SplitAdjMarker removes a trailing adjective marker from lemma.
func SplitAdjMarker(lemma string) (string, *AdjMarker) {
	for _, m := range []*AdjMarker{Predicate, Prenominal, ImmediatelyPostnominal} {
		if strings.HasSuffix(lemma, m.Symbol) {
			return strings.TrimSuffix(lemma, m.Symbol), m
		}
	}
	return lemma, nil
}

// AdjMarkerFor returns the marker for the given symbol or nil.
func AdjMarkerFor(symbol string) *AdjMarker {
	for _, m := range []*AdjMarker{Predicate, Prenominal, ImmediatelyPostnominal} {
		if m.Symbol == symbol {
			return m
		}
	}
	return nil
}

// SenseIndex is the index file entry of a lemma for a part of speech.
type SenseIndex struct {
	Lemma string
	POS   POS

	// Pointers is the set of pointer types found among the lemma's senses.
	Pointers []*Pointer

	// TaggedCount is the number of senses tagged in the semantic
	// concordances.
	TaggedCount int

	// Senses are the lemma's senses, most frequent first.
	Senses []SenseID
}

// SenseEntry joins a sense key to the sense's synset and frequency data.
type SenseEntry struct {
	Key    *SenseKey
	Offset int

	// Number is the sense number of the lemma in the index file.
	Number int

	// TagCount is the number of times the sense is tagged in the semantic
	// concordances.
	TagCount int
}

// SynsetID returns the id of the synset the entry points to.
func (e *SenseEntry) SynsetID() SynsetID {
	return SynsetID{Offset: e.Offset, POS: e.Key.POS()}
}

// ExceptionEntryProxy is an exception file line. Exception files are
// per part of speech and the part of speech is not written in the line.
type ExceptionEntryProxy struct {
	// Surface is the inflected form.
	Surface string

	// Roots are the base forms of Surface.
	Roots []string
}

// ExceptionEntry is an exception with its part of speech.
type ExceptionEntry struct {
	ExceptionEntryProxy
	POS POS
}

// NewExceptionEntry binds proxy to pos.
func NewExceptionEntry(proxy *ExceptionEntryProxy, pos POS) *ExceptionEntry {
	return &ExceptionEntry{
		ExceptionEntryProxy: *proxy,
		POS:                 pos,
	}
}

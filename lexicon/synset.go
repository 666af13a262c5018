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
	"slices"
	"strings"
)

// SynsetData holds the fields of a synset other than its senses.
type SynsetData struct {
	ID        SynsetID
	LexFile   int
	Satellite bool

	// AdjectiveHead is true for head synsets of adjective clusters.
	AdjectiveHead bool

	Gloss string

	// Pointers are the semantic relations of the synset.
	Pointers map[*Pointer][]SynsetID
}

// SenseBuilder creates the sense with the given 1-based number in synset.
// Builders are called by NewSynset once the synset exists so that senses can
// point back at it.
type SenseBuilder func(synset *Synset, number int) *Sense

// Synset is a set of synonymous senses.
type Synset struct {
	data   SynsetData
	senses []*Sense
}

// NewSynset creates a synset and then its senses, in order, from builders.
func NewSynset(data SynsetData, builders []SenseBuilder) *Synset {
	s := &Synset{data: data}
	s.senses = make([]*Sense, len(builders))
	for i, b := range builders {
		s.senses[i] = b(s, i+1)
	}
	return s
}

// ID returns the synset id.
func (s *Synset) ID() SynsetID { return s.data.ID }

// Offset returns the synset's byte offset in its data file.
func (s *Synset) Offset() int { return s.data.ID.Offset }

// POS returns the part of speech.
func (s *Synset) POS() POS { return s.data.ID.POS }

// LexFile returns the lexicographer file number.
func (s *Synset) LexFile() int { return s.data.LexFile }

// IsAdjectiveSatellite reports whether the synset is an adjective satellite.
func (s *Synset) IsAdjectiveSatellite() bool { return s.data.Satellite }

// IsAdjectiveHead reports whether the synset is the head of an adjective
// cluster.
func (s *Synset) IsAdjectiveHead() bool { return s.data.AdjectiveHead }

// Gloss returns the definition and examples of the synset.
func (s *Synset) Gloss() string { return s.data.Gloss }

// Senses returns the senses of the synset in order. The slice must not be
// modified.
func (s *Synset) Senses() []*Sense { return s.senses }

// Pointers returns the semantic relations of the synset. The map must not be
// modified.
func (s *Synset) Pointers() map[*Pointer][]SynsetID { return s.data.Pointers }

// Related returns the synsets related by the pointer p.
func (s *Synset) Related(p *Pointer) []SynsetID { return s.data.Pointers[p] }

// Data returns a copy of the synset fields.
func (s *Synset) Data() SynsetData {
	d := s.data
	d.Pointers = clonePointers(s.data.Pointers)
	return d
}

// Sense returns the sense with the given 1-based number or nil.
func (s *Synset) Sense(number int) *Sense {
	if number < 1 || number > len(s.senses) {
		return nil
	}
	return s.senses[number-1]
}

// SenseByLemma returns the first sense whose lemma matches case-insensitively
// or nil.
func (s *Synset) SenseByLemma(lemma string) *Sense {
	for _, w := range s.senses {
		if strings.EqualFold(w.data.Lemma, lemma) {
			return w
		}
	}
	return nil
}

// SenseByKey returns the sense whose key equals key or nil. Lemmas that
// differ only by case have equal keys, so a sense whose lemma matches the
// key's lemma exactly is preferred.
func (s *Synset) SenseByKey(key *SenseKey) *Sense {
	var match *Sense
	for _, w := range s.senses {
		if !w.data.Key.Equal(key) {
			continue
		}
		if w.data.Lemma == key.Lemma() {
			return w
		}
		if match == nil {
			match = w
		}
	}
	return match
}

// Lookup returns the sense identified by id, or nil if id is for another
// synset or does not match any sense.
func (s *Synset) Lookup(id SenseID) *Sense {
	if id.Synset != s.data.ID {
		return nil
	}
	if id.HasNumber() {
		w := s.Sense(id.Number)
		if w != nil && id.HasLemma() && !strings.EqualFold(w.data.Lemma, id.Lemma) {
			return nil
		}
		return w
	}
	if id.HasLemma() {
		return s.SenseByLemma(id.Lemma)
	}
	return nil
}

// SenseData holds the fields of a sense other than its position.
type SenseData struct {
	Lemma  string
	LexID  int
	Marker *AdjMarker

	// Frames are the numbers of the verb frames of the sense.
	Frames []int

	Key *SenseKey

	// Pointers are the lexical relations of the sense.
	Pointers map[*Pointer][]SenseID
}

// Builder returns a SenseBuilder for the sense data.
func (d SenseData) Builder() SenseBuilder {
	return func(synset *Synset, number int) *Sense {
		return &Sense{
			synset: synset,
			number: number,
			data:   d,
		}
	}
}

// Sense is the occurrence of a lemma in a synset.
type Sense struct {
	// synset is the owner of the sense.
	synset *Synset
	number int
	data   SenseData
}

// ID returns the sense id with both the number and lemma set.
func (w *Sense) ID() SenseID {
	return SenseID{
		Synset: w.synset.data.ID,
		Number: w.number,
		Lemma:  w.data.Lemma,
	}
}

// Synset returns the synset the sense belongs to.
func (w *Sense) Synset() *Synset { return w.synset }

// Number returns the 1-based position of the sense in its synset.
func (w *Sense) Number() int { return w.number }

// Lemma returns the lemma. Words of a collocation are joined with
// underscores.
func (w *Sense) Lemma() string { return w.data.Lemma }

// POS returns the part of speech.
func (w *Sense) POS() POS { return w.synset.data.ID.POS }

// LexID returns the lexical id.
func (w *Sense) LexID() int { return w.data.LexID }

// AdjectiveMarker returns the syntactic marker of an adjective or nil.
func (w *Sense) AdjectiveMarker() *AdjMarker { return w.data.Marker }

// Frames returns the verb frame numbers of the sense. The slice must not be
// modified.
func (w *Sense) Frames() []int { return w.data.Frames }

// Key returns the sense key.
func (w *Sense) Key() *SenseKey { return w.data.Key }

// Pointers returns the lexical relations of the sense. The map must not be
// modified.
func (w *Sense) Pointers() map[*Pointer][]SenseID { return w.data.Pointers }

// Related returns the senses related by the pointer p.
func (w *Sense) Related(p *Pointer) []SenseID { return w.data.Pointers[p] }

// Data returns a copy of the sense fields.
func (w *Sense) Data() SenseData {
	d := w.data
	d.Frames = slices.Clone(w.data.Frames)
	d.Pointers = clonePointers(w.data.Pointers)
	return d
}

func clonePointers[T any](m map[*Pointer][]T) map[*Pointer][]T {
	if m == nil {
		return nil
	}
	c := make(map[*Pointer][]T, len(m))
	for p, ids := range m {
		c[p] = slices.Clone(ids)
	}
	return c
}

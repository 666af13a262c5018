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

// Package snapshot holds a complete WordNet database in memory.
//
// A Data is built once by a Builder and is immutable afterwards. Records are
// kept in the order of the database files so that iterating over a Data
// yields the same sequence as iterating over the files. A Data can be written
// to a compressed stream with Write and restored with Read without the
// original files.
package snapshot

import (
	"github.com/ianlewis/go-wordnet/internal/folding"
	"github.com/ianlewis/go-wordnet/internal/index"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/source"
)

// Data is an in-memory database. It is safe for concurrent use.
type Data struct {
	synsets    map[lexicon.POS]*index.Index[*lexicon.Synset]
	indexes    map[lexicon.POS]*index.Index[*lexicon.SenseIndex]
	exceptions map[lexicon.POS]*index.Index[*lexicon.ExceptionEntry]

	// senses maps sense keys to the senses owned by the synsets.
	senses  *index.Index[*lexicon.Sense]
	entries *index.Index[*lexicon.SenseEntry]
}

// Stats are the number of records of each kind.
type Stats struct {
	Synsets    map[lexicon.POS]int
	Indexes    map[lexicon.POS]int
	Exceptions map[lexicon.POS]int
	Senses     int
	Entries    int
}

func synsetKey(s *lexicon.Synset) string { return source.OffsetKey(s.Offset()) }
func indexKey(idx *lexicon.SenseIndex) string { return idx.Lemma }
func exceptionKey(e *lexicon.ExceptionEntry) string { return e.Surface }
func senseKey(w *lexicon.Sense) string { return w.Key().String() }
func entryKey(e *lexicon.SenseEntry) string { return e.Key.String() }

// Synset returns the synset with the given id or nil.
func (d *Data) Synset(id lexicon.SynsetID) *lexicon.Synset {
	s, _ := d.synsets[id.POS].Get(source.OffsetKey(id.Offset))
	return s
}

// Sense returns the sense with the given id or nil.
func (d *Data) Sense(id lexicon.SenseID) *lexicon.Sense {
	s := d.Synset(id.Synset)
	if s == nil {
		return nil
	}
	return s.Lookup(id)
}

// SenseByKey returns the sense with the given key or nil. A sense whose lemma
// matches the key's lemma exactly is preferred over one that differs by
// case.
func (d *Data) SenseByKey(key *lexicon.SenseKey) *lexicon.Sense {
	var match *lexicon.Sense
	for _, w := range d.senses.Search(key.String()) {
		if !w.Key().Equal(key) {
			continue
		}
		if w.Lemma() == key.Lemma() {
			return w
		}
		if match == nil {
			match = w
		}
	}
	return match
}

// Index returns the index entry of lemma or nil.
func (d *Data) Index(lemma string, pos lexicon.POS) (*lexicon.SenseIndex, error) {
	folded, err := folding.FoldLemma(lemma)
	if err != nil {
		//nolint:wrapcheck // errors are wrapped by FoldLemma.
		return nil, err
	}
	idx, _ := d.indexes[pos].Get(folded)
	return idx, nil
}

// SenseEntry returns the sense entry of key or nil.
func (d *Data) SenseEntry(key *lexicon.SenseKey) *lexicon.SenseEntry {
	e, _ := d.entries.Get(key.String())
	return e
}

// Exception returns the exception entry of an inflected form or nil.
func (d *Data) Exception(surface string, pos lexicon.POS) (*lexicon.ExceptionEntry, error) {
	folded, err := folding.FoldLemma(surface)
	if err != nil {
		//nolint:wrapcheck // errors are wrapped by FoldLemma.
		return nil, err
	}
	e, _ := d.exceptions[pos].Get(folded)
	return e, nil
}

// Synsets returns the synsets of pos in offset order. The slice must not be
// modified.
func (d *Data) Synsets(pos lexicon.POS) []*lexicon.Synset {
	return d.synsets[pos].Values()
}

// Indexes returns the index entries of pos in lemma order. The slice must
// not be modified.
func (d *Data) Indexes(pos lexicon.POS) []*lexicon.SenseIndex {
	return d.indexes[pos].Values()
}

// Exceptions returns the exception entries of pos. The slice must not be
// modified.
func (d *Data) Exceptions(pos lexicon.POS) []*lexicon.ExceptionEntry {
	return d.exceptions[pos].Values()
}

// Senses returns every sense in sense key order. The slice must not be
// modified.
func (d *Data) Senses() []*lexicon.Sense {
	return d.senses.Values()
}

// SenseEntries returns the sense entries in sense key order. The slice must
// not be modified.
func (d *Data) SenseEntries() []*lexicon.SenseEntry {
	return d.entries.Values()
}

// Stats returns the number of records in d.
func (d *Data) Stats() Stats {
	st := Stats{
		Synsets:    map[lexicon.POS]int{},
		Indexes:    map[lexicon.POS]int{},
		Exceptions: map[lexicon.POS]int{},
		Senses:     d.senses.Len(),
		Entries:    d.entries.Len(),
	}
	for _, pos := range lexicon.AllPOS {
		st.Synsets[pos] = d.synsets[pos].Len()
		st.Indexes[pos] = d.indexes[pos].Len()
		st.Exceptions[pos] = d.exceptions[pos].Len()
	}
	return st
}

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

package snapshot

import (
	"slices"
	"sync"

	"github.com/ianlewis/go-wordnet/internal/index"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/source"
)

// Builder collects the records of a database. Its methods are safe for
// concurrent use.
type Builder struct {
	mu         sync.Mutex
	synsets    map[lexicon.POS][]*lexicon.Synset
	indexes    map[lexicon.POS][]*lexicon.SenseIndex
	exceptions map[lexicon.POS][]*lexicon.ExceptionEntry
	entries    []*lexicon.SenseEntry
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		synsets:    map[lexicon.POS][]*lexicon.Synset{},
		indexes:    map[lexicon.POS][]*lexicon.SenseIndex{},
		exceptions: map[lexicon.POS][]*lexicon.ExceptionEntry{},
	}
}

// AddSynsets adds synsets of pos and their senses.
func (b *Builder) AddSynsets(pos lexicon.POS, synsets ...*lexicon.Synset) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.synsets[pos] = append(b.synsets[pos], synsets...)
}

// AddIndexes adds index entries of pos.
func (b *Builder) AddIndexes(pos lexicon.POS, indexes ...*lexicon.SenseIndex) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.indexes[pos] = append(b.indexes[pos], indexes...)
}

// AddExceptions adds exception entries of pos.
func (b *Builder) AddExceptions(pos lexicon.POS, exceptions ...*lexicon.ExceptionEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exceptions[pos] = append(b.exceptions[pos], exceptions...)
}

// AddSenseEntries adds sense entries.
func (b *Builder) AddSenseEntries(entries ...*lexicon.SenseEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entries...)
}

// Build compacts the collected records into a Data.
//
// Every record is copied into storage of its exact size. Sense ids that
// only carry a number or a lemma are replaced by the id of the sense they
// refer to, which carries both. Synsets are rebuilt with new senses so that
// the senses of the global sense map are the ones owned by the synsets.
func (b *Builder) Build() *Data {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := map[lexicon.SynsetID]*lexicon.Synset{}
	for _, synsets := range b.synsets {
		for _, s := range synsets {
			old[s.ID()] = s
		}
	}
	c := &compactor{synsets: old}

	d := &Data{
		synsets:    map[lexicon.POS]*index.Index[*lexicon.Synset]{},
		indexes:    map[lexicon.POS]*index.Index[*lexicon.SenseIndex]{},
		exceptions: map[lexicon.POS]*index.Index[*lexicon.ExceptionEntry]{},
	}

	var senses []*lexicon.Sense
	for pos, synsets := range b.synsets {
		built := make([]*lexicon.Synset, len(synsets))
		for i, s := range synsets {
			built[i] = c.synset(s)
			senses = append(senses, built[i].Senses()...)
		}
		d.synsets[pos] = index.NewIndex(built, synsetKey, source.ZeroFilledNumeric)
	}
	d.senses = index.NewIndex(senses, senseKey, source.CaseInsensitive)

	for pos, indexes := range b.indexes {
		built := make([]*lexicon.SenseIndex, len(indexes))
		for i, idx := range indexes {
			built[i] = c.index(idx)
		}
		d.indexes[pos] = index.NewIndex(built, indexKey, source.CaseInsensitive)
	}

	for pos, exceptions := range b.exceptions {
		built := make([]*lexicon.ExceptionEntry, len(exceptions))
		for i, e := range exceptions {
			cp := *e
			cp.Roots = slices.Clip(slices.Clone(e.Roots))
			built[i] = &cp
		}
		d.exceptions[pos] = index.NewIndex(built, exceptionKey, source.CaseInsensitive)
	}

	d.entries = index.NewIndex(b.entries, entryKey, source.CaseInsensitive)
	return d
}

// compactor rewrites the records of the old synsets.
type compactor struct {
	synsets map[lexicon.SynsetID]*lexicon.Synset
}

// senseID returns the combined id of the sense referred to by id. Ids of
// senses that are not in the database are returned unchanged.
func (c *compactor) senseID(id lexicon.SenseID) lexicon.SenseID {
	s := c.synsets[id.Synset]
	if s == nil {
		return id
	}
	if !id.HasNumber() && id.HasLemma() {
		// Prefer the sense whose lemma has the same case.
		for _, w := range s.Senses() {
			if w.Lemma() == id.Lemma {
				return w.ID()
			}
		}
	}
	if w := s.Lookup(id); w != nil {
		return w.ID()
	}
	return id
}

// synset rebuilds s. The builder of each sense is collected first and the
// senses are only created once the new synset exists.
func (c *compactor) synset(s *lexicon.Synset) *lexicon.Synset {
	builders := make([]lexicon.SenseBuilder, 0, len(s.Senses()))
	for _, w := range s.Senses() {
		data := w.Data()
		data.Frames = slices.Clip(data.Frames)
		for p, ids := range data.Pointers {
			for i, id := range ids {
				ids[i] = c.senseID(id)
			}
			data.Pointers[p] = slices.Clip(ids)
		}
		builders = append(builders, data.Builder())
	}
	data := s.Data()
	for p, ids := range data.Pointers {
		data.Pointers[p] = slices.Clip(ids)
	}
	return lexicon.NewSynset(data, builders)
}

func (c *compactor) index(idx *lexicon.SenseIndex) *lexicon.SenseIndex {
	cp := *idx
	cp.Pointers = slices.Clip(slices.Clone(idx.Pointers))
	cp.Senses = make([]lexicon.SenseID, len(idx.Senses))
	for i, id := range idx.Senses {
		cp.Senses[i] = c.senseID(id)
	}
	return &cp
}

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
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/filedict"
	"github.com/ianlewis/go-wordnet/internal/testutil"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/parse"
)

var (
	hotID  = lexicon.SynsetID{Offset: 1247240, POS: lexicon.Adjective}
	coldID = lexicon.SynsetID{Offset: 1251128, POS: lexicon.Adjective}
)

func collect[T any](t *testing.T, it wordnet.Iterator[T], err error) []T {
	t.Helper()

	if err != nil {
		t.Fatal(err)
	}
	values, err := wordnet.Collect(it)
	if err != nil {
		t.Fatal(err)
	}
	return values
}

// fixtureData builds a Data from the fixture database.
func fixtureData(t *testing.T) *Data {
	t.Helper()

	d := filedict.New(testutil.WriteDatabase(t, testutil.Fixture, nil), nil)
	if _, err := d.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	b := NewBuilder()
	for _, pos := range lexicon.AllPOS {
		synsets, err := d.Synsets(pos)
		b.AddSynsets(pos, collect(t, synsets, err)...)
		indexes, err := d.Indexes(pos)
		b.AddIndexes(pos, collect(t, indexes, err)...)
		exceptions, err := d.Exceptions(pos)
		b.AddExceptions(pos, collect(t, exceptions, err)...)
	}
	entries, err := d.SenseEntries()
	b.AddSenseEntries(collect(t, entries, err)...)
	return b.Build()
}

func mustKey(t *testing.T, key string) *lexicon.SenseKey {
	t.Helper()

	k, err := parse.SenseKey(key)
	if err != nil {
		t.Fatalf("SenseKey(%q): %v", key, err)
	}
	return k
}

func TestBuild_senseIdentity(t *testing.T) {
	t.Parallel()

	d := fixtureData(t)
	n := 0
	for _, pos := range lexicon.AllPOS {
		for _, s := range d.Synsets(pos) {
			for _, w := range s.Senses() {
				n++
				if got := d.SenseByKey(w.Key()); got != w {
					t.Errorf("SenseByKey(%s): got %v, want the sense owned by %s", w.Key(), got, s.ID())
				}
				if w.Synset() != s {
					t.Errorf("%s: sense does not point back at its synset", w.Key())
				}
			}
		}
	}
	if diff := cmp.Diff(n, len(d.Senses())); diff != "" {
		t.Errorf("senses (-want, +got):\n%s", diff)
	}
}

func TestBuild_compaction(t *testing.T) {
	t.Parallel()

	d := fixtureData(t)

	hot := d.Synset(hotID)
	if hot == nil {
		t.Fatalf("Synset(%s): not found", hotID)
	}
	expected := []lexicon.SenseID{{Synset: coldID, Number: 1, Lemma: "cold"}}
	if diff := cmp.Diff(expected, hot.Sense(1).Related(lexicon.Antonym)); diff != "" {
		t.Errorf("antonyms (-want, +got):\n%s", diff)
	}

	tests := []struct {
		lemma    string
		pos      lexicon.POS
		expected []lexicon.SenseID
	}{
		{
			lemma:    "hot",
			pos:      lexicon.Adjective,
			expected: []lexicon.SenseID{{Synset: hotID, Number: 1, Lemma: "hot"}},
		},
		{
			lemma: "abstraction",
			pos:   lexicon.Noun,
			expected: []lexicon.SenseID{{
				Synset: lexicon.SynsetID{Offset: 2137, POS: lexicon.Noun},
				Number: 2,
				Lemma:  "abstraction",
			}},
		},
	}
	for _, test := range tests {
		idx, err := d.Index(test.lemma, test.pos)
		if err != nil {
			t.Fatalf("Index: %v", err)
		}
		if diff := cmp.Diff(test.expected, idx.Senses); diff != "" {
			t.Errorf("Index(%q) senses (-want, +got):\n%s", test.lemma, diff)
		}
	}
}

func TestData_order(t *testing.T) {
	t.Parallel()

	d := fixtureData(t)

	var lemmas []string
	for _, idx := range d.Indexes(lexicon.Adjective) {
		lemmas = append(lemmas, idx.Lemma)
	}
	if diff := cmp.Diff([]string{"baking", "baking_hot", "cold", "frigid", "hot"}, lemmas); diff != "" {
		t.Errorf("Indexes (-want, +got):\n%s", diff)
	}

	if diff := cmp.Diff(testutil.Fixture["index.sense"], entryLines(d.SenseEntries())); diff != "" {
		t.Errorf("SenseEntries (-want, +got):\n%s", diff)
	}
}

// entryLines formats sense entries as index.sense lines.
func entryLines(entries []*lexicon.SenseEntry) []string {
	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s %08d %d %d", e.Key, e.Offset, e.Number, e.TagCount))
	}
	return lines
}

// summary describes the lookups of a Data as plain values.
type summary struct {
	Stats     Stats
	Glosses   []string
	SenseKeys []string
	Entries   []string
	Antonyms  []lexicon.SenseID
	Indexes   []lexicon.SenseID
	Roots     []string
}

func summarize(t *testing.T, d *Data) summary {
	t.Helper()

	s := summary{
		Stats:   d.Stats(),
		Entries: entryLines(d.SenseEntries()),
	}
	for _, pos := range lexicon.AllPOS {
		for _, ss := range d.Synsets(pos) {
			s.Glosses = append(s.Glosses, ss.Gloss())
		}
	}
	for _, line := range testutil.Fixture["index.sense"] {
		key := mustKey(t, strings.Fields(line)[0])
		if w := d.SenseByKey(key); w != nil {
			s.SenseKeys = append(s.SenseKeys, w.Key().String())
		}
	}
	if hot := d.Synset(hotID); hot != nil {
		s.Antonyms = hot.Sense(1).Related(lexicon.Antonym)
	}
	for _, idx := range d.Indexes(lexicon.Noun) {
		s.Indexes = append(s.Indexes, idx.Senses...)
	}
	if e, _ := d.Exception("geese", lexicon.Noun); e != nil {
		s.Roots = e.Roots
	}
	return s
}

func TestWriteRead(t *testing.T) {
	t.Parallel()

	d := fixtureData(t)

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := summarize(t, d)
	if diff := cmp.Diff(7, len(want.SenseKeys)); diff != "" {
		t.Fatalf("fixture sense keys (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, summarize(t, got)); diff != "" {
		t.Errorf("Read (-want, +got):\n%s", diff)
	}

	baking := got.SenseByKey(mustKey(t, "baking_hot%5:00:00:hot:00"))
	if baking == nil {
		t.Fatalf("SenseByKey: satellite not found")
	}
	if got.SenseByKey(baking.Key()) != baking {
		t.Errorf("SenseByKey: read senses are not owned by their synsets")
	}

	// Abstraction and abstraction share a key; each must find itself.
	keyLemmas := map[string]string{}
	for _, w := range d.Senses() {
		keyLemmas[w.ID().String()] = w.Key().Lemma()
	}
	for _, w := range got.Senses() {
		if diff := cmp.Diff(keyLemmas[w.ID().String()], w.Key().Lemma()); diff != "" {
			t.Errorf("key lemma of %s (-want, +got):\n%s", w.ID(), diff)
		}
		found := got.SenseByKey(w.Key())
		switch {
		case found == nil:
			t.Errorf("SenseByKey(%s): not found", w.Key())
		case found != w:
			t.Errorf("SenseByKey(%s) = %s, want %s", w.Key(), found.ID(), w.ID())
		}
	}
}

func TestRead_errors(t *testing.T) {
	t.Parallel()

	d := fixtureData(t)
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b := buf.Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "empty",
			data: nil,
		},
		{
			name: "bad magic",
			data: append([]byte("XXSNAP"), b[len(magic):]...),
		},
		{
			name: "truncated",
			data: b[:len(b)/2],
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Read(bytes.NewReader(test.data))
			if err == nil {
				t.Fatalf("Read: want error")
			}
			if test.name != "truncated" && !errors.Is(err, ErrBadSnapshot) {
				t.Errorf("Read: want ErrBadSnapshot, got %v", err)
			}
		})
	}
}

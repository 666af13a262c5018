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

package filedict

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/internal/testutil"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/parse"
)

var (
	hotID    = lexicon.SynsetID{Offset: 1247240, POS: lexicon.Adjective}
	bakingID = lexicon.SynsetID{Offset: 1247944, POS: lexicon.Adjective}
	coldID   = lexicon.SynsetID{Offset: 1251128, POS: lexicon.Adjective}
)

func openDict(t *testing.T, files map[string][]string, opts *Options, dbOpts *testutil.DatabaseOptions) *Dictionary {
	t.Helper()

	d := New(testutil.WriteDatabase(t, files, dbOpts), opts)
	ok, err := d.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !ok {
		t.Fatalf("Open: want true")
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return d
}

func mustKey(t *testing.T, key string) *lexicon.SenseKey {
	t.Helper()

	k, err := parse.SenseKey(key)
	if err != nil {
		t.Fatalf("SenseKey(%q): %v", key, err)
	}
	return k
}

func lemmas(s *lexicon.Synset) []string {
	var l []string
	for _, w := range s.Senses() {
		l = append(l, w.Lemma())
	}
	return l
}

func TestDictionary_Synset(t *testing.T) {
	t.Parallel()

	for _, dictZip := range []bool{false, true} {
		d := openDict(t, testutil.Fixture, nil, &testutil.DatabaseOptions{DictZip: dictZip})

		s, err := d.Synset(coldID)
		if err != nil {
			t.Fatalf("Synset: %v", err)
		}
		if diff := cmp.Diff([]string{"cold", "frigid"}, lemmas(s)); diff != "" {
			t.Errorf("lemmas (-want, +got):\n%s", diff)
		}
		if diff := cmp.Diff("used of physical coldness; having a low temperature", s.Gloss()); diff != "" {
			t.Errorf("Gloss (-want, +got):\n%s", diff)
		}
		if !s.IsAdjectiveHead() {
			t.Errorf("IsAdjectiveHead: want true")
		}
		antonyms := s.Sense(1).Related(lexicon.Antonym)
		if diff := cmp.Diff([]lexicon.SenseID{{Synset: hotID, Number: 1}}, antonyms); diff != "" {
			t.Errorf("antonyms (-want, +got):\n%s", diff)
		}

		s, err = d.Synset(lexicon.SynsetID{Offset: 1247241, POS: lexicon.Adjective})
		if err != nil || s != nil {
			t.Errorf("Synset(missing): got %v, %v", s, err)
		}

		// The fixture has no verb files.
		s, err = d.Synset(lexicon.SynsetID{Offset: 1740, POS: lexicon.Verb})
		if err != nil || s != nil {
			t.Errorf("Synset(verb): got %v, %v", s, err)
		}
	}
}

func TestDictionary_satelliteHead(t *testing.T) {
	t.Parallel()

	d := openDict(t, testutil.Fixture, nil, nil)

	s, err := d.Synset(bakingID)
	if err != nil {
		t.Fatalf("Synset: %v", err)
	}
	var keys []string
	for _, w := range s.Senses() {
		head, headID, ok := w.Key().Head()
		if !ok || head != "hot" || headID != 0 {
			t.Errorf("%s head: got %q, %d, %v", w.Lemma(), head, headID, ok)
		}
		keys = append(keys, w.Key().String())
	}
	if diff := cmp.Diff([]string{"baking%5:00:00:hot:00", "baking_hot%5:00:00:hot:00"}, keys); diff != "" {
		t.Errorf("keys (-want, +got):\n%s", diff)
	}

	if err := s.Sense(1).Key().SetHead("cold", 0); !errors.Is(err, lexicon.ErrHeadAlreadySet) {
		t.Errorf("SetHead: want ErrHeadAlreadySet, got %v", err)
	}
}

func TestDictionary_appendAdjectiveMarker(t *testing.T) {
	t.Parallel()

	files := map[string][]string{
		"data.adj": {
			"01247240 00 a 01 hot(a) 0 001 & 01247944 s 0000 | used of physical heat",
			"01247944 00 s 01 baking 0 001 & 01247240 a 0000 | as hot as if in an oven",
		},
	}

	tests := []struct {
		name     string
		append   bool
		expected string
	}{
		{
			name:     "marker",
			append:   true,
			expected: "baking%5:00:00:hot(a):00",
		},
		{
			name:     "no marker",
			append:   false,
			expected: "baking%5:00:00:hot:00",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			d := openDict(t, files, &Options{AppendAdjectiveMarker: test.append}, nil)
			s, err := d.Synset(bakingID)
			if err != nil {
				t.Fatalf("Synset: %v", err)
			}
			if diff := cmp.Diff(test.expected, s.Sense(1).Key().String()); diff != "" {
				t.Errorf("key (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDictionary_SenseByKey(t *testing.T) {
	t.Parallel()

	d := openDict(t, testutil.Fixture, nil, nil)

	tests := []struct {
		key    string
		lemma  string
		synset lexicon.SynsetID
		number int
	}{
		{
			key:    "hot%3:00:00::",
			lemma:  "hot",
			synset: hotID,
			number: 1,
		},
		{
			key:    "baking_hot%5:00:00:hot:00",
			lemma:  "baking_hot",
			synset: bakingID,
			number: 2,
		},
		{
			// No sense entry, found through the index.
			key:    "abstraction%1:03:00::",
			lemma:  "abstraction",
			synset: lexicon.SynsetID{Offset: 2137, POS: lexicon.Noun},
			number: 2,
		},
		{
			key:    "Abstraction%1:03:00::",
			lemma:  "Abstraction",
			synset: lexicon.SynsetID{Offset: 2137, POS: lexicon.Noun},
			number: 1,
		},
		{
			key: "hot%3:00:01::",
		},
		{
			key: "warm%3:00:00::",
		},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			t.Parallel()

			w, err := d.SenseByKey(mustKey(t, test.key))
			if err != nil {
				t.Fatalf("SenseByKey: %v", err)
			}
			if test.lemma == "" {
				if w != nil {
					t.Fatalf("SenseByKey: want nil, got %v", w.ID())
				}
				return
			}
			if w == nil {
				t.Fatalf("SenseByKey: not found")
			}
			expected := lexicon.SenseID{Synset: test.synset, Number: test.number, Lemma: test.lemma}
			if diff := cmp.Diff(expected, w.ID()); diff != "" {
				t.Errorf("ID (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDictionary_Index(t *testing.T) {
	t.Parallel()

	d := openDict(t, testutil.Fixture, nil, nil)

	tests := []struct {
		lemma    string
		pos      lexicon.POS
		expected *lexicon.SenseIndex
	}{
		{
			lemma: "HOT",
			pos:   lexicon.Adjective,
			expected: &lexicon.SenseIndex{
				Lemma:       "hot",
				POS:         lexicon.Adjective,
				Pointers:    []*lexicon.Pointer{lexicon.Antonym, lexicon.SimilarTo},
				TaggedCount: 1,
				Senses:      []lexicon.SenseID{{Synset: hotID, Lemma: "hot"}},
			},
		},
		{
			lemma: " baking  hot ",
			pos:   lexicon.Adjective,
			expected: &lexicon.SenseIndex{
				Lemma:    "baking_hot",
				POS:      lexicon.Adjective,
				Pointers: []*lexicon.Pointer{lexicon.SimilarTo},
				Senses:   []lexicon.SenseID{{Synset: bakingID, Lemma: "baking_hot"}},
			},
		},
		{
			lemma: "hot",
			pos:   lexicon.Noun,
		},
		{
			lemma: "hot",
			pos:   lexicon.Adverb,
		},
		{
			lemma: "",
			pos:   lexicon.Adjective,
		},
	}

	for _, test := range tests {
		t.Run(test.lemma+"."+test.pos.String(), func(t *testing.T) {
			t.Parallel()

			idx, err := d.Index(test.lemma, test.pos)
			if err != nil {
				t.Fatalf("Index: %v", err)
			}
			if diff := cmp.Diff(test.expected, idx); diff != "" {
				t.Errorf("Index (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDictionary_SenseEntry(t *testing.T) {
	t.Parallel()

	d := openDict(t, testutil.Fixture, nil, nil)

	e, err := d.SenseEntry(mustKey(t, "entity%1:03:00::"))
	if err != nil {
		t.Fatalf("SenseEntry: %v", err)
	}
	if e == nil {
		t.Fatalf("SenseEntry: not found")
	}
	if diff := cmp.Diff(lexicon.SynsetID{Offset: 1740, POS: lexicon.Noun}, e.SynsetID()); diff != "" {
		t.Errorf("SynsetID (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(11, e.TagCount); diff != "" {
		t.Errorf("TagCount (-want, +got):\n%s", diff)
	}
}

func TestDictionary_Exception(t *testing.T) {
	t.Parallel()

	d := openDict(t, testutil.Fixture, nil, nil)

	e, err := d.Exception("Geese", lexicon.Noun)
	if err != nil {
		t.Fatalf("Exception: %v", err)
	}
	expected := &lexicon.ExceptionEntry{
		ExceptionEntryProxy: lexicon.ExceptionEntryProxy{Surface: "geese", Roots: []string{"goose"}},
		POS:                 lexicon.Noun,
	}
	if diff := cmp.Diff(expected, e); diff != "" {
		t.Errorf("Exception (-want, +got):\n%s", diff)
	}

	// Missing exception files are treated as empty.
	e, err = d.Exception("ran", lexicon.Verb)
	if err != nil || e != nil {
		t.Errorf("Exception(verb): got %v, %v", e, err)
	}
}

func TestDictionary_iterators(t *testing.T) {
	t.Parallel()

	d := openDict(t, testutil.Fixture, nil, nil)

	synsets, err := d.Synsets(lexicon.Adjective)
	if err != nil {
		t.Fatalf("Synsets: %v", err)
	}
	ss, err := wordnet.Collect(synsets)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var ids []lexicon.SynsetID
	for _, s := range ss {
		ids = append(ids, s.ID())
	}
	if diff := cmp.Diff([]lexicon.SynsetID{hotID, bakingID, coldID}, ids); diff != "" {
		t.Errorf("Synsets (-want, +got):\n%s", diff)
	}
	// Iterated satellites have their heads set.
	if diff := cmp.Diff("baking%5:00:00:hot:00", ss[1].Sense(1).Key().String()); diff != "" {
		t.Errorf("satellite key (-want, +got):\n%s", diff)
	}

	indexes, err := d.Indexes(lexicon.Noun)
	if err != nil {
		t.Fatalf("Indexes: %v", err)
	}
	idxs, err := wordnet.Collect(indexes)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var idxLemmas []string
	for _, idx := range idxs {
		idxLemmas = append(idxLemmas, idx.Lemma)
	}
	if diff := cmp.Diff([]string{"abstraction", "entity", "physical_entity"}, idxLemmas); diff != "" {
		t.Errorf("Indexes (-want, +got):\n%s", diff)
	}

	excs, err := d.Exceptions(lexicon.Adjective)
	if err != nil {
		t.Fatalf("Exceptions: %v", err)
	}
	es, err := wordnet.Collect(excs)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if diff := cmp.Diff(2, len(es)); diff != "" {
		t.Errorf("Exceptions (-want, +got):\n%s", diff)
	}

	entries, err := d.SenseEntries()
	if err != nil {
		t.Fatalf("SenseEntries: %v", err)
	}
	sensEntries, err := wordnet.Collect(entries)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if diff := cmp.Diff(len(testutil.Fixture["index.sense"]), len(sensEntries)); diff != "" {
		t.Errorf("SenseEntries (-want, +got):\n%s", diff)
	}

	verbs, err := d.Synsets(lexicon.Verb)
	if err != nil {
		t.Fatalf("Synsets(verb): %v", err)
	}
	if verbs.Next() {
		t.Errorf("Synsets(verb): want no values")
	}
}

func TestDictionary_closed(t *testing.T) {
	t.Parallel()

	d := New(testutil.WriteDatabase(t, testutil.Fixture, nil), nil)

	if _, err := d.Synset(hotID); !errors.Is(err, wordnet.ErrClosed) {
		t.Errorf("Synset: want ErrClosed, got %v", err)
	}
	if _, err := d.Synsets(lexicon.Adjective); !errors.Is(err, wordnet.ErrClosed) {
		t.Errorf("Synsets: want ErrClosed, got %v", err)
	}

	if _, err := d.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	it, err := d.Synsets(lexicon.Adjective)
	if err != nil {
		t.Fatalf("Synsets: %v", err)
	}
	if !it.Next() {
		t.Fatalf("Next: want true")
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if it.Next() {
		t.Errorf("Next after Close: want false")
	}
	if !errors.Is(it.Err(), wordnet.ErrClosed) {
		t.Errorf("Err: want ErrClosed, got %v", it.Err())
	}
	if d.IsOpen() {
		t.Errorf("IsOpen: want false")
	}
}

func TestDictionary_malformed(t *testing.T) {
	t.Parallel()

	d := openDict(t, map[string][]string{
		"data.noun": {"00001740 03 n 01 entity 0 002 | missing pointers"},
	}, nil, nil)

	_, err := d.Synset(lexicon.SynsetID{Offset: 1740, POS: lexicon.Noun})
	if !errors.Is(err, parse.ErrLineFormat) {
		t.Errorf("Synset: want ErrLineFormat, got %v", err)
	}
}

func TestOpen_noDatabase(t *testing.T) {
	t.Parallel()

	d := New(t.TempDir(), nil)
	ok, err := d.Open(context.Background())
	if !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Open: want ErrNoDatabase, got %v", err)
	}
	if ok || d.IsOpen() {
		t.Errorf("Open: want closed dictionary")
	}
}

func TestOpenAll(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteDatabase(t, testutil.Fixture, nil)
	dicts, errs := OpenAll(context.Background(), dir, nil)
	if len(errs) > 0 {
		t.Fatalf("OpenAll: %v", errs)
	}
	if len(dicts) != 1 {
		t.Fatalf("OpenAll: want 1 dictionary, got %d", len(dicts))
	}
	defer dicts[0].Close()
	if diff := cmp.Diff(dir, dicts[0].Dir()); diff != "" {
		t.Errorf("Dir (-want, +got):\n%s", diff)
	}
}

func TestOpen_order(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	openDict(t, testutil.Fixture, &Options{Logger: logger}, nil)

	var got []string
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var rec struct {
			Msg         string `json:"msg"`
			ContentType string `json:"content_type"`
		}
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("decoding log: %v", err)
		}
		if rec.Msg == "opened database file" {
			got = append(got, rec.ContentType)
		}
	}
	expected := []string{
		"data.noun", "data.adj",
		"index.noun", "index.adj",
		"exception.noun", "exception.adj",
		"sense",
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("opened files (-want, +got):\n%s", diff)
	}
}

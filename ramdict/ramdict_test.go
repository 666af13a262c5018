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

package ramdict

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/filedict"
	"github.com/ianlewis/go-wordnet/internal/testutil"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/parse"
	"github.com/ianlewis/go-wordnet/snapshot"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// gatedDictionary holds back a phase of a load until it is released. By
// default the last phase, SenseEntries, is held back.
type gatedDictionary struct {
	*filedict.Dictionary

	// holdExceptions holds back Exceptions instead, so that SenseEntries can
	// be iterated on the backing dictionary while the load waits.
	holdExceptions bool

	gate    chan struct{}
	release func()
}

func newGated(t *testing.T) *gatedDictionary {
	t.Helper()

	g := &gatedDictionary{
		Dictionary: filedict.New(testutil.WriteDatabase(t, testutil.Fixture, nil), nil),
		gate:       make(chan struct{}),
	}
	var once sync.Once
	g.release = func() { once.Do(func() { close(g.gate) }) }
	return g
}

func (g *gatedDictionary) Exceptions(pos lexicon.POS) (wordnet.Iterator[*lexicon.ExceptionEntry], error) {
	if g.holdExceptions {
		<-g.gate
	}
	return g.Dictionary.Exceptions(pos)
}

func (g *gatedDictionary) SenseEntries() (wordnet.Iterator[*lexicon.SenseEntry], error) {
	if !g.holdExceptions {
		<-g.gate
	}
	return g.Dictionary.SenseEntries()
}

// describedIterator iterates over the descriptions of the values of an
// iterator.
type describedIterator[T any] struct {
	wordnet.Iterator[T]
	describe func(T) string
}

func (it describedIterator[T]) Value() string {
	return it.describe(it.Iterator.Value())
}

func describe[T any](it wordnet.Iterator[T], err error, f func(T) string) (wordnet.Iterator[string], error) {
	if err != nil {
		return nil, err
	}
	return describedIterator[T]{Iterator: it, describe: f}, nil
}

func openRAM(t *testing.T, d *Dictionary) {
	t.Helper()

	ok, err := d.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !ok {
		t.Fatalf("Open: want true")
	}
}

func newFixture(t *testing.T, opts *Options) *Dictionary {
	t.Helper()

	if opts == nil {
		opts = &Options{}
	}
	opts.Logger = discard
	d := New(filedict.New(testutil.WriteDatabase(t, testutil.Fixture, nil), nil), opts)
	openRAM(t, d)
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

func synsetIDs(t *testing.T, it wordnet.Iterator[*lexicon.Synset], err error) []lexicon.SynsetID {
	t.Helper()

	if err != nil {
		t.Fatalf("Synsets: %v", err)
	}
	synsets, err := wordnet.Collect(it)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var ids []lexicon.SynsetID
	for _, s := range synsets {
		ids = append(ids, s.ID())
	}
	return ids
}

func TestDictionary_immediate(t *testing.T) {
	t.Parallel()

	d := newFixture(t, &Options{LoadPolicy: Immediate})
	if !d.IsLoaded() {
		t.Fatalf("IsLoaded: want true after immediate open")
	}

	w, err := d.SenseByKey(mustKey(t, "baking_hot%5:00:00:hot:00"))
	if err != nil {
		t.Fatalf("SenseByKey: %v", err)
	}
	if w == nil {
		t.Fatalf("SenseByKey: not found")
	}
	s, err := d.Synset(w.Synset().ID())
	if err != nil {
		t.Fatalf("Synset: %v", err)
	}
	if s.Sense(2) != w {
		t.Errorf("Synset: sense is not the one found by key")
	}

	idx, err := d.Index("Baking Hot", lexicon.Adjective)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if diff := cmp.Diff([]lexicon.SenseID{w.ID()}, idx.Senses); diff != "" {
		t.Errorf("Index senses (-want, +got):\n%s", diff)
	}

	e, err := d.Exception("hotter", lexicon.Adjective)
	if err != nil {
		t.Fatalf("Exception: %v", err)
	}
	if diff := cmp.Diff([]string{"hot"}, e.Roots); diff != "" {
		t.Errorf("Exception roots (-want, +got):\n%s", diff)
	}

	entry, err := d.SenseEntry(mustKey(t, "entity%1:03:00::"))
	if err != nil {
		t.Fatalf("SenseEntry: %v", err)
	}
	if diff := cmp.Diff(11, entry.TagCount); diff != "" {
		t.Errorf("TagCount (-want, +got):\n%s", diff)
	}

	sense, err := d.Sense(lexicon.SenseID{Synset: w.Synset().ID(), Lemma: "BAKING"})
	if err != nil {
		t.Fatalf("Sense: %v", err)
	}
	if sense != w.Synset().Sense(1) {
		t.Errorf("Sense: got %v", sense)
	}
}

func TestDictionary_background(t *testing.T) {
	t.Parallel()

	g := newGated(t)
	d := New(g, &Options{Logger: discard})
	openRAM(t, d)
	defer d.Close()

	// The load cannot finish until the gate is released. Lookups are served
	// by the backing dictionary meanwhile.
	if d.IsLoaded() {
		t.Fatalf("IsLoaded: want false before release")
	}
	s, err := d.Synset(lexicon.SynsetID{Offset: 1740, POS: lexicon.Noun})
	if err != nil || s == nil {
		t.Fatalf("Synset: got %v, %v", s, err)
	}
	if err := d.Export(io.Discard); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Export: want ErrNotLoaded, got %v", err)
	}

	g.release()
	if err := d.Load(context.Background(), true); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !d.IsLoaded() {
		t.Fatalf("IsLoaded: want true after load")
	}
	if err := d.Export(io.Discard); err != nil {
		t.Errorf("Export: %v", err)
	}
}

func TestSwapIterator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		holdExceptions bool
		iterate        func(d *Dictionary) (wordnet.Iterator[string], error)
	}{
		{
			name: "noun synsets",
			iterate: func(d *Dictionary) (wordnet.Iterator[string], error) {
				it, err := d.Synsets(lexicon.Noun)
				return describe(it, err, func(s *lexicon.Synset) string { return s.ID().String() })
			},
		},
		{
			name: "adjective synsets",
			iterate: func(d *Dictionary) (wordnet.Iterator[string], error) {
				it, err := d.Synsets(lexicon.Adjective)
				return describe(it, err, func(s *lexicon.Synset) string { return s.ID().String() })
			},
		},
		{
			name: "adjective indexes",
			iterate: func(d *Dictionary) (wordnet.Iterator[string], error) {
				it, err := d.Indexes(lexicon.Adjective)
				return describe(it, err, func(idx *lexicon.SenseIndex) string { return idx.Lemma })
			},
		},
		{
			name: "adjective exceptions",
			iterate: func(d *Dictionary) (wordnet.Iterator[string], error) {
				it, err := d.Exceptions(lexicon.Adjective)
				return describe(it, err, func(e *lexicon.ExceptionEntry) string { return e.Surface })
			},
		},
		{
			name:           "sense entries",
			holdExceptions: true,
			iterate: func(d *Dictionary) (wordnet.Iterator[string], error) {
				it, err := d.SenseEntries()
				return describe(it, err, func(e *lexicon.SenseEntry) string { return e.Key.String() })
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			// Swap after each possible number of values, including after
			// the end.
			for n := 0; n <= 3; n++ {
				g := newGated(t)
				g.holdExceptions = test.holdExceptions
				d := New(g, &Options{Logger: discard})
				openRAM(t, d)

				it, err := test.iterate(d)
				if err != nil {
					t.Fatalf("iterate: %v", err)
				}
				var got []string
				for i := 0; i < n && it.Next(); i++ {
					got = append(got, it.Value())
				}
				if d.IsLoaded() {
					t.Fatalf("IsLoaded: want false before release")
				}

				g.release()
				if err := d.Load(context.Background(), true); err != nil {
					t.Fatalf("Load: %v", err)
				}
				if !d.IsLoaded() {
					t.Fatalf("IsLoaded: want true")
				}

				for it.Next() {
					got = append(got, it.Value())
				}
				if err := it.Err(); err != nil {
					t.Fatalf("Err: %v", err)
				}

				it2, err := test.iterate(d)
				if err != nil {
					t.Fatalf("iterate: %v", err)
				}
				expected, err := wordnet.Collect(it2)
				if err != nil {
					t.Fatalf("Collect: %v", err)
				}
				if len(expected) == 0 {
					t.Fatalf("snapshot iterator is empty")
				}
				if diff := cmp.Diff(expected, got); diff != "" {
					t.Errorf("swap after %d (-want, +got):\n%s", n, diff)
				}
				if err := d.Close(); err != nil {
					t.Errorf("Close: %v", err)
				}
			}
		})
	}
}

func TestDictionary_loadAfterClose(t *testing.T) {
	t.Parallel()

	d := New(filedict.New(testutil.WriteDatabase(t, testutil.Fixture, nil), nil), &Options{
		LoadRate: 1,
		Logger:   discard,
	})
	openRAM(t, d)
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A load that passed the state check before Close must not start a
	// loader once Close has joined the previous one.
	l, err := d.startLoader()
	if !errors.Is(err, wordnet.ErrClosed) {
		t.Errorf("startLoader: want ErrClosed, got %v", err)
	}
	if l != nil || d.loader != nil {
		t.Errorf("startLoader: started a loader on a closed dictionary")
	}
	if err := d.Load(context.Background(), false); !errors.Is(err, wordnet.ErrClosed) {
		t.Errorf("Load: want ErrClosed, got %v", err)
	}
}

func TestSwapIterator_inconsistent(t *testing.T) {
	t.Parallel()

	g := newGated(t)
	d := New(g, &Options{Logger: discard})
	openRAM(t, d)
	defer d.Close()
	defer g.release()

	it, err := d.Synsets(lexicon.Adjective)
	if err != nil {
		t.Fatalf("Synsets: %v", err)
	}
	if !it.Next() {
		t.Fatalf("Next: %v", it.Err())
	}

	// Install a snapshot that does not hold the synset already returned.
	d.data.Store(snapshot.NewBuilder().Build())

	if it.Next() {
		t.Fatalf("Next: want false")
	}
	if !errors.Is(it.Err(), wordnet.ErrInconsistentIterator) {
		t.Errorf("Err: want ErrInconsistentIterator, got %v", it.Err())
	}
}

func TestDictionary_closeCancelsLoad(t *testing.T) {
	t.Parallel()

	// One record per second takes far longer than the test.
	d := New(filedict.New(testutil.WriteDatabase(t, testutil.Fixture, nil), nil), &Options{
		LoadRate: 1,
		Logger:   discard,
	})
	openRAM(t, d)

	done := make(chan error)
	go func() {
		done <- d.Close()
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Close: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("Close did not cancel the load")
	}

	if d.IsLoaded() {
		t.Errorf("IsLoaded: want false after cancelled load")
	}
	if _, err := d.Synset(lexicon.SynsetID{Offset: 1740, POS: lexicon.Noun}); !errors.Is(err, wordnet.ErrClosed) {
		t.Errorf("Synset: want ErrClosed, got %v", err)
	}
}

func TestDictionary_loadFailure(t *testing.T) {
	t.Parallel()

	files := map[string][]string{
		"data.noun": {
			"00001740 03 n 01 entity 0 000 | that which is perceived",
			"00001930 03 n 01 physical_entity 0 002 | malformed",
		},
	}
	d := New(filedict.New(testutil.WriteDatabase(t, files, nil), nil), &Options{
		LoadPolicy: Immediate,
		Logger:     discard,
	})
	openRAM(t, d)
	defer d.Close()

	if d.IsLoaded() {
		t.Fatalf("IsLoaded: want false after failed load")
	}
	s, err := d.Synset(lexicon.SynsetID{Offset: 1740, POS: lexicon.Noun})
	if err != nil || s == nil {
		t.Errorf("Synset: got %v, %v", s, err)
	}
}

func TestNewFromSnapshot(t *testing.T) {
	t.Parallel()

	src := newFixture(t, &Options{LoadPolicy: Immediate})
	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	d := NewFromSnapshot(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
	}, &Options{LoadPolicy: Background, Logger: discard})
	openRAM(t, d)
	defer d.Close()

	if !d.IsLoaded() {
		t.Fatalf("IsLoaded: want true after import")
	}
	for _, pos := range lexicon.AllPOS {
		want, err := src.Synsets(pos)
		expected := synsetIDs(t, want, err)
		got, err := d.Synsets(pos)
		if diff := cmp.Diff(expected, synsetIDs(t, got, err)); diff != "" {
			t.Errorf("Synsets(%s) (-want, +got):\n%s", pos, diff)
		}
	}

	for _, key := range []string{"hot%3:00:00::", "baking%5:00:00:hot:00", "entity%1:03:00::"} {
		w, err := d.SenseByKey(mustKey(t, key))
		if err != nil {
			t.Fatalf("SenseByKey: %v", err)
		}
		if w == nil {
			t.Fatalf("SenseByKey(%s): not found", key)
		}
		if diff := cmp.Diff(key, w.Key().String()); diff != "" {
			t.Errorf("key (-want, +got):\n%s", diff)
		}
	}

	// Loading a dictionary without a backing dictionary does nothing.
	if err := d.Load(context.Background(), true); err != nil {
		t.Errorf("Load: %v", err)
	}
}

func TestNewFromSnapshot_error(t *testing.T) {
	t.Parallel()

	d := NewFromSnapshot(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader([]byte("not a snapshot"))), nil
	}, &Options{Logger: discard})
	ok, err := d.Open(context.Background())
	if !errors.Is(err, snapshot.ErrBadSnapshot) {
		t.Errorf("Open: want ErrBadSnapshot, got %v", err)
	}
	if ok || d.IsOpen() {
		t.Errorf("Open: want closed dictionary")
	}
}

func TestDictionary_closed(t *testing.T) {
	t.Parallel()

	d := New(filedict.New(testutil.WriteDatabase(t, testutil.Fixture, nil), nil), &Options{Logger: discard})
	if _, err := d.Synsets(lexicon.Noun); !errors.Is(err, wordnet.ErrClosed) {
		t.Errorf("Synsets: want ErrClosed, got %v", err)
	}
	if err := d.Load(context.Background(), false); !errors.Is(err, wordnet.ErrClosed) {
		t.Errorf("Load: want ErrClosed, got %v", err)
	}
	if err := d.Export(io.Discard); !errors.Is(err, wordnet.ErrClosed) {
		t.Errorf("Export: want ErrClosed, got %v", err)
	}
}

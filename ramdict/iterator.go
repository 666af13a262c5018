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
	"fmt"
	"slices"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/snapshot"
)

// swapState is the state of a swapIterator.
type swapState int

const (
	// primary iterators read from the backing dictionary.
	primary swapState = iota

	// swapped iterators read from the snapshot.
	swapped
)

// swapIterator starts on the backing dictionary and moves to the snapshot
// once it is installed. On the move it finds the last value it returned in
// the snapshot and continues after it.
type swapIterator[T any] struct {
	d     *Dictionary
	state swapState

	// primary state.
	it wordnet.Iterator[T]

	// swapped state.
	values []T
	pos    int

	// collection returns the values of the snapshot in the order of the
	// backing iterator.
	collection func(*snapshot.Data) []T
	equal      func(a, b T) bool
	describe   func(T) string

	value   T
	yielded bool
	err     error
}

// newSwapIterator returns an iterator over the snapshot if it is installed
// and over the backing iterator returned by open otherwise.
func newSwapIterator[T any](
	d *Dictionary,
	open func(wordnet.Dictionary) (wordnet.Iterator[T], error),
	collection func(*snapshot.Data) []T,
	equal func(a, b T) bool,
	describe func(T) string,
) (wordnet.Iterator[T], error) {
	data, backing, err := d.tier()
	if err != nil {
		return nil, err
	}
	it := &swapIterator[T]{
		d:          d,
		collection: collection,
		equal:      equal,
		describe:   describe,
	}
	if data != nil {
		it.state = swapped
		it.values = collection(data)
		return it, nil
	}
	it.it, err = open(backing)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Next implements wordnet.Iterator.Next.
func (it *swapIterator[T]) Next() bool {
	if it.err != nil {
		return false
	}
	if err := it.d.lc.Check(); err != nil {
		it.err = err
		return false
	}

	if it.state == primary {
		if data := it.d.data.Load(); data != nil {
			if err := it.swap(data); err != nil {
				it.err = err
				return false
			}
		}
	}

	switch it.state {
	case primary:
		if !it.it.Next() {
			it.err = it.it.Err()
			return false
		}
		it.value = it.it.Value()
	case swapped:
		if it.pos >= len(it.values) {
			return false
		}
		it.value = it.values[it.pos]
		it.pos++
	}
	it.yielded = true
	return true
}

// swap moves the iterator to the snapshot, positioned after the last value
// returned.
func (it *swapIterator[T]) swap(data *snapshot.Data) error {
	values := it.collection(data)
	pos := 0
	if it.yielded {
		i := slices.IndexFunc(values, func(v T) bool {
			return it.equal(v, it.value)
		})
		if i < 0 {
			return fmt.Errorf("%w: %s not in snapshot", wordnet.ErrInconsistentIterator, it.describe(it.value))
		}
		pos = i + 1
	}

	_ = it.it.Close()
	it.it = nil
	it.values = values
	it.pos = pos
	it.state = swapped
	return nil
}

// Value implements wordnet.Iterator.Value.
func (it *swapIterator[T]) Value() T {
	return it.value
}

// Err implements wordnet.Iterator.Err.
func (it *swapIterator[T]) Err() error {
	return it.err
}

// Close implements wordnet.Iterator.Close.
func (it *swapIterator[T]) Close() error {
	if it.state == primary && it.it != nil {
		//nolint:wrapcheck // errors are wrapped by the backing iterator.
		return it.it.Close()
	}
	return nil
}

// Synsets implements wordnet.Dictionary.Synsets.
func (d *Dictionary) Synsets(pos lexicon.POS) (wordnet.Iterator[*lexicon.Synset], error) {
	return newSwapIterator(d,
		func(b wordnet.Dictionary) (wordnet.Iterator[*lexicon.Synset], error) {
			return b.Synsets(pos)
		},
		func(data *snapshot.Data) []*lexicon.Synset {
			return data.Synsets(pos)
		},
		func(a, b *lexicon.Synset) bool {
			return a.ID() == b.ID()
		},
		func(s *lexicon.Synset) string {
			return s.ID().String()
		},
	)
}

// Indexes implements wordnet.Dictionary.Indexes.
func (d *Dictionary) Indexes(pos lexicon.POS) (wordnet.Iterator[*lexicon.SenseIndex], error) {
	return newSwapIterator(d,
		func(b wordnet.Dictionary) (wordnet.Iterator[*lexicon.SenseIndex], error) {
			return b.Indexes(pos)
		},
		func(data *snapshot.Data) []*lexicon.SenseIndex {
			return data.Indexes(pos)
		},
		func(a, b *lexicon.SenseIndex) bool {
			return a.POS == b.POS && a.Lemma == b.Lemma
		},
		func(idx *lexicon.SenseIndex) string {
			return "index entry " + idx.Lemma
		},
	)
}

// Exceptions implements wordnet.Dictionary.Exceptions.
func (d *Dictionary) Exceptions(pos lexicon.POS) (wordnet.Iterator[*lexicon.ExceptionEntry], error) {
	return newSwapIterator(d,
		func(b wordnet.Dictionary) (wordnet.Iterator[*lexicon.ExceptionEntry], error) {
			return b.Exceptions(pos)
		},
		func(data *snapshot.Data) []*lexicon.ExceptionEntry {
			return data.Exceptions(pos)
		},
		func(a, b *lexicon.ExceptionEntry) bool {
			return a.POS == b.POS && a.Surface == b.Surface && slices.Equal(a.Roots, b.Roots)
		},
		func(e *lexicon.ExceptionEntry) string {
			return "exception " + e.Surface
		},
	)
}

// SenseEntries implements wordnet.Dictionary.SenseEntries.
func (d *Dictionary) SenseEntries() (wordnet.Iterator[*lexicon.SenseEntry], error) {
	return newSwapIterator(d,
		func(b wordnet.Dictionary) (wordnet.Iterator[*lexicon.SenseEntry], error) {
			return b.SenseEntries()
		},
		func(data *snapshot.Data) []*lexicon.SenseEntry {
			return data.SenseEntries()
		},
		func(a, b *lexicon.SenseEntry) bool {
			return a.Key.Equal(b.Key)
		},
		func(e *lexicon.SenseEntry) string {
			return "sense entry " + e.Key.String()
		},
	)
}

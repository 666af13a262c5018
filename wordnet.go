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

package wordnet

import (
	"context"
	"errors"

	"github.com/ianlewis/go-wordnet/lexicon"
)

var (
	// ErrClosed is returned by the accessors of a dictionary that is not
	// open.
	ErrClosed = errors.New("dictionary closed")

	// ErrInconsistentIterator is returned by an iterator whose backing
	// collection was replaced and which could not find its position in the
	// new collection.
	ErrInconsistentIterator = errors.New("iterator position lost after source change")
)

// Dictionary is a read-only WordNet database.
//
// Lookups of records that do not exist return a nil record and a nil error.
// Every accessor returns ErrClosed if the dictionary is not open.
type Dictionary interface {
	// Open opens the dictionary. It returns true if the dictionary is open
	// when it returns, including when it was already open, and false if
	// the dictionary is being opened or closed concurrently.
	Open(ctx context.Context) (bool, error)

	// Close closes the dictionary. Closing a closed dictionary does nothing.
	Close() error

	// IsOpen reports whether the dictionary is open. It does not block.
	IsOpen() bool

	// Synset returns the synset with the given id.
	Synset(id lexicon.SynsetID) (*lexicon.Synset, error)

	// Sense returns the sense with the given id.
	Sense(id lexicon.SenseID) (*lexicon.Sense, error)

	// SenseByKey returns the sense with the given sense key.
	SenseByKey(key *lexicon.SenseKey) (*lexicon.Sense, error)

	// Index returns the index entry of lemma. The lemma is matched case
	// insensitively and spaces may be used in place of underscores.
	Index(lemma string, pos lexicon.POS) (*lexicon.SenseIndex, error)

	// SenseEntry returns the sense entry of the given sense key.
	SenseEntry(key *lexicon.SenseKey) (*lexicon.SenseEntry, error)

	// Exception returns the exception entry of an inflected form.
	Exception(surface string, pos lexicon.POS) (*lexicon.ExceptionEntry, error)

	// Synsets iterates over the synsets of pos in offset order.
	Synsets(pos lexicon.POS) (Iterator[*lexicon.Synset], error)

	// Indexes iterates over the index entries of pos in lemma order.
	Indexes(pos lexicon.POS) (Iterator[*lexicon.SenseIndex], error)

	// Exceptions iterates over the exception entries of pos.
	Exceptions(pos lexicon.POS) (Iterator[*lexicon.ExceptionEntry], error)

	// SenseEntries iterates over all sense entries in sense key order.
	SenseEntries() (Iterator[*lexicon.SenseEntry], error)
}

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
	"fmt"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/parse"
	"github.com/ianlewis/go-wordnet/source"
)

// lineIterator parses the lines of a source in file order.
type lineIterator[T any] struct {
	d     *Dictionary
	ct    source.ContentType
	lines *source.LineIterator
	parse func(string) (T, error)

	value T
	err   error
}

// iterate returns an iterator over the file of ct. A missing file yields no
// values.
func iterate[T any](d *Dictionary, ct source.ContentType, parse func(string) (T, error)) (wordnet.Iterator[T], error) {
	src, err := d.source(ct)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return wordnet.NewSliceIterator[T](nil), nil
	}
	return &lineIterator[T]{
		d:     d,
		ct:    ct,
		lines: src.Lines(""),
		parse: parse,
	}, nil
}

// Next implements wordnet.Iterator.Next.
func (it *lineIterator[T]) Next() bool {
	if it.err != nil || it.lines == nil {
		return false
	}
	if err := it.d.lc.Check(); err != nil {
		it.err = err
		return false
	}
	if !it.lines.Next() {
		if err := it.lines.Err(); err != nil {
			it.err = fmt.Errorf("reading %s: %w", it.ct, err)
		}
		it.lines = nil
		return false
	}
	v, err := it.parse(it.lines.Line())
	if err != nil {
		it.err = fmt.Errorf("reading %s: %w", it.ct, err)
		return false
	}
	it.value = v
	return true
}

// Value implements wordnet.Iterator.Value.
func (it *lineIterator[T]) Value() T {
	return it.value
}

// Err implements wordnet.Iterator.Err.
func (it *lineIterator[T]) Err() error {
	return it.err
}

// Close implements wordnet.Iterator.Close.
func (it *lineIterator[T]) Close() error {
	it.lines = nil
	return nil
}

// Synsets implements wordnet.Dictionary.Synsets.
func (d *Dictionary) Synsets(pos lexicon.POS) (wordnet.Iterator[*lexicon.Synset], error) {
	return iterate(d, source.ContentType{Kind: source.Data, POS: pos}, d.parseSynset)
}

// Indexes implements wordnet.Dictionary.Indexes.
func (d *Dictionary) Indexes(pos lexicon.POS) (wordnet.Iterator[*lexicon.SenseIndex], error) {
	return iterate(d, source.ContentType{Kind: source.Index, POS: pos}, parse.IndexLine)
}

// Exceptions implements wordnet.Dictionary.Exceptions.
func (d *Dictionary) Exceptions(pos lexicon.POS) (wordnet.Iterator[*lexicon.ExceptionEntry], error) {
	return iterate(d, source.ContentType{Kind: source.Exception, POS: pos},
		func(line string) (*lexicon.ExceptionEntry, error) {
			proxy, err := parse.ExceptionLine(line)
			if err != nil {
				return nil, err
			}
			return lexicon.NewExceptionEntry(proxy, pos), nil
		})
}

// SenseEntries implements wordnet.Dictionary.SenseEntries.
func (d *Dictionary) SenseEntries() (wordnet.Iterator[*lexicon.SenseEntry], error) {
	return iterate(d, source.SenseContent, parse.SenseLine)
}

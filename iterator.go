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
	"errors"
)

// Iterator iterates over the records of a dictionary.
//
//	for it.Next() {
//		v := it.Value()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[T any] interface {
	// Next advances the iterator. It returns false when there are no more
	// values or an error occurred.
	Next() bool

	// Value returns the current value.
	Value() T

	// Err returns the error that stopped the iteration, if any.
	Err() error

	// Close releases the iterator.
	Close() error
}

// Collect reads the remaining values of it and closes it.
func Collect[T any](it Iterator[T]) ([]T, error) {
	var values []T
	for it.Next() {
		values = append(values, it.Value())
	}
	return values, errors.Join(it.Err(), it.Close())
}

// SliceIterator iterates over a slice.
type SliceIterator[T any] struct {
	values []T
	pos    int
}

// NewSliceIterator returns an iterator over values.
func NewSliceIterator[T any](values []T) *SliceIterator[T] {
	return &SliceIterator[T]{values: values, pos: -1}
}

// Next implements Iterator.Next.
func (it *SliceIterator[T]) Next() bool {
	if it.pos+1 >= len(it.values) {
		it.pos = len(it.values)
		return false
	}
	it.pos++
	return true
}

// Value implements Iterator.Value.
func (it *SliceIterator[T]) Value() T {
	var zero T
	if it.pos < 0 || it.pos >= len(it.values) {
		return zero
	}
	return it.values[it.pos]
}

// Err implements Iterator.Err. It is always nil.
func (*SliceIterator[T]) Err() error { return nil }

// Close implements Iterator.Close.
func (*SliceIterator[T]) Close() error { return nil }

// Copyright 2025 Ian Lewis
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

// Package index implements an immutable sorted array index.
package index

import (
	"slices"
	"sort"
)

// Index is a generic sorted array index. Values are ordered by their key
// under cmp and keys are expected to be unique.
type Index[V any] struct {
	keys   []string
	values []V

	cmp func(string, string) int
}

// NewIndex creates an index from the given slice, key function and comparison
// function. cmp(a, b) should return a negative number when a < b, a positive
// number when a > b and zero when a == b or a and b are incomparable in the
// sense of a strict weak ordering. The index is allocated at its exact size.
func NewIndex[V any](values []V, key func(V) string, cmp func(string, string) int) *Index[V] {
	type entry struct {
		key   string
		value V
	}
	entries := make([]entry, len(values))
	for i, v := range values {
		entries[i] = entry{key: key(v), value: v}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp(a.key, b.key)
	})

	idx := &Index[V]{
		keys:   make([]string, len(entries)),
		values: make([]V, len(entries)),
		cmp:    cmp,
	}
	for i, e := range entries {
		idx.keys[i] = e.key
		idx.values[i] = e.value
	}
	return idx
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.values)
}

// Seek returns the position of the first value whose key is not less than
// query.
func (idx *Index[V]) Seek(query string) int {
	if idx == nil {
		return 0
	}
	return sort.Search(len(idx.keys), func(i int) bool {
		return idx.cmp(idx.keys[i], query) >= 0
	})
}

// Get performs a binary search over the index and returns the value whose key
// equals query.
func (idx *Index[V]) Get(query string) (V, bool) {
	var zero V
	if idx == nil {
		return zero, false
	}
	i := idx.Seek(query)
	if i < len(idx.keys) && idx.cmp(idx.keys[i], query) == 0 {
		return idx.values[i], true
	}
	return zero, false
}

// Search performs a binary search over the index and returns all values whose
// key equals query.
func (idx *Index[V]) Search(query string) []V {
	if idx == nil {
		return nil
	}
	i, found := sort.Find(len(idx.keys), func(i int) int {
		return idx.cmp(query, idx.keys[i])
	})

	if !found {
		return nil
	}

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.keys) && idx.cmp(query, idx.keys[j]) == 0; j++ {
	}
	return idx.values[i:j]
}

// Values returns the values in key order. The slice must not be modified.
func (idx *Index[V]) Values() []V {
	if idx == nil {
		return nil
	}
	return idx.values
}

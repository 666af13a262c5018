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
	"testing"

	"github.com/google/go-cmp/cmp"
)

var errBroken = errors.New("broken")

type brokenIterator struct {
	n      int
	closed bool
}

func (it *brokenIterator) Next() bool {
	if it.n >= 2 {
		return false
	}
	it.n++
	return true
}

func (it *brokenIterator) Value() int { return it.n }

func (*brokenIterator) Err() error { return errBroken }

func (it *brokenIterator) Close() error {
	it.closed = true
	return nil
}

func TestSliceIterator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
	}{
		{name: "empty"},
		{name: "one", values: []string{"entity"}},
		{name: "many", values: []string{"entity", "physical_entity", "abstraction"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			it := NewSliceIterator(test.values)
			if got := it.Value(); got != "" {
				t.Errorf("Value before Next: got %q, want zero value", got)
			}
			got, err := Collect[string](it)
			if err != nil {
				t.Fatalf("Collect: %v", err)
			}
			if diff := cmp.Diff(test.values, got); diff != "" {
				t.Errorf("Collect (-want, +got):\n%s", diff)
			}
			if it.Next() {
				t.Errorf("Next after end: got true")
			}
			if got := it.Value(); got != "" {
				t.Errorf("Value after end: got %q, want zero value", got)
			}
		})
	}
}

func TestCollect_error(t *testing.T) {
	t.Parallel()

	it := &brokenIterator{}
	got, err := Collect[int](it)
	if !errors.Is(err, errBroken) {
		t.Errorf("Collect: got error %v, want %v", err, errBroken)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("Collect (-want, +got):\n%s", diff)
	}
	if !it.closed {
		t.Errorf("Collect did not close the iterator")
	}
}

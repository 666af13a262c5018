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

package lexicon

import (
	"fmt"
	"strings"
)

// SynsetID identifies a synset by its byte offset in the data file of its
// part of speech.
type SynsetID struct {
	Offset int
	POS    POS
}

// String returns the synset id in the form SID-00001740-n.
func (id SynsetID) String() string {
	return fmt.Sprintf("SID-%08d-%c", id.Offset, id.POS.Tag())
}

// SenseID identifies a sense within a synset by its 1-based ordinal Number,
// by its Lemma, or both. A zero Number or an empty Lemma means the field is
// unknown.
type SenseID struct {
	Synset SynsetID
	Number int
	Lemma  string
}

// HasNumber reports whether the id carries the sense number.
func (id SenseID) HasNumber() bool {
	return id.Number > 0
}

// HasLemma reports whether the id carries the lemma.
func (id SenseID) HasLemma() bool {
	return id.Lemma != ""
}

// Equal reports whether the two ids denote the same sense. Ids are compared
// on the most specific field both of them carry: the number if both have one,
// otherwise the lemma, case-insensitively. A number-only id is never equal to
// a lemma-only id. The relation is not transitive and SenseID must not be
// used as a map key where variants are mixed.
func (id SenseID) Equal(other SenseID) bool {
	if id.Synset != other.Synset {
		return false
	}
	if id.HasNumber() && other.HasNumber() {
		return id.Number == other.Number
	}
	if id.HasLemma() && other.HasLemma() {
		return strings.EqualFold(id.Lemma, other.Lemma)
	}
	return false
}

// String returns the sense id in the form WID-00001740-n-1-entity. Unknown
// fields are written as '?'.
func (id SenseID) String() string {
	num := "?"
	if id.HasNumber() {
		num = fmt.Sprintf("%d", id.Number)
	}
	lemma := "?"
	if id.HasLemma() {
		lemma = id.Lemma
	}
	return fmt.Sprintf("WID-%08d-%c-%s-%s", id.Synset.Offset, id.Synset.POS.Tag(), num, lemma)
}

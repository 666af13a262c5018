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

// Package lexicon contains the record types of a WordNet lexical database.
//
// The database is made of:
//  1. Synsets: sets of synonymous word senses. A synset is identified by its
//     byte offset in the data file of its part of speech.
//  2. Senses: one lemma's occurrence in a synset. A sense is globally
//     identified by its sense key.
//  3. Index entries: the list of senses of a lemma for a part of speech.
//  4. Sense entries: the join between a sense key, the synset offset and the
//     sense's frequency metadata.
//  5. Exception entries: irregular inflected forms mapped to their roots.
//
// Identifiers are plain values and may be compared with ==, with the
// exception of SenseID which has its own equality rules (see SenseID.Equal).
// Synsets and senses are immutable once built. A Sense holds a back-reference
// to the Synset that owns it, so a Synset is always built first and its
// senses are created from deferred SenseBuilder functions.
package lexicon

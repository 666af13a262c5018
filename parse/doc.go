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

// Package parse implements parsers for the lines of WordNet database files.
//
// Every file is made of space separated fields, one record per line:
//  1. data.pos: synsets, keyed by their zero-filled byte offset.
//  2. index.pos: lemmas with their synset offsets, keyed by lemma.
//  3. pos.exc: inflected forms and their base forms, keyed by surface form.
//  4. index.sense: sense keys with their synset offset and frequency, keyed
//     by sense key.
//
// Lines that start with a space are license comments and are not records.
// The parsers are pure functions and are safe for concurrent use.
package parse

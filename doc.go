// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wordnet defines read access to a WordNet lexical database.
//
// A WordNet database is a directory of sorted text files:
//  1. data.noun, data.verb, data.adj and data.adv contain the synsets of each
//     part of speech keyed by their byte offset in the file.
//  2. index.noun, index.verb, index.adj and index.adv map each lemma to the
//     synsets it occurs in.
//  3. noun.exc, verb.exc, adj.exc and adv.exc list irregular inflected forms
//     and their base forms.
//  4. index.sense maps sense keys to synsets, sense numbers and tag counts.
//
// Files may be compressed using the dictzip format.
//
// Two implementations of Dictionary are provided. Package filedict answers
// every lookup with a binary search over the files. Package ramdict loads
// the whole database into memory, in the background if needed, and serves
// lookups from the file-backed dictionary until the load has finished.
//
// More info on the database format can be found at this URL:
// https://wordnet.princeton.edu/documentation/wndb5wn
package wordnet

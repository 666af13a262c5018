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

// Package source implements binary search over the sorted line files of a
// WordNet database.
//
// Each line of a file starts with its key followed by a space. Files are
// sorted by key under a comparator that depends on the kind of file, which
// allows a line to be found in O(log n) reads without loading the file. Lines
// starting with a space are comments and are skipped.
package source

import (
	"fmt"

	"github.com/ianlewis/go-wordnet/lexicon"
)

// Kind is a kind of database file.
type Kind uint8

const (
	// Data files hold synsets keyed by offset.
	Data Kind = iota + 1

	// Index files hold sense indexes keyed by lemma.
	Index

	// Exception files hold irregular forms keyed by surface form.
	Exception

	// Sense is the index.sense file of sense entries keyed by sense key. It
	// is not split by part of speech.
	Sense
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Data:
		return "data"
	case Index:
		return "index"
	case Exception:
		return "exception"
	case Sense:
		return "sense"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ContentType identifies a database file by kind and part of speech. POS is
// zero for Sense.
type ContentType struct {
	Kind Kind
	POS  lexicon.POS
}

// String returns e.g. "data.noun" or "sense".
func (c ContentType) String() string {
	if c.Kind == Sense {
		return c.Kind.String()
	}
	return c.Kind.String() + "." + c.POS.FileName()
}

// SenseContent is the content type of the sense index file.
var SenseContent = ContentType{Kind: Sense}

// ContentTypes returns every content type of a database.
func ContentTypes() []ContentType {
	var cts []ContentType
	for _, k := range []Kind{Data, Index, Exception} {
		for _, pos := range lexicon.AllPOS {
			cts = append(cts, ContentType{Kind: k, POS: pos})
		}
	}
	return append(cts, SenseContent)
}

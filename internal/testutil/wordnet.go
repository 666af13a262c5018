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

// Package testutil writes WordNet database fixtures for tests.
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// License is the comment header written at the top of every fixture file.
// Comment lines start with a space.
var License = []string{
	"  1 This software and database is being provided to you, the LICENSEE, by",
	"  2 Princeton University under the following license.",
}

// Fixture is a small database of two noun synsets, an abstraction synset
// whose lemmas differ only by case, and an adjective cluster of a head, its
// antonym and a satellite. Lines are in file order.
//
// The sense entry of "Abstraction" is missing from index.sense so that sense
// key lookups must fall back to the index file.
var Fixture = map[string][]string{
	"data.noun": {
		"00001740 03 n 01 entity 0 001 ~ 00001930 n 0000 | that which is perceived or known or inferred to have its own distinct existence",
		"00001930 03 n 01 physical_entity 0 001 @ 00001740 n 0000 | an entity that has physical existence",
		"00002137 03 n 02 Abstraction 0 abstraction 0 000 | a general concept formed by extracting common features from specific examples",
	},
	"index.noun": {
		"abstraction n 1 0 1 0 00002137",
		"entity n 1 1 ~ 1 1 00001740",
		"physical_entity n 1 1 @ 1 0 00001930",
	},
	"noun.exc": {
		"entities entity",
		"geese goose",
	},
	"data.adj": {
		"01247240 00 a 01 hot 0 002 ! 01251128 a 0101 & 01247944 s 0000 | used of physical heat; having a high temperature",
		"01247944 00 s 02 baking 0 baking_hot 0 001 & 01247240 a 0000 | as hot as if in an oven",
		"01251128 00 a 02 cold 0 frigid 0 001 ! 01247240 a 0101 | used of physical coldness; having a low temperature",
	},
	"index.adj": {
		"baking a 1 1 & 1 0 01247944",
		"baking_hot a 1 1 & 1 0 01247944",
		"cold a 1 1 ! 1 1 01251128",
		"frigid a 1 0 1 0 01251128",
		"hot a 1 2 ! & 1 1 01247240",
	},
	"adj.exc": {
		"colder cold",
		"hotter hot",
	},
	"index.sense": {
		"baking%5:00:00:hot:00 01247944 1 0",
		"baking_hot%5:00:00:hot:00 01247944 1 0",
		"cold%3:00:00:: 01251128 1 1",
		"entity%1:03:00:: 00001740 1 11",
		"frigid%3:00:00:: 01251128 1 0",
		"hot%3:00:00:: 01247240 1 1",
		"physical_entity%1:03:00:: 00001930 1 0",
	},
}

// DatabaseOptions are options for WriteDatabase.
type DatabaseOptions struct {
	// DictZip compresses every file with dictzip and adds a .dz extension.
	DictZip bool

	// NoLicense omits the comment header.
	NoLicense bool
}

// WriteDatabase writes files to a new temporary directory and returns the
// directory path. Each file is written with the License header followed by
// its lines.
func WriteDatabase(t *testing.T, files map[string][]string, opts *DatabaseOptions) string {
	t.Helper()
	if opts == nil {
		opts = &DatabaseOptions{}
	}

	dir := t.TempDir()
	for name, lines := range files {
		var b strings.Builder
		if !opts.NoLicense {
			for _, l := range License {
				b.WriteString(l)
				b.WriteByte('\n')
			}
		}
		for _, l := range lines {
			b.WriteString(l)
			b.WriteByte('\n')
		}

		path := filepath.Join(dir, name)
		if opts.DictZip {
			writeDictZip(t, path+".dz", []byte(b.String()))
			continue
		}
		if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func writeDictZip(t *testing.T, path string, b []byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		t.Fatal(err)
	}
}

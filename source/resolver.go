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

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/ianlewis/go-wordnet/lexicon"
)

// Resolver finds the file of each content type in a database directory.
type Resolver struct {
	// Patterns match the base name of the file of each content type. Content
	// types without a pattern are never resolved.
	Patterns map[ContentType]*regexp.Regexp
}

// DefaultPatterns returns patterns matching the Unix file names (data.noun,
// index.noun, noun.exc, index.sense) and the Windows file names (noun.dat,
// noun.idx, noun.exc, sense.idx) of WordNet distributions, optionally
// compressed with dictzip.
func DefaultPatterns() map[ContentType]*regexp.Regexp {
	p := map[ContentType]*regexp.Regexp{}
	for _, pos := range lexicon.AllPOS {
		name := regexp.QuoteMeta(pos.FileName())
		p[ContentType{Kind: Data, POS: pos}] = regexp.MustCompile(
			`^(?i:data\.` + name + `|` + name + `\.dat)(?i:\.dz)?$`)
		p[ContentType{Kind: Index, POS: pos}] = regexp.MustCompile(
			`^(?i:index\.` + name + `|` + name + `\.idx)(?i:\.dz)?$`)
		p[ContentType{Kind: Exception, POS: pos}] = regexp.MustCompile(
			`^(?i:` + name + `\.exc)(?i:\.dz)?$`)
	}
	p[SenseContent] = regexp.MustCompile(`^(?i:index\.sense|sense\.idx)(?i:\.dz)?$`)
	return p
}

// DefaultResolver uses DefaultPatterns.
var DefaultResolver = &Resolver{Patterns: DefaultPatterns()}

// Resolve returns the path of the file of each content type found in dir.
// When several files match a pattern the first in name order is used.
// Content types without a file are absent from the result.
func (r *Resolver) Resolve(dir string) (map[ContentType]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading database directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	paths := map[ContentType]string{}
	for ct, re := range r.Patterns {
		for _, name := range names {
			if re.MatchString(name) {
				paths[ct] = filepath.Join(dir, name)
				break
			}
		}
	}
	return paths, nil
}

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

// Package folding implements text transformers that normalize lemmas before
// they are looked up in the database files.
package folding

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// Lemma returns a transformer that normalizes a lemma the way lemmas are
// written in index files: lower case, without surrounding whitespace and with
// the words of a collocation joined by underscores.
func Lemma() transform.Transformer {
	return transform.Chain(
		&CollocationFolder{},
		cases.Lower(language.Und),
	)
}

// FoldLemma applies Lemma to s.
func FoldLemma(s string) (string, error) {
	folded, _, err := transform.String(Lemma(), s)
	if err != nil {
		return "", fmt.Errorf("folding lemma %q: %w", s, err)
	}
	return folded, nil
}

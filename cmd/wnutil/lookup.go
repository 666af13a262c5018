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

package main

import (
	"fmt"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/lexicon"
)

var lookupCommand = &cli.Command{
	Name:      "lookup",
	Usage:     "Look up a word",
	ArgsUsage: "WORD",
	Description: strings.Join([]string{
		"Print the synsets of a word. Inflected forms are resolved with the",
		"exception lists.",
	}, "\n"),
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "pos",
			Usage:   "only look up `POS` (noun, verb, adj, adv)",
			Aliases: []string{"p"},
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected one word, got %d arguments", ErrFlagParse, c.NArg())
		}
		word := c.Args().First()

		poses := lexicon.AllPOS
		if names := c.StringSlice("pos"); len(names) > 0 {
			poses = nil
			for _, name := range names {
				pos, err := lexicon.ParsePOS(name)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrFlagParse, err)
				}
				poses = append(poses, pos)
			}
		}

		e, err := loadEnv(c)
		if err != nil {
			return err
		}
		d, err := openDictionary(c, e)
		if err != nil {
			return err
		}
		defer d.Close()

		tbl := table.New("POS", "Synset", "Lemmas", "Gloss").WithWriter(c.App.Writer)
		rows := 0
		for _, pos := range poses {
			synsets, err := lookup(d, word, pos)
			if err != nil {
				return fmt.Errorf("%w: looking up %q: %w", ErrWnutil, word, err)
			}
			for _, s := range synsets {
				tbl.AddRow(pos, s.ID(), lemmas(s), s.Gloss())
				rows++
			}
		}
		if rows == 0 {
			_, err := fmt.Fprintf(c.App.Writer, "%s: not found\n", word)
			return err
		}
		tbl.Print()
		return nil
	},
}

// lookup returns the synsets of word and its base forms in index order.
func lookup(d wordnet.Dictionary, word string, pos lexicon.POS) ([]*lexicon.Synset, error) {
	lemmas := []string{word}
	exc, err := d.Exception(word, pos)
	if err != nil {
		//nolint:wrapcheck // errors are wrapped by the caller.
		return nil, err
	}
	if exc != nil {
		lemmas = append(lemmas, exc.Roots...)
	}

	var synsets []*lexicon.Synset
	seen := map[lexicon.SynsetID]bool{}
	for _, lemma := range lemmas {
		idx, err := d.Index(lemma, pos)
		if err != nil {
			//nolint:wrapcheck // errors are wrapped by the caller.
			return nil, err
		}
		if idx == nil {
			continue
		}
		for _, id := range idx.Senses {
			if seen[id.Synset] {
				continue
			}
			seen[id.Synset] = true
			s, err := d.Synset(id.Synset)
			if err != nil {
				//nolint:wrapcheck // errors are wrapped by the caller.
				return nil, err
			}
			if s != nil {
				synsets = append(synsets, s)
			}
		}
	}
	return synsets, nil
}

func lemmas(s *lexicon.Synset) string {
	var names []string
	for _, w := range s.Senses() {
		names = append(names, strings.ReplaceAll(w.Lemma(), "_", " "))
	}
	return strings.Join(names, ", ")
}

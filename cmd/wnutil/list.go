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
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wordnet/filedict"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/source"
)

var listCommand = &cli.Command{
	Name:      "list",
	Usage:     "List databases",
	ArgsUsage: "[DIR]...",
	Description: strings.Join([]string{
		"List all WordNet databases in the given directories.",
		"The data directories are searched if no directory is given.",
	}, "\n"),
	Action: func(c *cli.Context) error {
		e, err := loadEnv(c)
		if err != nil {
			return err
		}

		dirs := c.Args().Slice()
		if len(dirs) == 0 {
			dirs = c.StringSlice("data-dir")
		}

		var dicts []*filedict.Dictionary
		var errs []error
		for _, path := range dirs {
			openDicts, openErrs := filedict.OpenAll(c.Context, path, &filedict.Options{Logger: e.logger})
			dicts = append(dicts, openDicts...)
			errs = append(errs, openErrs...)
		}
		defer func() {
			for _, d := range dicts {
				_ = d.Close()
			}
		}()
		for _, err := range errs {
			e.logger.Debug("listing databases", "error", err)
		}

		tbl := table.New("Directory", "Parts of speech", "Sense index").WithWriter(c.App.Writer)
		for _, d := range dicts {
			paths, err := source.DefaultResolver.Resolve(d.Dir())
			if err != nil {
				return err
			}
			var names []string
			for _, pos := range lexicon.AllPOS {
				if _, ok := paths[source.ContentType{Kind: source.Data, POS: pos}]; ok {
					names = append(names, pos.String())
				}
			}
			_, hasSense := paths[source.SenseContent]
			tbl.AddRow(d.Dir(), strings.Join(names, ","), hasSense)
		}
		tbl.Print()

		return nil
	},
}

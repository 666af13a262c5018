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

package main

import (
	"fmt"
	"os"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/snapshot"
)

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "Print snapshot statistics",
	ArgsUsage: "[FILE]",
	Action: func(c *cli.Context) error {
		e, err := loadEnv(c)
		if err != nil {
			return err
		}
		path := c.Args().First()
		if path == "" {
			path = e.cfg.Database.Snapshot
		}
		if path == "" {
			return fmt.Errorf("%w: no snapshot file", ErrFlagParse)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWnutil, err)
		}
		defer f.Close()
		data, err := snapshot.Read(f)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWnutil, err)
		}
		st := data.Stats()

		tbl := table.New("POS", "Synsets", "Indexes", "Exceptions").WithWriter(c.App.Writer)
		for _, pos := range lexicon.AllPOS {
			tbl.AddRow(pos, st.Synsets[pos], st.Indexes[pos], st.Exceptions[pos])
		}
		tbl.Print()

		_, err = fmt.Fprintf(c.App.Writer, "\nSenses:         %d\nSense entries:  %d\n", st.Senses, st.Entries)
		return err
	},
}

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
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wordnet/ramdict"
)

var exportCommand = &cli.Command{
	Name:      "export",
	Usage:     "Write a dictionary snapshot",
	ArgsUsage: "FILE",
	Description: "Load the database into memory and write it to FILE. The " +
		"snapshot can be used with the database.snapshot setting.",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected one file, got %d arguments", ErrFlagParse, c.NArg())
		}
		path := c.Args().First()

		e, err := loadEnv(c)
		if err != nil {
			return err
		}
		e.cfg.Loader.InMemory = true
		e.cfg.Loader.Policy = ramdict.Immediate.String()

		d, err := openDictionary(c, e)
		if err != nil {
			return err
		}
		defer d.Close()

		rd, ok := d.(*ramdict.Dictionary)
		if !ok || !rd.IsLoaded() {
			return fmt.Errorf("%w: %w", ErrWnutil, ramdict.ErrNotLoaded)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWnutil, err)
		}
		if err := rd.Export(f); err != nil {
			return errors.Join(fmt.Errorf("%w: exporting: %w", ErrWnutil, err), f.Close())
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: %w", ErrWnutil, err)
		}
		e.logger.Info("wrote snapshot", "path", path)
		return nil
	},
}

// Copyright 2025 Ian Lewis
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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/config"
	"github.com/ianlewis/go-wordnet/filedict"
	"github.com/ianlewis/go-wordnet/ramdict"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrWnutil is a parent error for all command errors.
var ErrWnutil = errors.New("wnutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrWnutil)

// ErrNoDatabase indicates that no WordNet database could be found.
var ErrNoDatabase = fmt.Errorf("%w: no database found", ErrWnutil)

var copyrightNames = []string{
	"2021 Google LLC",
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `wnutil --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, strings.Join(copyrightNames, "\n"), versionInfo.String())
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrWnutil, err)
	}
	return nil
}

// env holds the configuration and logger of a command invocation.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWnutil, err)
	}
	if dir := c.String("dir"); dir != "" {
		cfg.Database.Dir = dir
		cfg.Database.Snapshot = ""
	}
	return &env{
		cfg:    cfg,
		logger: newLogger(cfg.Log, c.App.ErrWriter),
	}, nil
}

// findDatabase returns the first database directory found under the data
// directories.
func findDatabase(ctx context.Context, dirs []string, logger *slog.Logger) (string, error) {
	for _, path := range dirs {
		dicts, errs := filedict.OpenAll(ctx, path, &filedict.Options{Logger: logger})
		for _, err := range errs {
			logger.Debug("searching for database", slog.String("path", path), slog.Any("error", err))
		}
		var found string
		for _, d := range dicts {
			if found == "" {
				found = d.Dir()
			}
			_ = d.Close()
		}
		if found != "" {
			return found, nil
		}
	}
	return "", ErrNoDatabase
}

// openDictionary opens the dictionary described by the configuration. A
// configured snapshot takes precedence over the database directory.
func openDictionary(c *cli.Context, e *env) (wordnet.Dictionary, error) {
	ramOpts := &ramdict.Options{
		LoadRate: e.cfg.Loader.Rate,
		Logger:   e.logger,
	}
	policy, err := e.cfg.Loader.LoadPolicy()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWnutil, err)
	}
	ramOpts.LoadPolicy = policy

	var d wordnet.Dictionary
	if path := e.cfg.Database.Snapshot; path != "" {
		d = ramdict.NewFromSnapshot(func() (io.ReadCloser, error) {
			//nolint:wrapcheck // errors are wrapped by the dictionary.
			return os.Open(path)
		}, ramOpts)
	} else {
		dir := e.cfg.Database.Dir
		if dir == "" {
			dir, err = findDatabase(c.Context, c.StringSlice("data-dir"), e.logger)
			if err != nil {
				return nil, err
			}
		}
		fd := filedict.New(dir, &filedict.Options{
			AppendAdjectiveMarker: e.cfg.Database.AppendAdjectiveMarker,
			Logger:                e.logger,
		})
		d = fd
		if e.cfg.Loader.InMemory {
			d = ramdict.New(fd, ramOpts)
		}
	}

	if _, err := d.Open(c.Context); err != nil {
		return nil, fmt.Errorf("%w: opening dictionary: %w", ErrWnutil, err)
	}
	return d, nil
}

func newWordnetApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search WordNet databases.",
		Description: strings.Join([]string{
			"WordNet utility written in Go.",
			"http://github.com/ianlewis/go-wordnet",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "use the database in `DIR`",
			},
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "search for databases in `DIR`",
				Aliases: []string{"d"},
				Value:   cli.NewStringSlice(dictLocations()...),
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			listCommand,
			lookupCommand,
			exportCommand,
			infoCommand,
		},
	}
}

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

// Package filedict implements a WordNet dictionary that reads the database
// files on demand.
//
// Every lookup is a binary search over a sorted file followed by parsing the
// line that was found. Nothing is cached.
package filedict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/internal/folding"
	"github.com/ianlewis/go-wordnet/internal/lifecycle"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/parse"
	"github.com/ianlewis/go-wordnet/source"
)

// ErrNoDatabase is returned when opening a directory without data files.
var ErrNoDatabase = errors.New("no WordNet data files found")

// Options are options for a Dictionary.
type Options struct {
	// Resolver finds the database files. Defaults to
	// source.DefaultResolver.
	Resolver *source.Resolver

	// Comparators override the order files of each kind are sorted in.
	Comparators map[source.Kind]source.Comparator

	// AppendAdjectiveMarker appends the adjective marker of the head sense
	// to the head word of satellite sense keys. Some older databases write
	// sense keys in this form.
	AppendAdjectiveMarker bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

type sources map[source.ContentType]*source.Source

// Dictionary is a file-backed WordNet dictionary. It is safe for concurrent
// use.
type Dictionary struct {
	dir    string
	opts   Options
	logger *slog.Logger

	lc   lifecycle.Machine
	srcs atomic.Pointer[sources]
}

var _ wordnet.Dictionary = (*Dictionary)(nil)

// New returns a closed dictionary for the database in dir.
func New(dir string, opts *Options) *Dictionary {
	d := &Dictionary{dir: dir}
	if opts != nil {
		d.opts = *opts
	}
	if d.opts.Resolver == nil {
		d.opts.Resolver = source.DefaultResolver
	}
	d.logger = d.opts.Logger
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Dir returns the database directory.
func (d *Dictionary) Dir() string {
	return d.dir
}

// Open opens the database files. Files that are missing are treated as
// empty, but at least one data file must exist.
func (d *Dictionary) Open(ctx context.Context) (bool, error) {
	//nolint:wrapcheck // errors are wrapped by openSources.
	return d.lc.Open(func() error {
		return d.openSources(ctx)
	})
}

func (d *Dictionary) openSources(ctx context.Context) error {
	paths, err := d.opts.Resolver.Resolve(d.dir)
	if err != nil {
		return fmt.Errorf("opening %s: %w", d.dir, err)
	}
	hasData := false
	for ct := range paths {
		hasData = hasData || ct.Kind == source.Data
	}
	if !hasData {
		return fmt.Errorf("%w: %s", ErrNoDatabase, d.dir)
	}

	// Files are opened in content type order.
	srcs := sources{}
	for _, ct := range source.ContentTypes() {
		path, ok := paths[ct]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errors.Join(err, srcs.close())
		}
		s, err := source.Open(path, ct, &source.Options{
			Comparator: d.opts.Comparators[ct.Kind],
		})
		if err != nil {
			return errors.Join(err, srcs.close())
		}
		srcs[ct] = s
		d.logger.Debug("opened database file",
			slog.String("content_type", ct.String()),
			slog.String("path", path),
		)
	}
	d.srcs.Store(&srcs)
	return nil
}

func (s sources) close() error {
	var errs []error
	for _, src := range s {
		errs = append(errs, src.Close())
	}
	return errors.Join(errs...)
}

// Close closes the database files.
func (d *Dictionary) Close() error {
	return d.lc.Close(func() error {
		srcs := d.srcs.Swap(nil)
		if srcs == nil {
			return nil
		}
		return srcs.close()
	})
}

// IsOpen implements wordnet.Dictionary.IsOpen.
func (d *Dictionary) IsOpen() bool {
	return d.lc.IsOpen()
}

// source returns the source of ct or nil if the database has no such file.
func (d *Dictionary) source(ct source.ContentType) (*source.Source, error) {
	if err := d.lc.Check(); err != nil {
		return nil, err
	}
	srcs := d.srcs.Load()
	if srcs == nil {
		return nil, wordnet.ErrClosed
	}
	return (*srcs)[ct], nil
}

// line returns the line of key in the file of ct.
func (d *Dictionary) line(ct source.ContentType, key string) (string, bool, error) {
	src, err := d.source(ct)
	if err != nil || src == nil {
		return "", false, err
	}
	line, ok, err := src.Line(key)
	if err != nil {
		return "", false, fmt.Errorf("looking up %q in %s: %w", key, ct, err)
	}
	return line, ok, nil
}

// Synset implements wordnet.Dictionary.Synset.
func (d *Dictionary) Synset(id lexicon.SynsetID) (*lexicon.Synset, error) {
	s, err := d.rawSynset(id)
	if err != nil || s == nil {
		return nil, err
	}
	if err := d.setHeads(s); err != nil {
		return nil, err
	}
	return s, nil
}

// rawSynset returns the synset without completing satellite sense keys.
func (d *Dictionary) rawSynset(id lexicon.SynsetID) (*lexicon.Synset, error) {
	ct := source.ContentType{Kind: source.Data, POS: id.POS}
	line, ok, err := d.line(ct, source.OffsetKey(id.Offset))
	if err != nil || !ok {
		return nil, err
	}
	s, err := parse.DataLine(line)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ct, err)
	}
	return s, nil
}

// parseSynset parses a data line and completes satellite sense keys.
func (d *Dictionary) parseSynset(line string) (*lexicon.Synset, error) {
	s, err := parse.DataLine(line)
	if err != nil {
		return nil, err
	}
	if err := d.setHeads(s); err != nil {
		return nil, err
	}
	return s, nil
}

// setHeads sets the head fields of the sense keys of a satellite synset. The
// head word is the lemma of the first sense of the head synset the satellite
// is similar to.
func (d *Dictionary) setHeads(s *lexicon.Synset) error {
	if !s.IsAdjectiveSatellite() {
		return nil
	}
	for _, id := range s.Related(lexicon.SimilarTo) {
		head, err := d.rawSynset(id)
		if err != nil {
			return err
		}
		if head == nil || !head.IsAdjectiveHead() || len(head.Senses()) == 0 {
			continue
		}

		w := head.Senses()[0]
		word := strings.ToLower(w.Lemma())
		if m := w.AdjectiveMarker(); d.opts.AppendAdjectiveMarker && m != nil {
			word += m.Symbol
		}
		for _, sense := range s.Senses() {
			if !sense.Key().NeedsHead() {
				continue
			}
			if err := sense.Key().SetHead(word, w.LexID()); err != nil {
				return fmt.Errorf("setting head of %s: %w", s.ID(), err)
			}
		}
		return nil
	}

	d.logger.Debug("satellite synset has no head", slog.String("synset", s.ID().String()))
	return nil
}

// Sense implements wordnet.Dictionary.Sense.
func (d *Dictionary) Sense(id lexicon.SenseID) (*lexicon.Sense, error) {
	s, err := d.Synset(id.Synset)
	if err != nil || s == nil {
		return nil, err
	}
	return s.Lookup(id), nil
}

// SenseByKey implements wordnet.Dictionary.SenseByKey. The sense is found
// through its sense entry if there is one and through the index entry of the
// key's lemma otherwise.
func (d *Dictionary) SenseByKey(key *lexicon.SenseKey) (*lexicon.Sense, error) {
	entry, err := d.SenseEntry(key)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		s, err := d.Synset(entry.SynsetID())
		if err != nil {
			return nil, err
		}
		if s != nil {
			if w := s.SenseByKey(key); w != nil {
				return w, nil
			}
		}
	}

	// Synsets may hold lemmas that differ only by case and index.sense
	// only has one of them.
	idx, err := d.Index(key.Lemma(), key.POS())
	if err != nil || idx == nil {
		return nil, err
	}
	var match *lexicon.Sense
	for _, id := range idx.Senses {
		s, err := d.Synset(id.Synset)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		w := s.SenseByKey(key)
		if w == nil {
			continue
		}
		if w.Lemma() == key.Lemma() {
			return w, nil
		}
		if match == nil {
			match = w
		}
	}
	return match, nil
}

// Index implements wordnet.Dictionary.Index.
func (d *Dictionary) Index(lemma string, pos lexicon.POS) (*lexicon.SenseIndex, error) {
	folded, err := folding.FoldLemma(lemma)
	if err != nil || folded == "" {
		//nolint:wrapcheck // errors are wrapped by FoldLemma.
		return nil, err
	}
	ct := source.ContentType{Kind: source.Index, POS: pos}
	line, ok, err := d.line(ct, folded)
	if err != nil || !ok {
		return nil, err
	}
	idx, err := parse.IndexLine(line)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ct, err)
	}
	return idx, nil
}

// SenseEntry implements wordnet.Dictionary.SenseEntry.
func (d *Dictionary) SenseEntry(key *lexicon.SenseKey) (*lexicon.SenseEntry, error) {
	line, ok, err := d.line(source.SenseContent, key.String())
	if err != nil || !ok {
		return nil, err
	}
	e, err := parse.SenseLine(line)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source.SenseContent, err)
	}
	return e, nil
}

// Exception implements wordnet.Dictionary.Exception.
func (d *Dictionary) Exception(surface string, pos lexicon.POS) (*lexicon.ExceptionEntry, error) {
	folded, err := folding.FoldLemma(surface)
	if err != nil || folded == "" {
		//nolint:wrapcheck // errors are wrapped by FoldLemma.
		return nil, err
	}
	ct := source.ContentType{Kind: source.Exception, POS: pos}
	line, ok, err := d.line(ct, folded)
	if err != nil || !ok {
		return nil, err
	}
	proxy, err := parse.ExceptionLine(line)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ct, err)
	}
	return lexicon.NewExceptionEntry(proxy, pos), nil
}

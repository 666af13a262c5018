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

// Package ramdict implements a WordNet dictionary held in memory.
//
// A Dictionary loads the whole database from a backing dictionary into a
// snapshot.Data, or imports a snapshot written by Export. Until the snapshot
// is installed every lookup is answered by the backing dictionary. Iterators
// created before the snapshot is installed switch to it without skipping or
// repeating values.
package ramdict

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/internal/lifecycle"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/snapshot"
)

// ErrNotLoaded is returned when exporting a dictionary whose snapshot has not
// been loaded.
var ErrNotLoaded = errors.New("dictionary not loaded")

// LoadPolicy determines when a Dictionary loads its snapshot.
type LoadPolicy int

const (
	// Background starts loading when the dictionary is opened. Open does
	// not wait for the load to finish.
	Background LoadPolicy = iota

	// Immediate loads the snapshot before Open returns.
	Immediate
)

// String returns the name of the policy.
func (p LoadPolicy) String() string {
	switch p {
	case Background:
		return "background"
	case Immediate:
		return "immediate"
	default:
		return fmt.Sprintf("LoadPolicy(%d)", int(p))
	}
}

// Options are options for a Dictionary.
type Options struct {
	// LoadPolicy defaults to Background. Dictionaries created with
	// NewFromSnapshot always load immediately.
	LoadPolicy LoadPolicy

	// LoadRate limits the number of records read from the backing
	// dictionary per second. Zero means no limit.
	LoadRate float64

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Dictionary is an in-memory WordNet dictionary. It is safe for concurrent
// use.
//
// Two locks are used. The lifecycle lock, held by the lifecycle.Machine,
// serializes Open and Close. The load lock serializes starting and joining
// the loader and exporting. When both are needed the lifecycle lock is
// acquired first. The loader itself takes neither lock.
type Dictionary struct {
	backing wordnet.Dictionary
	stream  func() (io.ReadCloser, error)
	opts    Options
	logger  *slog.Logger

	lc lifecycle.Machine

	// loadMu guards loader.
	loadMu sync.Mutex
	loader *loader

	data atomic.Pointer[snapshot.Data]
}

var _ wordnet.Dictionary = (*Dictionary)(nil)

// loader is a running or finished load.
type loader struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// finished reports whether the load has returned.
func (l *loader) finished() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// New returns a closed dictionary loading from backing. The dictionary owns
// backing and opens and closes it.
func New(backing wordnet.Dictionary, opts *Options) *Dictionary {
	return newDictionary(backing, nil, opts)
}

// NewFromSnapshot returns a closed dictionary that imports the snapshot
// returned by open when it is opened.
func NewFromSnapshot(open func() (io.ReadCloser, error), opts *Options) *Dictionary {
	d := newDictionary(nil, open, opts)
	d.opts.LoadPolicy = Immediate
	return d
}

func newDictionary(backing wordnet.Dictionary, stream func() (io.ReadCloser, error), opts *Options) *Dictionary {
	d := &Dictionary{
		backing: backing,
		stream:  stream,
	}
	if opts != nil {
		d.opts = *opts
	}
	d.logger = d.opts.Logger
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Open opens the backing dictionary, or imports the snapshot, and starts
// loading according to the load policy. Load failures are logged and the
// dictionary keeps serving lookups from the backing dictionary.
func (d *Dictionary) Open(ctx context.Context) (bool, error) {
	ok, err := d.lc.Open(func() error {
		if d.backing == nil {
			return d.importSnapshot()
		}
		ok, err := d.backing.Open(ctx)
		if err != nil {
			return fmt.Errorf("opening backing dictionary: %w", err)
		}
		if !ok {
			return errors.New("opening backing dictionary: dictionary busy")
		}
		return nil
	})
	if err != nil || !ok {
		//nolint:wrapcheck // errors are wrapped in the open function.
		return ok, err
	}

	// The lifecycle lock is released before waiting for the load so that
	// Close can cancel it.
	if d.backing != nil {
		if err := d.Load(ctx, d.opts.LoadPolicy == Immediate); err != nil {
			d.logger.Warn("waiting for dictionary load", slog.Any("error", err))
		}
	}
	return true, nil
}

func (d *Dictionary) importSnapshot() error {
	if d.stream == nil {
		return errors.New("no backing dictionary or snapshot")
	}
	rc, err := d.stream()
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	data, err := snapshot.Read(rc)
	if cerr := rc.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing snapshot: %w", cerr)
	}
	if err != nil {
		//nolint:wrapcheck // errors are wrapped by snapshot.Read.
		return err
	}
	d.data.Store(data)
	d.logger.Info("imported dictionary snapshot", statsAttrs(data)...)
	return nil
}

// Close cancels and waits for a running load and closes the backing
// dictionary. The snapshot is discarded.
func (d *Dictionary) Close() error {
	return d.lc.Close(func() error {
		d.loadMu.Lock()
		if l := d.loader; l != nil {
			l.cancel()
			<-l.done
			d.loader = nil
		}
		d.loadMu.Unlock()

		d.data.Store(nil)
		if d.backing != nil {
			//nolint:wrapcheck // errors are wrapped by the backing dictionary.
			return d.backing.Close()
		}
		return nil
	})
}

// IsOpen implements wordnet.Dictionary.IsOpen.
func (d *Dictionary) IsOpen() bool {
	return d.lc.IsOpen()
}

// IsLoaded reports whether the snapshot is installed.
func (d *Dictionary) IsLoaded() bool {
	return d.data.Load() != nil
}

// Load starts loading the snapshot from the backing dictionary if it is not
// loaded or being loaded. If block is true Load waits until the load has
// finished or ctx is done. A failed load is logged and not returned; Load
// may be called again to retry.
func (d *Dictionary) Load(ctx context.Context, block bool) error {
	if err := d.lc.Check(); err != nil {
		return err
	}
	if d.backing == nil || d.IsLoaded() {
		return nil
	}

	l, err := d.startLoader()
	if err != nil {
		return err
	}
	if !block || l == nil {
		return nil
	}
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for load: %w", ctx.Err())
	}
}

// startLoader returns the running loader, starting one if the snapshot is
// not installed. It returns a nil loader if the snapshot is installed.
func (d *Dictionary) startLoader() (*loader, error) {
	d.loadMu.Lock()
	defer d.loadMu.Unlock()

	// Close may have joined the loaders since the caller checked the state.
	if !d.lc.IsOpen() {
		return nil, wordnet.ErrClosed
	}
	if d.loader != nil && d.loader.finished() {
		d.loader = nil
	}
	if d.loader == nil && !d.IsLoaded() {
		ctx, cancel := context.WithCancel(context.Background())
		d.loader = &loader{cancel: cancel, done: make(chan struct{})}
		go d.run(ctx, d.loader)
	}
	return d.loader, nil
}

// run loads the snapshot and installs it unless the load fails or is
// cancelled.
func (d *Dictionary) run(ctx context.Context, l *loader) {
	defer close(l.done)
	defer l.cancel()

	d.logger.Info("loading dictionary", slog.Float64("rate", d.opts.LoadRate))
	data, err := load(ctx, d.backing, d.opts.LoadRate)
	switch {
	case errors.Is(err, context.Canceled):
		d.logger.Info("dictionary load cancelled")
		return
	case err != nil:
		d.logger.Error("loading dictionary", slog.Any("error", err))
		return
	}
	d.data.Store(data)
	d.logger.Info("loaded dictionary", statsAttrs(data)...)
}

func statsAttrs(data *snapshot.Data) []any {
	st := data.Stats()
	synsets := 0
	for _, n := range st.Synsets {
		synsets += n
	}
	return []any{
		slog.Int("synsets", synsets),
		slog.Int("senses", st.Senses),
		slog.Int("sense_entries", st.Entries),
	}
}

// Export writes the snapshot to w. It returns ErrNotLoaded if the snapshot
// is not installed.
func (d *Dictionary) Export(w io.Writer) error {
	if err := d.lc.Check(); err != nil {
		return err
	}
	d.loadMu.Lock()
	defer d.loadMu.Unlock()

	data := d.data.Load()
	if data == nil {
		return ErrNotLoaded
	}
	//nolint:wrapcheck // errors are wrapped by snapshot.Write.
	return snapshot.Write(w, data)
}

// tier returns the snapshot if it is installed and the backing dictionary
// otherwise.
func (d *Dictionary) tier() (*snapshot.Data, wordnet.Dictionary, error) {
	if err := d.lc.Check(); err != nil {
		return nil, nil, err
	}
	if data := d.data.Load(); data != nil {
		return data, nil, nil
	}
	if d.backing == nil {
		return nil, nil, ErrNotLoaded
	}
	return nil, d.backing, nil
}

// Synset implements wordnet.Dictionary.Synset.
func (d *Dictionary) Synset(id lexicon.SynsetID) (*lexicon.Synset, error) {
	data, backing, err := d.tier()
	if err != nil {
		return nil, err
	}
	if data != nil {
		return data.Synset(id), nil
	}
	//nolint:wrapcheck // errors are wrapped by the backing dictionary.
	return backing.Synset(id)
}

// Sense implements wordnet.Dictionary.Sense.
func (d *Dictionary) Sense(id lexicon.SenseID) (*lexicon.Sense, error) {
	data, backing, err := d.tier()
	if err != nil {
		return nil, err
	}
	if data != nil {
		return data.Sense(id), nil
	}
	//nolint:wrapcheck // errors are wrapped by the backing dictionary.
	return backing.Sense(id)
}

// SenseByKey implements wordnet.Dictionary.SenseByKey.
func (d *Dictionary) SenseByKey(key *lexicon.SenseKey) (*lexicon.Sense, error) {
	data, backing, err := d.tier()
	if err != nil {
		return nil, err
	}
	if data != nil {
		return data.SenseByKey(key), nil
	}
	//nolint:wrapcheck // errors are wrapped by the backing dictionary.
	return backing.SenseByKey(key)
}

// Index implements wordnet.Dictionary.Index.
func (d *Dictionary) Index(lemma string, pos lexicon.POS) (*lexicon.SenseIndex, error) {
	data, backing, err := d.tier()
	if err != nil {
		return nil, err
	}
	if data != nil {
		//nolint:wrapcheck // errors are wrapped by the snapshot.
		return data.Index(lemma, pos)
	}
	//nolint:wrapcheck // errors are wrapped by the backing dictionary.
	return backing.Index(lemma, pos)
}

// SenseEntry implements wordnet.Dictionary.SenseEntry.
func (d *Dictionary) SenseEntry(key *lexicon.SenseKey) (*lexicon.SenseEntry, error) {
	data, backing, err := d.tier()
	if err != nil {
		return nil, err
	}
	if data != nil {
		return data.SenseEntry(key), nil
	}
	//nolint:wrapcheck // errors are wrapped by the backing dictionary.
	return backing.SenseEntry(key)
}

// Exception implements wordnet.Dictionary.Exception.
func (d *Dictionary) Exception(surface string, pos lexicon.POS) (*lexicon.ExceptionEntry, error) {
	data, backing, err := d.tier()
	if err != nil {
		return nil, err
	}
	if data != nil {
		//nolint:wrapcheck // errors are wrapped by the snapshot.
		return data.Exception(surface, pos)
	}
	//nolint:wrapcheck // errors are wrapped by the backing dictionary.
	return backing.Exception(surface, pos)
}

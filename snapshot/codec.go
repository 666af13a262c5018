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

package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/parse"
)

const (
	// magic starts every snapshot stream.
	magic = "WNSNAP"

	// formatVersion is incremented on incompatible changes to the records.
	formatVersion = 1
)

// ErrBadSnapshot is returned when reading a stream that is not a snapshot
// or was written by an incompatible version.
var ErrBadSnapshot = errors.New("bad snapshot")

// header is the first record of a snapshot. The counts give the number of
// records of each kind that follow, in that order.
type header struct {
	Version    int `json:"version"`
	Synsets    int `json:"synsets"`
	Indexes    int `json:"indexes"`
	Exceptions int `json:"exceptions"`
	Entries    int `json:"entries"`
}

type synsetPointerRecord struct {
	Symbol  string             `json:"symbol"`
	Targets []lexicon.SynsetID `json:"targets"`
}

type sensePointerRecord struct {
	Symbol  string            `json:"symbol"`
	Targets []lexicon.SenseID `json:"targets"`
}

type senseRecord struct {
	Lemma    string               `json:"lemma"`
	LexID    int                  `json:"lex_id"`
	Marker   string               `json:"marker,omitempty"`
	Frames   []int                `json:"frames,omitempty"`
	Key      string               `json:"key"`
	Pointers []sensePointerRecord `json:"pointers,omitempty"`

	// KeyLemma is the lemma of the key as written in the data file. Key
	// holds it lower cased.
	KeyLemma string `json:"key_lemma"`
}

// senseKey returns the key of the sense with the lemma case restored.
func (wr *senseRecord) senseKey() (*lexicon.SenseKey, error) {
	key, err := parse.SenseKey(wr.Key)
	if err != nil {
		//nolint:wrapcheck // errors are wrapped by the caller.
		return nil, err
	}
	if wr.KeyLemma == "" || wr.KeyLemma == key.Lemma() {
		return key, nil
	}
	if !strings.EqualFold(wr.KeyLemma, key.Lemma()) {
		return nil, fmt.Errorf("key lemma %q does not match key %q", wr.KeyLemma, wr.Key)
	}
	if head, headID, ok := key.Head(); ok {
		return lexicon.NewSatelliteSenseKey(wr.KeyLemma, key.LexID(), key.LexFile(), head, headID), nil
	}
	return lexicon.NewSenseKey(wr.KeyLemma, key.LexID(), key.POS(), key.IsAdjectiveSatellite(), key.LexFile()), nil
}

type synsetRecord struct {
	ID            lexicon.SynsetID      `json:"id"`
	LexFile       int                   `json:"lex_file"`
	Satellite     bool                  `json:"satellite,omitempty"`
	AdjectiveHead bool                  `json:"adjective_head,omitempty"`
	Gloss         string                `json:"gloss"`
	Pointers      []synsetPointerRecord `json:"pointers,omitempty"`
	Senses        []senseRecord         `json:"senses"`
}

type indexRecord struct {
	Lemma       string            `json:"lemma"`
	POS         lexicon.POS       `json:"pos"`
	Pointers    []string          `json:"pointers,omitempty"`
	TaggedCount int               `json:"tagged_count"`
	Senses      []lexicon.SenseID `json:"senses"`
}

type exceptionRecord struct {
	Surface string      `json:"surface"`
	Roots   []string    `json:"roots"`
	POS     lexicon.POS `json:"pos"`
}

type entryRecord struct {
	Key      string `json:"key"`
	Offset   int    `json:"offset"`
	Number   int    `json:"number"`
	TagCount int    `json:"tag_count"`
}

// pointerRecords returns the pointers of m ordered by symbol.
func pointerRecords[T, R any](m map[*lexicon.Pointer][]T, rec func(string, []T) R) []R {
	ptrs := make([]*lexicon.Pointer, 0, len(m))
	for p := range m {
		ptrs = append(ptrs, p)
	}
	slices.SortFunc(ptrs, func(a, b *lexicon.Pointer) int {
		return strings.Compare(a.Symbol, b.Symbol)
	})
	var recs []R
	for _, p := range ptrs {
		recs = append(recs, rec(p.Symbol, m[p]))
	}
	return recs
}

func newSynsetRecord(s *lexicon.Synset) *synsetRecord {
	data := s.Data()
	rec := &synsetRecord{
		ID:            data.ID,
		LexFile:       data.LexFile,
		Satellite:     data.Satellite,
		AdjectiveHead: data.AdjectiveHead,
		Gloss:         data.Gloss,
		Pointers: pointerRecords(data.Pointers, func(sym string, ids []lexicon.SynsetID) synsetPointerRecord {
			return synsetPointerRecord{Symbol: sym, Targets: ids}
		}),
	}
	for _, w := range s.Senses() {
		wr := senseRecord{
			Lemma:    w.Lemma(),
			LexID:    w.LexID(),
			Frames:   w.Frames(),
			Key:      w.Key().String(),
			KeyLemma: w.Key().Lemma(),
			Pointers: pointerRecords(w.Pointers(), func(sym string, ids []lexicon.SenseID) sensePointerRecord {
				return sensePointerRecord{Symbol: sym, Targets: ids}
			}),
		}
		if m := w.AdjectiveMarker(); m != nil {
			wr.Marker = m.Symbol
		}
		rec.Senses = append(rec.Senses, wr)
	}
	return rec
}

func (rec *synsetRecord) synset() (*lexicon.Synset, error) {
	pos := rec.ID.POS
	data := lexicon.SynsetData{
		ID:            rec.ID,
		LexFile:       rec.LexFile,
		Satellite:     rec.Satellite,
		AdjectiveHead: rec.AdjectiveHead,
		Gloss:         rec.Gloss,
	}
	if len(rec.Pointers) > 0 {
		data.Pointers = map[*lexicon.Pointer][]lexicon.SynsetID{}
	}
	for _, pr := range rec.Pointers {
		p, err := lexicon.PointerFor(pr.Symbol, pos)
		if err != nil {
			return nil, fmt.Errorf("%w: synset %s: %w", ErrBadSnapshot, rec.ID, err)
		}
		data.Pointers[p] = pr.Targets
	}

	builders := make([]lexicon.SenseBuilder, 0, len(rec.Senses))
	for _, wr := range rec.Senses {
		key, err := wr.senseKey()
		if err != nil {
			return nil, fmt.Errorf("%w: synset %s: %w", ErrBadSnapshot, rec.ID, err)
		}
		sd := lexicon.SenseData{
			Lemma:  wr.Lemma,
			LexID:  wr.LexID,
			Marker: lexicon.AdjMarkerFor(wr.Marker),
			Frames: wr.Frames,
			Key:    key,
		}
		if len(wr.Pointers) > 0 {
			sd.Pointers = map[*lexicon.Pointer][]lexicon.SenseID{}
		}
		for _, pr := range wr.Pointers {
			p, err := lexicon.PointerFor(pr.Symbol, pos)
			if err != nil {
				return nil, fmt.Errorf("%w: synset %s: %w", ErrBadSnapshot, rec.ID, err)
			}
			sd.Pointers[p] = pr.Targets
		}
		builders = append(builders, sd.Builder())
	}
	return lexicon.NewSynset(data, builders), nil
}

func newIndexRecord(idx *lexicon.SenseIndex) *indexRecord {
	rec := &indexRecord{
		Lemma:       idx.Lemma,
		POS:         idx.POS,
		TaggedCount: idx.TaggedCount,
		Senses:      idx.Senses,
	}
	for _, p := range idx.Pointers {
		rec.Pointers = append(rec.Pointers, p.Symbol)
	}
	return rec
}

func (rec *indexRecord) index() (*lexicon.SenseIndex, error) {
	idx := &lexicon.SenseIndex{
		Lemma:       rec.Lemma,
		POS:         rec.POS,
		TaggedCount: rec.TaggedCount,
		Senses:      rec.Senses,
	}
	for _, sym := range rec.Pointers {
		p, err := lexicon.PointerFor(sym, rec.POS)
		if err != nil {
			return nil, fmt.Errorf("%w: index %s: %w", ErrBadSnapshot, rec.Lemma, err)
		}
		idx.Pointers = append(idx.Pointers, p)
	}
	return idx, nil
}

// Write writes d to w as a zstd compressed stream of JSON records.
func Write(w io.Writer, d *Data) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(magic); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	zw, err := zstd.NewWriter(bw)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := encode(json.NewEncoder(zw), d); err != nil {
		_ = zw.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func encode(enc *json.Encoder, d *Data) error {
	h := header{Version: formatVersion, Entries: d.entries.Len()}
	for _, pos := range lexicon.AllPOS {
		h.Synsets += d.synsets[pos].Len()
		h.Indexes += d.indexes[pos].Len()
		h.Exceptions += d.exceptions[pos].Len()
	}
	if err := enc.Encode(h); err != nil {
		//nolint:wrapcheck // errors are wrapped by Write.
		return err
	}

	for _, pos := range lexicon.AllPOS {
		for _, s := range d.Synsets(pos) {
			if err := enc.Encode(newSynsetRecord(s)); err != nil {
				//nolint:wrapcheck // errors are wrapped by Write.
				return err
			}
		}
	}
	for _, pos := range lexicon.AllPOS {
		for _, idx := range d.Indexes(pos) {
			if err := enc.Encode(newIndexRecord(idx)); err != nil {
				//nolint:wrapcheck // errors are wrapped by Write.
				return err
			}
		}
	}
	for _, pos := range lexicon.AllPOS {
		for _, e := range d.Exceptions(pos) {
			if err := enc.Encode(&exceptionRecord{Surface: e.Surface, Roots: e.Roots, POS: e.POS}); err != nil {
				//nolint:wrapcheck // errors are wrapped by Write.
				return err
			}
		}
	}
	for _, e := range d.SenseEntries() {
		if err := enc.Encode(&entryRecord{
			Key:      e.Key.String(),
			Offset:   e.Offset,
			Number:   e.Number,
			TagCount: e.TagCount,
		}); err != nil {
			//nolint:wrapcheck // errors are wrapped by Write.
			return err
		}
	}
	return nil
}

// Read reads a snapshot written by Write.
func Read(r io.Reader) (*Data, error) {
	br := bufio.NewReader(r)
	m := make([]byte, len(magic))
	if _, err := io.ReadFull(br, m); err != nil {
		return nil, fmt.Errorf("%w: reading magic: %w", ErrBadSnapshot, err)
	}
	if string(m) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadSnapshot, m)
	}

	zr, err := zstd.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	defer zr.Close()

	b, err := decode(json.NewDecoder(zr))
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func decode(dec *json.Decoder) (*Builder, error) {
	var h header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrBadSnapshot, err)
	}
	if h.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, h.Version)
	}

	b := NewBuilder()
	for range h.Synsets {
		var rec synsetRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: reading synset: %w", ErrBadSnapshot, err)
		}
		s, err := rec.synset()
		if err != nil {
			return nil, err
		}
		b.AddSynsets(s.POS(), s)
	}
	for range h.Indexes {
		var rec indexRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: reading index: %w", ErrBadSnapshot, err)
		}
		idx, err := rec.index()
		if err != nil {
			return nil, err
		}
		b.AddIndexes(idx.POS, idx)
	}
	for range h.Exceptions {
		var rec exceptionRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: reading exception: %w", ErrBadSnapshot, err)
		}
		b.AddExceptions(rec.POS, lexicon.NewExceptionEntry(&lexicon.ExceptionEntryProxy{
			Surface: rec.Surface,
			Roots:   rec.Roots,
		}, rec.POS))
	}
	for range h.Entries {
		var rec entryRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: reading sense entry: %w", ErrBadSnapshot, err)
		}
		key, err := parse.SenseKey(rec.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: sense entry: %w", ErrBadSnapshot, err)
		}
		b.AddSenseEntries(&lexicon.SenseEntry{
			Key:      key,
			Offset:   rec.Offset,
			Number:   rec.Number,
			TagCount: rec.TagCount,
		})
	}
	return b, nil
}

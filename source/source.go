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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ianlewis/go-dictzip"
)

// maxLineSize is the longest line a LineIterator accepts.
const maxLineSize = 1 << 20

// Options are options for a Source.
type Options struct {
	// Comparator is the order the file is sorted in. Defaults to
	// DefaultComparator for the content type.
	Comparator Comparator
}

// Source is a sorted line file. It is safe for concurrent use; every lookup
// and iterator reads through its own cursor.
type Source struct {
	name   string
	ct     ContentType
	r      io.ReaderAt
	size   int64
	cmp    Comparator
	closer io.Closer
}

// New returns a Source reading size bytes from r.
func New(name string, r io.ReaderAt, size int64, ct ContentType, opts *Options) *Source {
	s := &Source{
		name: name,
		ct:   ct,
		r:    r,
		size: size,
		cmp:  DefaultComparator(ct.Kind),
	}
	if opts != nil && opts.Comparator != nil {
		s.cmp = opts.Comparator
	}
	return s
}

// Open opens the file at path. Files with a .dz extension are read as dictzip
// archives. The Source must be closed with Close.
func Open(path string, ct ContentType, opts *Options) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s file: %w", ct, err)
	}

	if !strings.EqualFold(filepath.Ext(path), ".dz") {
		info, err := f.Stat()
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("reading %s file: %w", ct, err)
		}
		s := New(path, f, info.Size(), ct, opts)
		s.closer = f
		return s, nil
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("opening dictzip %s file: %w", ct, err)
	}
	r := &lockedReaderAt{r: z}
	size, err := probeSize(r)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading dictzip %s file: %w", ct, err)
	}
	s := New(path, r, size, ct, opts)
	s.closer = f
	return s, nil
}

// Name returns the file name of the source.
func (s *Source) Name() string {
	return s.name
}

// ContentType returns the content type of the source.
func (s *Source) ContentType() ContentType {
	return s.ct
}

// Close closes the underlying file.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("closing %s file: %w", s.ct, err)
	}
	return nil
}

// Line returns the line whose key equals key under the source comparator.
// ok is false when there is no such line.
func (s *Source) Line(key string) (line string, ok bool, err error) {
	off, err := s.search(key)
	if err != nil {
		return "", false, err
	}
	_, line, ok, err = s.lineAt(off)
	if err != nil || !ok {
		return "", false, err
	}
	if s.compareLine(line, key) != 0 {
		return "", false, nil
	}
	return line, true, nil
}

// Lines returns an iterator over the lines starting at the first line whose
// key is not less than key. An empty key iterates over the whole file.
func (s *Source) Lines(key string) *LineIterator {
	var off int64
	if key != "" {
		var err error
		off, err = s.search(key)
		if err != nil {
			return &LineIterator{err: err}
		}
	}
	start, _, _, err := s.lineAt(off)
	if err != nil {
		return &LineIterator{err: err}
	}
	sc := bufio.NewScanner(io.NewSectionReader(s.r, start, s.size-start))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineIterator{s: sc}
}

// search returns the smallest offset whose following line has a key not
// less than key. Offsets are searched rather than lines since the line
// boundaries are only known after reading.
func (s *Source) search(key string) (int64, error) {
	var searchErr error
	n := sort.Search(int(s.size)+1, func(i int) bool {
		if searchErr != nil {
			return true
		}
		_, line, ok, err := s.lineAt(int64(i))
		if err != nil {
			searchErr = err
			return true
		}
		if !ok {
			return true
		}
		return s.compareLine(line, key) >= 0
	})
	if searchErr != nil {
		return 0, fmt.Errorf("searching %s file for %q: %w", s.ct, key, searchErr)
	}
	return int64(n), nil
}

// lineAt returns the first line starting at or after off and its start
// offset. ok is false if there is no such line.
func (s *Source) lineAt(off int64) (start int64, line string, ok bool, err error) {
	if off >= s.size {
		return s.size, "", false, nil
	}
	start = off
	if off > 0 {
		// Skip the rest of the line containing off-1.
		start = off - 1
	}
	br := bufio.NewReader(io.NewSectionReader(s.r, start, s.size-start))
	if off > 0 {
		skipped, err := br.ReadString('\n')
		start += int64(len(skipped))
		if errors.Is(err, io.EOF) {
			return start, "", false, nil
		}
		if err != nil {
			return 0, "", false, fmt.Errorf("reading %s file: %w", s.ct, err)
		}
	}
	line, err = br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, "", false, fmt.Errorf("reading %s file: %w", s.ct, err)
	}
	if line == "" {
		return start, "", false, nil
	}
	return start, strings.TrimRight(line, "\r\n"), true, nil
}

// compareLine compares the key of line with key. Comments sort first.
func (s *Source) compareLine(line, key string) int {
	if isComment(line) {
		return -1
	}
	return s.cmp(KeyOf(line), key)
}

// OffsetKey returns the data file key of a synset offset, zero filled to
// eight digits.
func OffsetKey(offset int) string {
	return fmt.Sprintf("%08d", offset)
}

// KeyOf returns the key of a line, its first space delimited field.
func KeyOf(line string) string {
	k, _, _ := strings.Cut(line, " ")
	return k
}

func isComment(line string) bool {
	return line == "" || line[0] == ' '
}

// LineIterator iterates over the lines of a Source in file order. It is not
// safe for concurrent use.
type LineIterator struct {
	s    *bufio.Scanner
	line string
	err  error
}

// Next advances to the next record line, skipping comments. It returns false
// at the end of the file or on error.
func (it *LineIterator) Next() bool {
	if it.s == nil {
		return false
	}
	for it.s.Scan() {
		line := strings.TrimRight(it.s.Text(), "\r")
		if isComment(line) {
			continue
		}
		it.line = line
		return true
	}
	if err := it.s.Err(); err != nil {
		it.err = fmt.Errorf("scanning lines: %w", err)
	}
	it.s = nil
	return false
}

// Line returns the current line.
func (it *LineIterator) Line() string {
	return it.line
}

// Err returns the first error encountered.
func (it *LineIterator) Err() error {
	return it.err
}

// lockedReaderAt serializes ReadAt calls on readers that are not safe for
// concurrent use.
type lockedReaderAt struct {
	mu sync.Mutex
	r  io.ReaderAt
}

func (l *lockedReaderAt) ReadAt(p []byte, off int64) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	//nolint:wrapcheck // errors are wrapped by the Source.
	return l.r.ReadAt(p, off)
}

// probeSize finds the size of r with ReadAt probes. Reading at or past the
// end is expected to return no data.
func probeSize(r io.ReaderAt) (int64, error) {
	buf := make([]byte, 1)
	exists := func(off int64) (bool, error) {
		n, err := r.ReadAt(buf, off)
		if n == 1 {
			return true, nil
		}
		if err == nil || errors.Is(err, io.EOF) || off > 0 {
			return false, nil
		}
		return false, err
	}

	ok, err := exists(0)
	if err != nil || !ok {
		return 0, err
	}
	hi := int64(1)
	for {
		ok, err := exists(hi)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		hi *= 2
	}
	// exists(hi/2) is true and exists(hi) is false.
	lo := hi / 2
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		ok, err := exists(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, nil
}

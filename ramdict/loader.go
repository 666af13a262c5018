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

package ramdict

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/lexicon"
	"github.com/ianlewis/go-wordnet/snapshot"
)

// batchSize is the number of records added to the builder at a time. The
// context is checked between batches.
const batchSize = 1024

// phase reads one kind of record for a part of speech.
type phase struct {
	name string
	run  func(ctx context.Context, pos lexicon.POS) error
}

// load reads every record of src into a new snapshot. The phases run one
// after the other and the parts of speech of a phase concurrently. perSecond
// limits the number of records read per second if it is positive.
func load(ctx context.Context, src wordnet.Dictionary, perSecond float64) (*snapshot.Data, error) {
	var limiter *rate.Limiter
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
	}

	b := snapshot.NewBuilder()
	phases := []phase{
		{
			name: "indexes",
			run: func(ctx context.Context, pos lexicon.POS) error {
				it, err := src.Indexes(pos)
				return drain(ctx, limiter, it, err, func(v ...*lexicon.SenseIndex) {
					b.AddIndexes(pos, v...)
				})
			},
		},
		{
			// The senses of the synsets make up the sense key map.
			name: "synsets",
			run: func(ctx context.Context, pos lexicon.POS) error {
				it, err := src.Synsets(pos)
				return drain(ctx, limiter, it, err, func(v ...*lexicon.Synset) {
					b.AddSynsets(pos, v...)
				})
			},
		},
		{
			name: "exceptions",
			run: func(ctx context.Context, pos lexicon.POS) error {
				it, err := src.Exceptions(pos)
				return drain(ctx, limiter, it, err, func(v ...*lexicon.ExceptionEntry) {
					b.AddExceptions(pos, v...)
				})
			},
		},
	}

	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, gctx := errgroup.WithContext(ctx)
		for _, pos := range lexicon.AllPOS {
			g.Go(func() error {
				return p.run(gctx, pos)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", p.name, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	it, err := src.SenseEntries()
	if err := drain(ctx, limiter, it, err, b.AddSenseEntries); err != nil {
		return nil, fmt.Errorf("loading sense entries: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// drain reads it to the end, passing the values to add in batches.
func drain[T any](ctx context.Context, limiter *rate.Limiter, it wordnet.Iterator[T], err error, add func(...T)) error {
	if err != nil {
		return err
	}
	defer it.Close()

	batch := make([]T, 0, batchSize)
	for it.Next() {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				//nolint:wrapcheck // errors are wrapped by load.
				return err
			}
		}
		batch = append(batch, it.Value())
		if len(batch) == batchSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			add(batch...)
			batch = batch[:0]
		}
	}
	if err := it.Err(); err != nil {
		//nolint:wrapcheck // errors are wrapped by load.
		return err
	}
	add(batch...)
	return ctx.Err()
}

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

package filedict

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/ianlewis/go-wordnet/source"
)

// OpenAll opens all databases under a directory. A directory holds a
// database if it contains at least one data file. This function will return
// all successfully opened dictionaries along with any errors that occurred.
func OpenAll(ctx context.Context, path string, opts *Options) ([]*Dictionary, []error) {
	resolver := source.DefaultResolver
	if opts != nil && opts.Resolver != nil {
		resolver = opts.Resolver
	}

	var dicts []*Dictionary
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		paths, err := resolver.Resolve(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		for ct := range paths {
			if ct.Kind != source.Data {
				continue
			}
			d := New(path, opts)
			if _, err := d.Open(ctx); err != nil {
				errs = append(errs, err)
				return nil
			}
			dicts = append(dicts, d)
			return nil
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return dicts, errs
}

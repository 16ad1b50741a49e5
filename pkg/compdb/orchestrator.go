// Copyright 2025 KrakLabs
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
//
// SPDX-License-Identifier: Apache-2.0

package compdb

import (
	"context"
	"time"
)

// FileParser is the single-file parse capability the drivers dispatch
// to. C is the configuration type the parser accepts; the
// database-bound drivers fix it to *ClangConfig at composition time.
//
// ParseFile is invoked exactly once per file, sequentially, in dispatch
// order. A returned error aborts the batch and is propagated to the
// driver's caller unaltered; a parser that wants to tolerate per-file
// failures records them itself and returns nil.
type FileParser[C any] interface {
	ParseFile(ctx context.Context, path string, config C) error
}

// ParseFilesWith dispatches each file to the parser with a configuration
// obtained from getConfig, in the order given, exactly once per file.
//
// An error from getConfig aborts the batch before the file is
// dispatched; files ordered after it are not processed. No retries,
// reordering, or deduplication.
func ParseFilesWith[C any](ctx context.Context, parser FileParser[C], files []string, getConfig func(file string) (C, error)) error {
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		cfg, err := getConfig(file)
		if err != nil {
			return err
		}

		if err := dispatch(ctx, parser, file, cfg); err != nil {
			return err
		}
	}
	return nil
}

// ParseFiles parses the given files using configurations resolved from
// the database (explicit-list mode).
//
// Each file is resolved with FindConfigFor; a miss is fatal and aborts
// the batch with an *UnresolvedConfigError naming the file, without
// dispatching the files ordered after it. Callers supplying an exact
// file list are assumed to know those files must be resolvable.
func ParseFiles[P FileParser[*ClangConfig]](ctx context.Context, parser P, files []string, db *Database) error {
	return ParseFilesWith(ctx, FileParser[*ClangConfig](parser), files, func(file string) (*ClangConfig, error) {
		cfg, ok := FindConfigFor(db, file)
		if !ok {
			return nil, &UnresolvedConfigError{File: file}
		}
		return cfg, nil
	})
}

// ParseDatabase parses every file known to the database (database-driven
// mode).
//
// Each enumerated file gets its configuration built directly from its
// own entry; no fallback search is needed, because the entry came from
// the same database. Files are dispatched in enumeration order, exactly
// once each.
func ParseDatabase[P FileParser[*ClangConfig]](ctx context.Context, parser P, db *Database) error {
	for file := range db.Files() {
		if err := ctx.Err(); err != nil {
			return err
		}

		cfg, err := NewConfigFromDatabase(db, file)
		if err != nil {
			return err
		}

		if err := dispatch[*ClangConfig](ctx, parser, file, cfg); err != nil {
			return err
		}
	}
	return nil
}

// dispatch invokes the parser for one file, recording metrics.
func dispatch[C any](ctx context.Context, parser FileParser[C], file string, cfg C) error {
	start := time.Now()
	err := parser.ParseFile(ctx, file, cfg)
	recordDispatch(time.Since(start), err == nil)
	return err
}

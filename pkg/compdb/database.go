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
	"iter"
	"log/slog"
	"time"
)

// Database is an exclusively-owning handle over a loaded command store.
//
// Exactly one Database owns a store at a time. Move transfers ownership
// and leaves the source empty; Close releases the store exactly once.
// A released or moved-from Database answers HasConfig with false for all
// inputs and enumerates nothing.
//
// A Database is a read-only view after loading and is not mutated by
// queries. Lookups are not synchronized: callers that share one handle
// across goroutines must serialize them, or load one handle per worker.
type Database struct {
	store CommandStore
}

// Load loads the compilation database stored in the given build
// directory. It returns a *LoadError if the directory has no
// compile_commands.json or the file cannot be parsed.
func Load(dir string) (*Database, error) {
	start := time.Now()

	st, err := loadJSONStore(dir)
	if err != nil {
		recordLoadError()
		return nil, &LoadError{Dir: dir, Err: err}
	}

	recordLoad(time.Since(start))
	slog.Debug("compdb.load", "dir", dir, "entries", st.Len())
	return &Database{store: st}, nil
}

// NewDatabase wraps an already-constructed command store. The Database
// takes ownership: the store must not be closed or shared elsewhere.
func NewDatabase(store CommandStore) *Database {
	return &Database{store: store}
}

// HasConfig reports whether the store contains a command entry for the
// given file name, matched exactly by the store's path-normalization
// rules. It is false on a released or moved-from handle.
func (d *Database) HasConfig(file string) bool {
	if d.store == nil {
		return false
	}
	_, ok := d.store.Lookup(file)
	return ok
}

// lookup returns the raw command entry for a file.
func (d *Database) lookup(file string) (Command, bool) {
	if d.store == nil {
		return Command{}, false
	}
	return d.store.Lookup(file)
}

// Files yields every distinct file name known to the database exactly
// once, in store order. The order is store-defined and need not be
// stable across loads. A released handle yields nothing.
func (d *Database) Files() iter.Seq[string] {
	if d.store == nil {
		return func(func(string) bool) {}
	}
	return d.store.Files()
}

// Len reports the number of distinct files in the database, 0 on a
// released handle.
func (d *Database) Len() int {
	if d.store == nil {
		return 0
	}
	return d.store.Len()
}

// Move transfers ownership of the underlying store to a new Database and
// leaves the receiver empty. Closing both afterwards releases the store
// once.
func (d *Database) Move() *Database {
	moved := &Database{store: d.store}
	d.store = nil
	return moved
}

// Close releases the underlying store. It is idempotent: the store is
// released on the first call only, and a moved-from handle has nothing
// to release.
func (d *Database) Close() error {
	if d.store == nil {
		return nil
	}
	st := d.store
	d.store = nil
	return st.Close()
}

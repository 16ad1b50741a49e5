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

import "iter"

// Command is one entry of a command store: the compile command recorded
// for a single translation unit.
type Command struct {
	// Directory is the working directory of the compile step. Relative
	// paths inside Arguments are relative to it.
	Directory string

	// File is the translation unit, as recorded by the store.
	File string

	// Arguments is the full compiler argv, including the compiler binary
	// at position 0.
	Arguments []string
}

// CommandStore is the external command store a Database wraps. The JSON
// implementation reads compile_commands.json; alternative stores (fixed
// flag lists, test fakes) implement the same contract.
//
// A store is a read-only view after loading: no method mutates it.
type CommandStore interface {
	// Lookup returns the command recorded for the given file name,
	// matched by the store's own path-normalization rules.
	Lookup(file string) (Command, bool)

	// Files yields every distinct file name present in the store exactly
	// once, in store order. The sequence is lazy and single-pass.
	Files() iter.Seq[string]

	// Len reports the number of distinct files in the store.
	Len() int

	// Close releases any resources held by the store.
	Close() error
}

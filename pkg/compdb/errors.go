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

import "fmt"

// LoadError reports that a compilation database could not be loaded from
// a build directory: the directory is missing, compile_commands.json is
// absent, or the file cannot be parsed.
//
// A LoadError is fatal: no dependent operation can proceed without the
// database.
type LoadError struct {
	// Dir is the build directory the load was attempted from.
	Dir string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load compilation database in %q: %v", e.Dir, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnresolvedConfigError reports that no configuration could be resolved
// for a file the caller explicitly asked to parse, even after extension
// fallback. It is raised only by ParseFiles; FindConfigFor itself never
// fails.
type UnresolvedConfigError struct {
	// File is the file name as requested by the caller.
	File string
}

// Error implements the error interface.
func (e *UnresolvedConfigError) Error() string {
	return fmt.Sprintf("unable to find configuration for file %q", e.File)
}

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
	"log/slog"
	"path/filepath"
	"strings"
)

// FallbackExtensions is the extension search order used by FindConfigFor
// when a file has no database entry of its own: source extensions first,
// then headers. The list and its order are a stable contract; callers
// may depend on the first match winning.
var FallbackExtensions = []string{
	".cpp", ".cc", ".cxx", ".c++", ".C",
	".c",
	".hpp", ".hh", ".hxx", ".h++", ".H",
	".h",
}

// FindConfigFor finds a configuration for the given file.
//
// If the database contains an entry for the file, the configuration from
// that entry is returned. Otherwise the file's extension is stripped and
// each candidate in FallbackExtensions is tried in order; the first
// match wins. Compilation databases record commands for translation
// units only, so a header resolves to the flags of a sibling source file
// sharing its stem.
//
// FindConfigFor never fails: a miss is reported as ok=false, and the
// caller decides whether that is fatal.
func FindConfigFor(db *Database, file string) (cfg *ClangConfig, ok bool) {
	if db.HasConfig(file) {
		cfg, err := NewConfigFromDatabase(db, file)
		if err != nil {
			return nil, false
		}
		recordResolveHit()
		return cfg, true
	}

	stem := strings.TrimSuffix(file, filepath.Ext(file))
	for _, ext := range FallbackExtensions {
		candidate := stem + ext
		if candidate == file || !db.HasConfig(candidate) {
			continue
		}
		cfg, err := NewConfigFromDatabase(db, candidate)
		if err != nil {
			continue
		}
		recordResolveFallback()
		slog.Debug("compdb.resolve.fallback", "file", file, "matched", candidate)
		return cfg, true
	}

	recordResolveMiss()
	return nil, false
}

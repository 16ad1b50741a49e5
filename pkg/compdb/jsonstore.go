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
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// DatabaseFileName is the file a build directory must contain to be
// loadable as a compilation database.
const DatabaseFileName = "compile_commands.json"

// commandEntry is the on-disk shape of one compile_commands.json entry.
// Exactly one of Arguments and Command is present in practice; CMake
// emits "command", Bear emits "arguments".
type commandEntry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments,omitempty"`
	Command   string   `json:"command,omitempty"`
	Output    string   `json:"output,omitempty"`
}

// jsonStore is the compile_commands.json implementation of CommandStore.
//
// Each entry is indexed under its verbatim "file" value, its cleaned
// form, and (for relative paths) the path joined with the entry's
// directory. Lookup tries the requested name verbatim first, then
// cleaned. When a file appears in several entries (same unit compiled
// for several targets), the first entry wins and Files yields the name
// once.
type jsonStore struct {
	path     string
	commands []Command
	byFile   map[string]int
	order    []string
}

func loadJSONStore(dir string) (*jsonStore, error) {
	path := filepath.Join(dir, DatabaseFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []commandEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", DatabaseFileName, err)
	}

	st := &jsonStore{
		path:   path,
		byFile: make(map[string]int, len(entries)),
	}
	for i, entry := range entries {
		if entry.File == "" {
			return nil, fmt.Errorf("parse %s: entry %d has no file", DatabaseFileName, i)
		}

		args := entry.Arguments
		if len(args) == 0 {
			if entry.Command == "" {
				return nil, fmt.Errorf("parse %s: entry for %q has neither arguments nor command", DatabaseFileName, entry.File)
			}
			args = splitCommand(entry.Command)
		}

		cmd := Command{
			Directory: entry.Directory,
			File:      entry.File,
			Arguments: args,
		}

		// First entry for a given unit wins; later duplicates (the same
		// unit compiled for several targets) are dropped entirely.
		if _, dup := st.byFile[entry.File]; dup {
			continue
		}
		for _, key := range entryKeys(entry) {
			if _, taken := st.byFile[key]; taken {
				continue
			}
			st.byFile[key] = len(st.commands)
		}
		st.commands = append(st.commands, cmd)
		st.order = append(st.order, entry.File)
	}

	return st, nil
}

// entryKeys returns the lookup keys one entry is indexed under.
func entryKeys(entry commandEntry) []string {
	keys := []string{entry.File}
	if clean := filepath.Clean(entry.File); clean != entry.File {
		keys = append(keys, clean)
	}
	if !filepath.IsAbs(entry.File) && entry.Directory != "" {
		keys = append(keys, filepath.Join(entry.Directory, entry.File))
	}
	return keys
}

func (s *jsonStore) Lookup(file string) (Command, bool) {
	if i, ok := s.byFile[file]; ok {
		return s.commands[i], true
	}
	if i, ok := s.byFile[filepath.Clean(file)]; ok {
		return s.commands[i], true
	}
	return Command{}, false
}

func (s *jsonStore) Files() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, file := range s.order {
			if !yield(file) {
				return
			}
		}
	}
}

func (s *jsonStore) Len() int {
	return len(s.order)
}

func (s *jsonStore) Close() error {
	return nil
}

// splitCommand splits a shell-style command string into an argv slice.
// It understands single quotes, double quotes, and backslash escapes,
// which is what CMake-generated "command" fields use. It does not expand
// variables or globs.
func splitCommand(command string) []string {
	var (
		args    []string
		current strings.Builder
		inArg   bool
		quote   byte
	)

	flush := func() {
		if inArg {
			args = append(args, current.String())
			current.Reset()
			inArg = false
		}
	}

	for i := 0; i < len(command); i++ {
		c := command[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else if c == '\\' && quote == '"' && i+1 < len(command) {
				i++
				current.WriteByte(command[i])
			} else {
				current.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inArg = true
		case c == '\\' && i+1 < len(command):
			i++
			current.WriteByte(command[i])
			inArg = true
		case c == ' ' || c == '\t':
			flush()
		default:
			current.WriteByte(c)
			inArg = true
		}
	}
	flush()

	return args
}

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
	"reflect"
	"testing"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []string
	}{
		{
			name:    "plain",
			command: "clang++ -std=c++17 -c a.cpp",
			want:    []string{"clang++", "-std=c++17", "-c", "a.cpp"},
		},
		{
			name:    "double quotes",
			command: `clang++ -DGREETING="hello world" a.cpp`,
			want:    []string{"clang++", `-DGREETING=hello world`, "a.cpp"},
		},
		{
			name:    "single quotes",
			command: `clang++ -I'my include' a.cpp`,
			want:    []string{"clang++", "-Imy include", "a.cpp"},
		},
		{
			name:    "backslash escaped space",
			command: `clang++ -Imy\ include a.cpp`,
			want:    []string{"clang++", "-Imy include", "a.cpp"},
		},
		{
			name:    "escaped quote inside double quotes",
			command: `clang++ -DSTR="\"x\"" a.cpp`,
			want:    []string{"clang++", `-DSTR="x"`, "a.cpp"},
		},
		{
			name:    "collapses whitespace runs",
			command: "clang++   -c\t a.cpp",
			want:    []string{"clang++", "-c", "a.cpp"},
		},
		{
			name:    "empty quoted argument",
			command: `clang++ "" a.cpp`,
			want:    []string{"clang++", "", "a.cpp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitCommand(tt.command)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitCommand(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestJSONStore_CommandStringEntries(t *testing.T) {
	dir := writeCompileCommands(t, t.TempDir(), []commandEntry{
		{Directory: "/src", File: "/src/a.cpp", Command: "clang++ -std=c++14 -DX=1 -c /src/a.cpp"},
	})

	st, err := loadJSONStore(dir)
	if err != nil {
		t.Fatalf("loadJSONStore: %v", err)
	}

	cmd, ok := st.Lookup("/src/a.cpp")
	if !ok {
		t.Fatal("Lookup miss for stored file")
	}
	want := []string{"clang++", "-std=c++14", "-DX=1", "-c", "/src/a.cpp"}
	if !reflect.DeepEqual(cmd.Arguments, want) {
		t.Errorf("Arguments = %q, want %q", cmd.Arguments, want)
	}
}

func TestJSONStore_RelativeFileIndexedUnderJoinedPath(t *testing.T) {
	dir := writeCompileCommands(t, t.TempDir(), []commandEntry{
		{Directory: "/build", File: "../src/a.cpp", Arguments: []string{"clang++", "-c", "../src/a.cpp"}},
	})

	st, err := loadJSONStore(dir)
	if err != nil {
		t.Fatalf("loadJSONStore: %v", err)
	}

	for _, key := range []string{"../src/a.cpp", "/src/a.cpp", "/src/./a.cpp"} {
		if _, ok := st.Lookup(key); !ok {
			t.Errorf("Lookup(%q) miss, want hit", key)
		}
	}
}

func TestJSONStore_EntryWithoutFileRejected(t *testing.T) {
	dir := writeCompileCommands(t, t.TempDir(), []commandEntry{
		{Directory: "/src", Arguments: []string{"clang++", "-c", "a.cpp"}},
	})

	if _, err := loadJSONStore(dir); err == nil {
		t.Fatal("loadJSONStore accepted entry without file")
	}
}

func TestJSONStore_EntryWithoutArgumentsOrCommandRejected(t *testing.T) {
	dir := writeCompileCommands(t, t.TempDir(), []commandEntry{
		{Directory: "/src", File: "/src/a.cpp"},
	})

	if _, err := loadJSONStore(dir); err == nil {
		t.Fatal("loadJSONStore accepted entry without arguments or command")
	}
}

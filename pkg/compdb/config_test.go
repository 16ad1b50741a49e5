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
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defaultToolMacros returns the identification macros every default
// configuration must carry.
func defaultToolMacros() []Macro {
	return []Macro{
		{Name: "__clangdb__", Definition: `"clang"`},
		{Name: "__clangdb_major__", Definition: "0"},
		{Name: "__clangdb_minor__", Definition: "4"},
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultClangBinary, cfg.ClangBinary())
	assert.Equal(t, parsePackedVersion(DefaultClangVersion), cfg.ClangVersion())
	assert.Equal(t, defaultToolMacros(), cfg.Defines())
	assert.Equal(t, StandardDefault, cfg.Standard())
	assert.False(t, cfg.WritePreprocessed())
	assert.False(t, cfg.FastPreprocessing())
	assert.False(t, cfg.RemoveCommentsInMacro())
}

func TestSetClangBinary_PacksVersion(t *testing.T) {
	cfg := NewConfig()
	cfg.SetClangBinary("/usr/bin/clang++-18", 18, 1, 8)

	assert.Equal(t, "/usr/bin/clang++-18", cfg.ClangBinary())
	assert.Equal(t, 18*10000+1*100+8, cfg.ClangVersion())
}

func TestCommandLine_Ordering(t *testing.T) {
	cfg := NewConfig()
	cfg.ApplyStandardAndFlags(Cpp17, FlagMSExtensions)
	cfg.AddFlag("-fno-rtti")
	cfg.AddIncludeDir("/usr/include/mylib")
	cfg.AddMacroDefinition("X", "1")
	cfg.RemoveMacroDefinition("NDEBUG")

	want := []string{
		"-std=c++17",
		"-fms-extensions",
		"-fno-rtti",
		"-I", "/usr/include/mylib",
		"-D__clangdb__=\"clang\"",
		"-D__clangdb_major__=0",
		"-D__clangdb_minor__=4",
		"-DX=1",
		"-UNDEBUG",
	}
	assert.Equal(t, want, cfg.CommandLine())
}

func TestCommandLine_GnuExtensions(t *testing.T) {
	cfg := NewConfig()
	cfg.ApplyStandardAndFlags(Cpp14, FlagGnuExtensions)

	assert.Contains(t, cfg.CommandLine(), "-std=gnu++14")
}

func TestAddMacroDefinition_ReplacesByName(t *testing.T) {
	cfg := NewConfig()
	cfg.AddMacroDefinition("X", "1")
	cfg.AddMacroDefinition("X", "2")

	var values []string
	for _, m := range cfg.Defines() {
		if m.Name == "X" {
			values = append(values, m.Definition)
		}
	}
	assert.Equal(t, []string{"2"}, values)
}

func TestRemoveMacroDefinition_DropsDefineAndUndefines(t *testing.T) {
	cfg := NewConfig()
	cfg.AddMacroDefinition("X", "1")
	cfg.RemoveMacroDefinition("X")
	cfg.RemoveMacroDefinition("X") // repeated removal stays a single -U

	for _, m := range cfg.Defines() {
		assert.NotEqual(t, "X", m.Name)
	}
	assert.Equal(t, []string{"X"}, cfg.Undefines())
}

func TestNewConfigFromDatabase_LayersEntryOnDefaults(t *testing.T) {
	dir := writeCompileCommands(t, t.TempDir(), []commandEntry{
		{
			Directory: "/build",
			File:      "/src/a.cpp",
			Arguments: []string{
				"clang++", "-std=c++17", "-DX=1", "-UNDEBUG",
				"-I", "include", "-isystem", "/opt/sys/include",
				"-fno-exceptions", "-Wall",
				"-o", "a.o", "-c", "/src/a.cpp",
			},
		},
	})

	db, err := Load(dir)
	require.NoError(t, err)
	defer db.Close()

	cfg, err := NewConfigFromDatabase(db, "/src/a.cpp")
	require.NoError(t, err)

	// Defaults survive, database macros are layered on top.
	defines := cfg.Defines()
	for _, m := range defaultToolMacros() {
		assert.Contains(t, defines, m)
	}
	assert.Contains(t, defines, Macro{Name: "X", Definition: "1"})
	assert.Equal(t, []string{"NDEBUG"}, cfg.Undefines())

	assert.Equal(t, Cpp17, cfg.Standard())

	// Relative include dirs resolve against the entry directory.
	assert.Equal(t, []string{filepath.Join("/build", "include"), "/opt/sys/include"}, cfg.IncludeDirs())

	// -f and -W flags pass through; -o/-c and the input file do not.
	assert.Equal(t, []string{"-fno-exceptions", "-Wall"}, cfg.Flags())
	assert.NotContains(t, cfg.CommandLine(), "-c")
	assert.NotContains(t, cfg.CommandLine(), "a.o")
}

func TestNewConfigFromDatabase_MissingFile(t *testing.T) {
	dir := writeCompileCommands(t, t.TempDir(), []commandEntry{
		{Directory: "/src", File: "/src/a.cpp", Arguments: []string{"clang++", "-c", "/src/a.cpp"}},
	})

	db, err := Load(dir)
	require.NoError(t, err)
	defer db.Close()

	_, err = NewConfigFromDatabase(db, "/src/b.cpp")
	var unresolved *UnresolvedConfigError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "/src/b.cpp", unresolved.File)
}

func TestClone_Independent(t *testing.T) {
	cfg := NewConfig()
	cfg.AddIncludeDir("/a")

	dup := cfg.Clone()
	dup.AddIncludeDir("/b")
	dup.AddMacroDefinition("ONLY_IN_CLONE", "")

	assert.Equal(t, []string{"/a"}, cfg.IncludeDirs())
	assert.Equal(t, []string{"/a", "/b"}, dup.IncludeDirs())
	assert.False(t, slices.Contains(macroNames(cfg.Defines()), "ONLY_IN_CLONE"))
}

func macroNames(macros []Macro) []string {
	names := make([]string, len(macros))
	for i, m := range macros {
		names[i] = m.Name
	}
	return names
}

func TestParseStandard(t *testing.T) {
	tests := []struct {
		in        string
		want      Standard
		wantFlags CompileFlag
		wantErr   bool
	}{
		{in: "c++11", want: Cpp11},
		{in: "c++17", want: Cpp17},
		{in: "c++23", want: Cpp23},
		{in: "gnu++14", want: Cpp14, wantFlags: FlagGnuExtensions},
		{in: "c++0x", want: Cpp11},
		{in: "c++2a", want: Cpp20},
		{in: "gnu++1z", want: Cpp17, wantFlags: FlagGnuExtensions},
		{in: "fortran77", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			std, flags, err := ParseStandard(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, std)
			assert.Equal(t, tt.wantFlags, flags)
		})
	}
}

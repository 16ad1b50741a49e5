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

package parser

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kraklabs/clangdb/pkg/compdb"
)

func TestCommandFor_Default(t *testing.T) {
	pp := NewPreprocessor(nil)
	cfg := compdb.NewConfig()

	argv := pp.CommandFor("/src/a.cpp", cfg)

	assert.Equal(t, cfg.ClangBinary(), argv[0])
	assert.Equal(t, "-E", argv[1])
	assert.Equal(t, "-CC", argv[2])
	assert.Equal(t, "/src/a.cpp", argv[len(argv)-1])
	assert.NotContains(t, argv, "-dM")

	// The configuration's own flags sit between the mode flags and the
	// file.
	for _, want := range cfg.CommandLine() {
		assert.Contains(t, argv, want)
	}
}

func TestCommandFor_RemoveCommentsInMacro(t *testing.T) {
	pp := NewPreprocessor(nil)
	cfg := compdb.NewConfig()
	cfg.SetRemoveCommentsInMacro(true)

	argv := pp.CommandFor("a.cpp", cfg)
	assert.Contains(t, argv, "-C")
	assert.NotContains(t, argv, "-CC")
}

func TestCommandFor_FastPreprocessing(t *testing.T) {
	pp := NewPreprocessor(nil)
	cfg := compdb.NewConfig()
	cfg.SetFastPreprocessing(true)

	argv := pp.CommandFor("a.cpp", cfg)
	assert.Contains(t, argv, "-dM")
}

func TestCommandFor_CarriesResolvedOptions(t *testing.T) {
	pp := NewPreprocessor(nil)
	cfg := compdb.NewConfig()
	cfg.ApplyStandardAndFlags(compdb.Cpp17, 0)
	cfg.AddIncludeDir("/opt/include")
	cfg.AddMacroDefinition("X", "1")

	argv := pp.CommandFor("a.cpp", cfg)
	assert.Contains(t, argv, "-std=c++17")
	assert.Contains(t, argv, "-DX=1")

	i := slices.Index(argv, "-I")
	if assert.GreaterOrEqual(t, i, 0, "missing -I") {
		assert.Equal(t, "/opt/include", argv[i+1])
	}
}
